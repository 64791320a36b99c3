package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrRecordNotFound = errors.New("record not found")

// Record is a season's win-loss-tie tuple.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

func (r Record) String() string { return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties) }

func (r Record) Games() int { return r.Wins + r.Losses + r.Ties }

// ParseRecord decodes "W-L-T" (anything after the first comma is standings
// context and is dropped). The two-token "W-L" form is accepted with Ties=0.
func ParseRecord(s string) (Record, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if s == "" {
		return Record{}, ErrRecordNotFound
	}

	parts := strings.Split(s, "-")
	if len(parts) != 2 && len(parts) != 3 {
		return Record{}, fmt.Errorf("%w: %q has %d fields", ErrRecordNotFound, s, len(parts))
	}

	var vals [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return Record{}, fmt.Errorf("%w: bad field %q in %q", ErrRecordNotFound, p, s)
		}
		vals[i] = n
	}
	return Record{Wins: vals[0], Losses: vals[1], Ties: vals[2]}, nil
}
