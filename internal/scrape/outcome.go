package scrape

import (
	"fmt"
	"sort"
	"strings"

	"mlbwar-engine/internal/domain"
)

type Status string

const (
	StatusOK      Status = "ok"
	StatusPartial Status = "partial"
	StatusSkipped Status = "skipped"
)

type Reason string

const (
	ReasonNone           Reason = ""
	ReasonFetchFailed    Reason = "fetch_failed"
	ReasonTableNotFound  Reason = "table_not_found"
	ReasonRecordNotFound Reason = "record_not_found"
	ReasonWriteFailed    Reason = "write_failed"
)

// Outcome is the result of processing one work item.
type Outcome struct {
	Item   domain.WorkItem `json:"item"`
	Status Status          `json:"status"`
	Reason Reason          `json:"reason,omitempty"`
	Detail string          `json:"detail,omitempty"`
	Rows   int             `json:"rows"`
	Record *domain.Record  `json:"record,omitempty"`
	Path   string          `json:"path,omitempty"`
}

func (o Outcome) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s item=%s", o.Status, o.Item.Key())
	if o.Reason != ReasonNone {
		fmt.Fprintf(&b, " reason=%s", o.Reason)
	}
	fmt.Fprintf(&b, " rows=%d", o.Rows)
	if o.Record != nil {
		fmt.Fprintf(&b, " record=%s", o.Record)
	}
	if o.Detail != "" {
		fmt.Fprintf(&b, " detail=%q", o.Detail)
	}
	return b.String()
}

func skipped(item domain.WorkItem, reason Reason, err error) Outcome {
	o := Outcome{Item: item, Status: StatusSkipped, Reason: reason}
	if err != nil {
		o.Detail = err.Error()
	}
	return o
}

// Summary aggregates the outcomes of one run.
type Summary struct {
	Kind     string         `json:"kind"`
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"by_status"`
	ByReason map[Reason]int `json:"by_reason"`
	Outcomes []Outcome      `json:"outcomes"`
}

func NewSummary(kind string) *Summary {
	return &Summary{
		Kind:     kind,
		ByStatus: map[Status]int{},
		ByReason: map[Reason]int{},
	}
}

func (s *Summary) Add(o Outcome) {
	s.Total++
	s.ByStatus[o.Status]++
	if o.Reason != ReasonNone {
		s.ByReason[o.Reason]++
	}
	s.Outcomes = append(s.Outcomes, o)
}

func (s *Summary) Count(st Status) int { return s.ByStatus[st] }

func (s *Summary) String() string {
	reasons := make([]string, 0, len(s.ByReason))
	for r, n := range s.ByReason {
		reasons = append(reasons, fmt.Sprintf("%s=%d", r, n))
	}
	sort.Strings(reasons)
	return fmt.Sprintf("kind=%s total=%d ok=%d partial=%d skipped=%d reasons=[%s]",
		s.Kind, s.Total, s.Count(StatusOK), s.Count(StatusPartial), s.Count(StatusSkipped),
		strings.Join(reasons, " "))
}
