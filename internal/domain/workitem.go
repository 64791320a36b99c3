package domain

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// FileExt is the extension of every per-item output file.
const FileExt = ".xlsx"

// WorkItem is one team/year unit of scraping work.
type WorkItem struct {
	Team     string `json:"team"`
	Year     int    `json:"year"`
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (w WorkItem) Key() string { return fmt.Sprintf("%s_%d", w.Team, w.Year) }

func (w WorkItem) String() string { return w.Key() }

// TeamURL returns the season page for a team: {base}/{TEAM}/{YEAR}.shtml
func TeamURL(baseURL, team string, year int) string {
	return fmt.Sprintf("%s/%s/%d.shtml", strings.TrimRight(baseURL, "/"), team, year)
}

// FileNameFor is the load-bearing TEAM_YEAR.xlsx contract; the aggregator parses it back.
func FileNameFor(team string, year int) string {
	return fmt.Sprintf("%s_%d%s", team, year, FileExt)
}

func NewWorkItem(baseURL, team string, year int) WorkItem {
	return WorkItem{
		Team:     team,
		Year:     year,
		URL:      TeamURL(baseURL, team, year),
		FileName: FileNameFor(team, year),
	}
}

// BuildWorkItems returns teams × [startYear, endYear] minus skipYears,
// team-major and year-ascending.
func BuildWorkItems(baseURL string, teams []string, startYear, endYear int, skipYears []int) []WorkItem {
	skip := make(map[int]bool, len(skipYears))
	for _, y := range skipYears {
		skip[y] = true
	}

	var years []int
	for y := startYear; y <= endYear; y++ {
		if !skip[y] {
			years = append(years, y)
		}
	}

	out := make([]WorkItem, 0, len(teams)*len(years))
	for _, team := range teams {
		for _, y := range years {
			out = append(out, NewWorkItem(baseURL, team, y))
		}
	}
	return out
}

// ResumeAt drops the first offset items. Out-of-range offsets clamp.
func ResumeAt(items []WorkItem, offset int) []WorkItem {
	if offset <= 0 {
		return items
	}
	if offset >= len(items) {
		return nil
	}
	return items[offset:]
}

// ResumeFrom starts at the item matching team/year. If no item matches it
// returns all items and false so the caller can log and process everything.
func ResumeFrom(items []WorkItem, team string, year int) ([]WorkItem, bool) {
	for i, it := range items {
		if strings.EqualFold(it.Team, team) && it.Year == year {
			return items[i:], true
		}
	}
	return items, false
}

// ParseResumeKey parses "PHI:2004" (or "PHI_2004").
func ParseResumeKey(s string) (string, int, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, ":_")
	if sep <= 0 || sep == len(s)-1 {
		return "", 0, fmt.Errorf("bad resume key %q (want TEAM:YEAR)", s)
	}
	year, err := strconv.Atoi(s[sep+1:])
	if err != nil {
		return "", 0, fmt.Errorf("bad resume year in %q: %w", s, err)
	}
	return strings.ToUpper(s[:sep]), year, nil
}

// ParseFileName splits TEAM_YEAR.xlsx. Names with any other number of
// underscore fields, another extension, or a non-numeric year don't match.
func ParseFileName(name string) (team string, year int, ok bool) {
	base := filepath.Base(name)
	if !strings.EqualFold(filepath.Ext(base), FileExt) {
		return "", 0, false
	}
	parts := strings.Split(base, "_")
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, false
	}
	yearPart := strings.TrimSuffix(parts[1], filepath.Ext(parts[1]))
	y, err := strconv.Atoi(yearPart)
	if err != nil {
		return "", 0, false
	}
	return parts[0], y, true
}
