package domain

import "strconv"

// Table is a scraped HTML table, kept verbatim. Column names are unique.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns "" for short rows.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// UniqueColumns disambiguates repeated header names as X, X.1, X.2 ...
func UniqueColumns(names []string) []string {
	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, n := range names {
		base := n
		if base == "" {
			base = "Unnamed: " + strconv.Itoa(i)
		}
		name := base
		for k := seen[base]; seen[name] > 0; k++ {
			name = base + "." + strconv.Itoa(k)
		}
		seen[base]++
		if name != base {
			seen[name]++
		}
		out[i] = name
	}
	return out
}
