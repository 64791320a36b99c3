// Package aggregate rebuilds the team-season view from persisted output
// files. Nothing is cached: every call rescans the directory.
package aggregate

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"mlbwar-engine/internal/domain"
	"mlbwar-engine/internal/scrape/util"
	"mlbwar-engine/internal/sheet"
)

var (
	errNoTable  = errors.New("no table sheet")
	errNoMetric = errors.New("metric column missing")
	errNoRecord = errors.New("no wins/losses recorded")
)

type Skipped struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

type Result struct {
	Rows    []domain.AggregatedRow `json:"rows"`
	Skipped []Skipped              `json:"skipped,omitempty"`
}

// Dir aggregates every TEAM_YEAR.xlsx file in dir. Other names are ignored
// without a warning.
func Dir(dir, metric string) (Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		team, year, ok := domain.ParseFileName(e.Name())
		if !ok {
			continue
		}

		row, err := File(filepath.Join(dir, e.Name()), metric)
		if err != nil {
			log.Printf("[aggregate] skipped file=%s err=%v", e.Name(), err)
			res.Skipped = append(res.Skipped, Skipped{File: e.Name(), Reason: err.Error()})
			continue
		}
		row.Team = team
		row.Year = year
		res.Rows = append(res.Rows, row)
	}

	Sort(res.Rows)
	return res, nil
}

// File sums the metric column of one workbook. Cells that are not numbers
// count as missing and are left out of the sum.
func File(path, metric string) (domain.AggregatedRow, error) {
	wb, err := sheet.Read(path)
	if err != nil {
		return domain.AggregatedRow{}, err
	}
	if wb.Table == nil {
		return domain.AggregatedRow{}, errNoTable
	}
	col := wb.Table.ColumnIndex(metric)
	if col < 0 {
		return domain.AggregatedRow{}, fmt.Errorf("%w: %q", errNoMetric, metric)
	}
	if wb.Record == nil {
		return domain.AggregatedRow{}, errNoRecord
	}

	var total float64
	for r := range wb.Table.Rows {
		if v, ok := util.ParseNumber(wb.Table.Cell(r, col)); ok {
			total += v
		}
	}
	return domain.AggregatedRow{
		TotalMetric: total,
		Wins:        wb.Record.Wins,
		Losses:      wb.Record.Losses,
	}, nil
}

// Sort orders rows by (team, year).
func Sort(rows []domain.AggregatedRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Team != rows[j].Team {
			return rows[i].Team < rows[j].Team
		}
		return rows[i].Year < rows[j].Year
	})
}

// ToTable lays rows out as Year, Team, <metric>, W, L for export.
func ToTable(rows []domain.AggregatedRow, metric string) domain.Table {
	t := domain.Table{Columns: []string{"Year", "Team", metric, "W", "L"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Year),
			r.Team,
			strconv.FormatFloat(r.TotalMetric, 'f', -1, 64),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Losses),
		})
	}
	return t
}
