package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"mlbwar-engine/internal/domain"
	"mlbwar-engine/internal/scrape/util"

	"github.com/xuri/excelize/v2"
)

// Workbook is what a persisted output file holds. Either part may be nil.
type Workbook struct {
	Table  *domain.Table
	Record *domain.Record
}

func Read(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Workbook{}, err
	}
	defer f.Close()

	var wb Workbook
	if name := tableSheetOf(f); name != "" {
		rows, err := f.GetRows(name)
		if err != nil {
			return Workbook{}, fmt.Errorf("read sheet %s: %w", name, err)
		}
		if len(rows) > 0 {
			tbl := toTable(rows)
			wb.Table = &tbl
		}
	}

	if idx, _ := f.GetSheetIndex(SummarySheet); idx >= 0 {
		rows, err := f.GetRows(SummarySheet)
		if err != nil {
			return Workbook{}, fmt.Errorf("read sheet %s: %w", SummarySheet, err)
		}
		if len(rows) >= 2 {
			tbl := toTable(rows)
			if rec, ok := recordFrom(tbl); ok {
				wb.Record = &rec
			}
		}
	}
	if wb.Record == nil && wb.Table != nil {
		if rec, ok := recordFrom(*wb.Table); ok {
			wb.Record = &rec
		}
	}
	return wb, nil
}

func toTable(rows [][]string) domain.Table {
	cols := domain.UniqueColumns(rows[0])
	out := domain.Table{Columns: cols}
	for _, r := range rows[1:] {
		row := make([]string, len(cols))
		copy(row, r)
		out.Rows = append(out.Rows, row)
	}
	return out
}

// recordFrom reads Wins/Losses(/Ties) from the first data row.
func recordFrom(tbl domain.Table) (domain.Record, bool) {
	if len(tbl.Rows) == 0 {
		return domain.Record{}, false
	}
	get := func(name string) (int, bool) {
		col := tbl.ColumnIndex(name)
		if col < 0 {
			return 0, false
		}
		cell := strings.TrimSpace(tbl.Cell(0, col))
		if n, err := strconv.Atoi(cell); err == nil {
			return n, true
		}
		if f, ok := util.ParseNumber(cell); ok {
			return int(f), true
		}
		return 0, false
	}

	w, okW := get("Wins")
	l, okL := get("Losses")
	if !okW || !okL {
		return domain.Record{}, false
	}
	t, _ := get("Ties")
	return domain.Record{Wins: w, Losses: l, Ties: t}, true
}
