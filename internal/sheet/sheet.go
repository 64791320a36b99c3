// Package sheet persists one work item per .xlsx workbook.
//
// Two layouts are supported. "sheets" puts the scraped table on its own sheet
// and the season record on a Summary sheet. "columns" keeps a single sheet and
// appends Wins/Losses/Ties as constant columns.
package sheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mlbwar-engine/internal/domain"
	"mlbwar-engine/internal/scrape/util"

	"github.com/xuri/excelize/v2"
)

const (
	LayoutSheets  = "sheets"
	LayoutColumns = "columns"

	DefaultTableSheet = "Appearances"
	SummarySheet      = "Summary"
)

var recordHeader = []string{"Wins", "Losses", "Ties"}

var ErrEmpty = errors.New("nothing to write")

type Writer struct {
	Layout     string
	TableSheet string
}

func NewWriter(layout string) Writer {
	return Writer{Layout: layout, TableSheet: DefaultTableSheet}
}

func (w Writer) tableSheet() string {
	if w.TableSheet == "" {
		return DefaultTableSheet
	}
	return w.TableSheet
}

// Write creates a fresh workbook at path, replacing any previous file, so
// rerunning an item never accumulates rows. Either argument may be nil.
func (w Writer) Write(path string, tbl *domain.Table, rec *domain.Record) error {
	if tbl == nil && rec == nil {
		return ErrEmpty
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(0)
	switch {
	case tbl != nil:
		if err := f.SetSheetName(first, w.tableSheet()); err != nil {
			return err
		}
		if err := writeTable(f, w.tableSheet(), *tbl); err != nil {
			return err
		}
		if rec != nil {
			if err := w.putRecord(f, *rec); err != nil {
				return err
			}
		}
	default:
		if err := f.SetSheetName(first, SummarySheet); err != nil {
			return err
		}
		if err := writeSummary(f, *rec); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// SetRecord opens an existing workbook and sets its record in place.
func (w Writer) SetRecord(path string, rec domain.Record) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := w.putRecord(f, rec); err != nil {
		return err
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func (w Writer) putRecord(f *excelize.File, rec domain.Record) error {
	if w.Layout == LayoutColumns {
		sheet := tableSheetOf(f)
		if sheet == "" {
			sheet = w.tableSheet()
			if _, err := f.NewSheet(sheet); err != nil {
				return err
			}
		}
		return appendRecordColumns(f, sheet, rec)
	}
	return writeSummary(f, rec)
}

func writeTable(f *excelize.File, sheet string, tbl domain.Table) error {
	header := make([]interface{}, len(tbl.Columns))
	for i, c := range tbl.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for r, row := range tbl.Rows {
		vals := make([]interface{}, len(row))
		for i, cell := range row {
			if n, ok := util.ParseNumber(cell); ok {
				vals[i] = n
			} else {
				vals[i] = cell
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &vals); err != nil {
			return err
		}
	}
	return nil
}

// Summary is always two rows by three columns, so rewriting it in place is
// idempotent.
func writeSummary(f *excelize.File, rec domain.Record) error {
	idx, err := f.GetSheetIndex(SummarySheet)
	if err != nil {
		return err
	}
	if idx < 0 {
		if _, err := f.NewSheet(SummarySheet); err != nil {
			return err
		}
	}
	header := []interface{}{recordHeader[0], recordHeader[1], recordHeader[2]}
	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return err
	}
	vals := []interface{}{rec.Wins, rec.Losses, rec.Ties}
	return f.SetSheetRow(SummarySheet, "A2", &vals)
}

// appendRecordColumns replaces Wins/Losses/Ties when present and appends
// them otherwise.
func appendRecordColumns(f *excelize.File, sheet string, rec domain.Record) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}

	values := []int{rec.Wins, rec.Losses, rec.Ties}
	dataRows := len(rows) - 1
	if dataRows < 1 {
		dataRows = 1
	}

	next := len(header)
	for k, name := range recordHeader {
		col := indexOf(header, name)
		if col < 0 {
			col = next
			next++
		}
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
		for r := 0; r < dataRows; r++ {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, values[k]); err != nil {
				return err
			}
		}
	}
	return nil
}

func tableSheetOf(f *excelize.File) string {
	for _, name := range f.GetSheetList() {
		if name != SummarySheet {
			return name
		}
	}
	return ""
}

func indexOf(xs []string, s string) int {
	for i, x := range xs {
		if x == s {
			return i
		}
	}
	return -1
}
