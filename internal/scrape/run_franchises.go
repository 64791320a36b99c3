package scrape

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"mlbwar-engine/internal/domain"
	"mlbwar-engine/internal/scrape/extract"
)

const (
	FranchisesURL   = "https://www.baseball-reference.com/teams/"
	FranchisesTable = "teams_active"
	FranchisesFile  = "franchises.xlsx"
)

// former names and cross references share the table with the real rows
var franchiseNoise = []string{"Also played as", ", see"}

// Franchises writes the active franchise table to franchises.xlsx.
func (r *Runner) Franchises(ctx context.Context, url string) Outcome {
	if url == "" {
		url = FranchisesURL
	}
	item := domain.WorkItem{URL: url, FileName: FranchisesFile}

	page, err := r.Fetcher.Fetch(ctx, url)
	if err != nil {
		return skipped(item, ReasonFetchFailed, err)
	}
	tbl, err := extract.Table(page.HTML, FranchisesTable)
	if err != nil {
		return skipped(item, ReasonTableNotFound, err)
	}
	tbl = ActiveFranchises(tbl)

	path := filepath.Join(r.OutputDir, FranchisesFile)
	if err := r.Writer.Write(path, &tbl, nil); err != nil {
		return skipped(item, ReasonWriteFailed, err)
	}
	log.Printf("[franchises] wrote rows=%d path=%s", len(tbl.Rows), path)
	return Outcome{Item: item, Status: StatusOK, Rows: len(tbl.Rows), Path: path}
}

// ActiveFranchises drops the "Also played as" and cross-reference rows.
func ActiveFranchises(tbl domain.Table) domain.Table {
	col := tbl.ColumnIndex("Franchise")
	if col < 0 {
		return tbl
	}
	out := domain.Table{Columns: tbl.Columns}
	for i, row := range tbl.Rows {
		name := tbl.Cell(i, col)
		if containsAny(name, franchiseNoise) {
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
