package scrape

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"mlbwar-engine/internal/domain"
	"mlbwar-engine/internal/scrape/extract"
)

// Items lists the TEAM_YEAR files already in dir as work items, in
// team-major order. Other names are ignored.
func Items(baseURL, dir string) ([]domain.WorkItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var items []domain.WorkItem
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		team, year, ok := domain.ParseFileName(e.Name())
		if !ok {
			continue
		}
		items = append(items, domain.NewWorkItem(baseURL, team, year))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Team != items[j].Team {
			return items[i].Team < items[j].Team
		}
		return items[i].Year < items[j].Year
	})
	return items, nil
}

// Records rescans the output directory, refetches each item's page and
// sets its W-L-T on the existing file.
func (r *Runner) Records(ctx context.Context, baseURL string) (*Summary, error) {
	lock, err := LockOutput(r.OutputDir)
	if err != nil {
		return nil, err
	}
	defer lock.Unlock()

	items, err := Items(baseURL, r.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", r.OutputDir, err)
	}

	sum := NewSummary(KindRecords)
	log.Printf("[records] start files=%d fetcher=%s", len(items), r.Fetcher.Name())

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		o := r.augment(ctx, item)
		log.Printf("[records] %d/%d %s", i+1, len(items), o)
		r.emit(sum, o)

		if i == len(items)-1 {
			break
		}
		if _, err := r.Pacer.Done(ctx); err != nil {
			return sum, err
		}
	}

	log.Printf("[records] done %s", sum)
	return sum, nil
}

func (r *Runner) augment(ctx context.Context, item domain.WorkItem) Outcome {
	page, err := r.Fetcher.Fetch(ctx, item.URL)
	if err != nil {
		return skipped(item, ReasonFetchFailed, err)
	}

	text, ok := extract.RecordText(page.HTML)
	if !ok {
		return skipped(item, ReasonRecordNotFound, domain.ErrRecordNotFound)
	}
	rec, err := domain.ParseRecord(text)
	if err != nil {
		return skipped(item, ReasonRecordNotFound, err)
	}

	path := r.path(item)
	if err := r.Writer.SetRecord(path, rec); err != nil {
		return skipped(item, ReasonWriteFailed, err)
	}
	return Outcome{Item: item, Status: StatusOK, Record: &rec, Path: path}
}
