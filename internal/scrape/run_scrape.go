package scrape

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"mlbwar-engine/internal/config"
	"mlbwar-engine/internal/domain"
	"mlbwar-engine/internal/scrape/extract"
	"mlbwar-engine/internal/scrape/types"
	"mlbwar-engine/internal/scrape/util"
	"mlbwar-engine/internal/sheet"
)

const (
	KindScrape     = "scrape"
	KindRecords    = "records"
	KindFranchises = "franchises"
)

// Runner processes work items one at a time: fetch, extract, parse, write.
type Runner struct {
	Fetcher   types.Fetcher
	Writer    sheet.Writer
	TableID   string
	OutputDir string
	Pacer     *util.Pacer

	// OnOutcome, when set, sees every outcome as soon as it is known.
	OnOutcome func(Outcome)
}

func NewRunner(cfg config.Config, f types.Fetcher) *Runner {
	return &Runner{
		Fetcher:   f,
		Writer:    sheet.NewWriter(cfg.Output.Layout),
		TableID:   cfg.Source.TableID,
		OutputDir: cfg.OutputDir(),
		Pacer:     util.NewPacer(cfg.Pacing.Every, cfg.Pacing.Delay),
	}
}

func (r *Runner) path(item domain.WorkItem) string {
	return filepath.Join(r.OutputDir, item.FileName)
}

func (r *Runner) emit(sum *Summary, o Outcome) {
	sum.Add(o)
	if r.OnOutcome != nil {
		r.OnOutcome(o)
	}
}

// Scrape runs the items in order. Per-item failures become outcomes; only
// a held lock or a cancelled context stops the run early.
func (r *Runner) Scrape(ctx context.Context, items []domain.WorkItem) (*Summary, error) {
	lock, err := LockOutput(r.OutputDir)
	if err != nil {
		return nil, err
	}
	defer lock.Unlock()

	sum := NewSummary(KindScrape)
	log.Printf("[scrape] start items=%d fetcher=%s table=%s out=%s",
		len(items), r.Fetcher.Name(), r.TableID, r.OutputDir)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		o := r.Process(ctx, item)
		log.Printf("[scrape] %d/%d %s", i+1, len(items), o)
		r.emit(sum, o)

		if i == len(items)-1 {
			break
		}
		if _, err := r.Pacer.Done(ctx); err != nil {
			return sum, err
		}
	}

	log.Printf("[scrape] done %s", sum)
	return sum, nil
}

// Process handles a single work item.
func (r *Runner) Process(ctx context.Context, item domain.WorkItem) Outcome {
	page, err := r.Fetcher.Fetch(ctx, item.URL)
	if err != nil {
		return skipped(item, ReasonFetchFailed, err)
	}

	var tbl *domain.Table
	t, tErr := extract.Table(page.HTML, r.TableID)
	switch {
	case tErr == nil:
		tbl = &t
	case !errors.Is(tErr, extract.ErrTableNotFound):
		return skipped(item, ReasonTableNotFound, tErr)
	}

	var rec *domain.Record
	var rErr error
	if text, ok := extract.RecordText(page.HTML); ok {
		p, err := domain.ParseRecord(text)
		if err == nil {
			rec = &p
		}
		rErr = err
	} else {
		rErr = fmt.Errorf("%w: no %q marker", domain.ErrRecordNotFound, "Record:")
	}

	if tbl == nil && rec == nil {
		return skipped(item, ReasonTableNotFound, fmt.Errorf("id=%s", r.TableID))
	}

	path := r.path(item)
	if err := r.Writer.Write(path, tbl, rec); err != nil {
		return skipped(item, ReasonWriteFailed, err)
	}

	o := Outcome{Item: item, Status: StatusOK, Record: rec, Path: path}
	switch {
	case tbl == nil:
		o.Status, o.Reason, o.Detail = StatusPartial, ReasonTableNotFound, "id="+r.TableID
	case rec == nil:
		o.Status, o.Reason, o.Detail = StatusPartial, ReasonRecordNotFound, rErr.Error()
		o.Rows = len(tbl.Rows)
	default:
		o.Rows = len(tbl.Rows)
	}
	return o
}
