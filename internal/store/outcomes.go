package store

import (
	"context"

	"mlbwar-engine/internal/scrape"
)

// RecordOutcome appends one runner outcome to run runID.
func (d *DB) RecordOutcome(ctx context.Context, runID int64, o scrape.Outcome) error {
	it := Item{
		RunID:  runID,
		Team:   o.Item.Team,
		Year:   o.Item.Year,
		Status: string(o.Status),
		Reason: string(o.Reason),
		Detail: o.Detail,
		Rows:   o.Rows,
		Path:   o.Path,
	}
	if o.Record != nil {
		w, l, t := o.Record.Wins, o.Record.Losses, o.Record.Ties
		it.Wins, it.Losses, it.Ties = &w, &l, &t
	}
	return d.AddItem(ctx, it)
}

func CountsOf(sum *scrape.Summary) Counts {
	if sum == nil {
		return Counts{}
	}
	return Counts{
		OK:      sum.Count(scrape.StatusOK),
		Partial: sum.Count(scrape.StatusPartial),
		Skipped: sum.Count(scrape.StatusSkipped),
	}
}
