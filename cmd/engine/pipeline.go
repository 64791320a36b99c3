package main

import (
	"context"
	"fmt"
	"log"

	"mlbwar-engine/internal/config"
	"mlbwar-engine/internal/domain"
	"mlbwar-engine/internal/events"
	"mlbwar-engine/internal/scrape"
	"mlbwar-engine/internal/scrape/types"
	"mlbwar-engine/internal/store"
)

// pipeline runs scrape and records passes with every outcome written to the
// ledger and published on the hub.
type pipeline struct {
	ledger *store.DB
	hub    *events.Hub

	newFetcher func(cfg config.Config, mode string) (types.Fetcher, error) // nil: scrape.NewFetcher
}

type runOpts struct {
	items    []domain.WorkItem // scrape only
	planned  bool              // items is final; otherwise the full plan is built
	skipDone bool
}

func (p pipeline) run(ctx context.Context, cfg config.Config, kind string, opts runOpts) (*scrape.Summary, error) {
	mode := ""
	if kind == scrape.KindRecords {
		mode = config.ModePlain
	}
	newFetcher := p.newFetcher
	if newFetcher == nil {
		newFetcher = scrape.NewFetcher
	}
	fetcher, err := newFetcher(cfg, mode)
	if err != nil {
		return nil, err
	}

	items := opts.items
	if kind == scrape.KindScrape {
		if !opts.planned {
			s := cfg.Source
			items = domain.BuildWorkItems(s.BaseURL, s.Teams, s.StartYear, s.EndYear, s.SkipYears)
		}
		if opts.skipDone {
			if items, err = p.dropCompleted(ctx, items); err != nil {
				return nil, err
			}
		}
	}

	// ledger writes must land even when ctx is cancelled mid-run
	bg := context.WithoutCancel(ctx)

	runID, err := p.ledger.StartRun(bg, kind)
	if err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}
	p.hub.Emit(events.TypeRunStarted, events.RunInfo{RunID: runID, Kind: kind})

	r := scrape.NewRunner(cfg, fetcher)
	r.OnOutcome = func(o scrape.Outcome) {
		if err := p.ledger.RecordOutcome(bg, runID, o); err != nil {
			log.Printf("[ledger] record item=%s err=%v", o.Item.Key(), err)
		}
		p.hub.Emit(events.TypeItem, o)
	}

	var sum *scrape.Summary
	switch kind {
	case scrape.KindScrape:
		sum, err = r.Scrape(ctx, items)
	case scrape.KindRecords:
		sum, err = r.Records(ctx, cfg.Source.BaseURL)
	default:
		err = fmt.Errorf("unknown run kind %q", kind)
	}

	counts := store.CountsOf(sum)
	if ferr := p.ledger.FinishRun(bg, runID, counts, err); ferr != nil {
		log.Printf("[ledger] finish run=%d err=%v", runID, ferr)
	}
	info := events.RunInfo{RunID: runID, Kind: kind, OK: counts.OK, Partial: counts.Partial, Skipped: counts.Skipped}
	if err != nil {
		info.Error = err.Error()
	}
	p.hub.Emit(events.TypeRunFinished, info)
	return sum, err
}

func (p pipeline) dropCompleted(ctx context.Context, items []domain.WorkItem) ([]domain.WorkItem, error) {
	done, err := p.ledger.CompletedKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}
	out := items[:0:0]
	for _, it := range items {
		if !done[it.Key()] {
			out = append(out, it)
		}
	}
	if n := len(items) - len(out); n > 0 {
		log.Printf("[scrape] skip-done dropped %d completed items", n)
	}
	return out, nil
}
