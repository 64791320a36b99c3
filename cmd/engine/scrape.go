package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"mlbwar-engine/internal/config"
	"mlbwar-engine/internal/scrape"
	"mlbwar-engine/internal/store"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var skipDone bool

func init() {
	addResumeFlags(scrapeCmd)
	scrapeCmd.Flags().BoolVar(&skipDone, "skip-done", false, "skip items a previous scrape finished ok")
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(recordsCmd)
}

func openLedger(cfg config.Config) (*store.DB, error) {
	db, err := store.Open(cfg.LedgerPath())
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	return db, nil
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--from TEAM:YEAR | --offset N] [--skip-done]",
	Short: "Fetches each team-season page and writes its appearances table and record.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		items, err := planItems(cfg)
		if err != nil {
			return err
		}
		db, err := openLedger(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		sum, err := pipeline{ledger: db}.run(cmd.Context(), cfg, scrape.KindScrape, runOpts{
			items:    items,
			planned:  true,
			skipDone: skipDone,
		})
		printSummary(sum)
		return err
	},
}

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Refetches the page of every file in the output directory and sets its W-L-T.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		db, err := openLedger(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		sum, err := pipeline{ledger: db}.run(cmd.Context(), cfg, scrape.KindRecords, runOpts{})
		printSummary(sum)
		return err
	},
}

// printSummary lists the items that did not finish ok, then the totals.
func printSummary(sum *scrape.Summary) {
	if sum == nil {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Item", "Status", "Reason", "Detail"})
	for _, o := range sum.Outcomes {
		if o.Status == scrape.StatusOK {
			continue
		}
		t.AppendRow(table.Row{o.Item.Key(), o.Status, o.Reason, o.Detail})
	}
	if t.Length() > 0 {
		t.SetStyle(table.StyleRounded)
		t.Render()
	}

	reasons := make([]string, 0, len(sum.ByReason))
	for r, n := range sum.ByReason {
		reasons = append(reasons, fmt.Sprintf("%s=%d", r, n))
	}
	sort.Strings(reasons)

	totals := table.NewWriter()
	totals.SetOutputMirror(os.Stdout)
	totals.AppendHeader(table.Row{"Run", "Total", "OK", "Partial", "Skipped", "Reasons"})
	totals.AppendRow(table.Row{
		sum.Kind, sum.Total,
		sum.Count(scrape.StatusOK), sum.Count(scrape.StatusPartial), sum.Count(scrape.StatusSkipped),
		strings.Join(reasons, " "),
	})
	totals.SetStyle(table.StyleRounded)
	totals.Render()
}
