package main

import (
	"fmt"
	"os"

	"mlbwar-engine/internal/store"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	runID    int64
	runLimit int
)

func init() {
	runsCmd.Flags().Int64Var(&runID, "id", 0, "show the items of one run")
	runsCmd.Flags().IntVar(&runLimit, "limit", 20, "number of runs to list")
	rootCmd.AddCommand(runsCmd)
}

var runsCmd = &cobra.Command{
	Use:   "runs [--id N]",
	Short: "Lists past runs from the ledger, or the items of one run.",
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

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleRounded)

		if runID > 0 {
			if _, err := db.GetRun(cmd.Context(), runID); err != nil {
				return err
			}
			items, err := db.ListItems(cmd.Context(), runID)
			if err != nil {
				return err
			}
			t.AppendHeader(table.Row{"Team", "Year", "Status", "Reason", "Rows", "W-L-T", "Detail"})
			for _, it := range items {
				t.AppendRow(table.Row{it.Team, it.Year, it.Status, it.Reason, it.Rows, recordCell(it), it.Detail})
			}
			t.Render()
			return nil
		}

		runs, err := db.ListRuns(cmd.Context(), runLimit)
		if err != nil {
			return err
		}
		t.AppendHeader(table.Row{"ID", "Kind", "Started", "Finished", "OK", "Partial", "Skipped", "Error"})
		for _, r := range runs {
			t.AppendRow(table.Row{r.ID, r.Kind, r.StartedAt, r.FinishedAt, r.OK, r.Partial, r.Skipped, r.Error})
		}
		t.Render()
		return nil
	},
}

func recordCell(it store.Item) string {
	if it.Wins == nil || it.Losses == nil || it.Ties == nil {
		return ""
	}
	return fmt.Sprintf("%d-%d-%d", *it.Wins, *it.Losses, *it.Ties)
}
