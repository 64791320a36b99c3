package main

import (
	"log"
	"os"

	"mlbwar-engine/internal/config"
	"mlbwar-engine/internal/domain"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	resumeFrom   string
	resumeOffset int
)

func addResumeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&resumeFrom, "from", "", "start at TEAM:YEAR")
	cmd.Flags().IntVar(&resumeOffset, "offset", 0, "skip the first N work items")
	cmd.MarkFlagsMutuallyExclusive("from", "offset")
}

func init() {
	addResumeFlags(itemsCmd)
	rootCmd.AddCommand(itemsCmd)
}

// planItems enumerates the configured work items and applies --from/--offset.
func planItems(cfg config.Config) ([]domain.WorkItem, error) {
	s := cfg.Source
	items := domain.BuildWorkItems(s.BaseURL, s.Teams, s.StartYear, s.EndYear, s.SkipYears)

	if resumeFrom != "" {
		team, year, err := domain.ParseResumeKey(resumeFrom)
		if err != nil {
			return nil, err
		}
		var found bool
		items, found = domain.ResumeFrom(items, team, year)
		if !found {
			log.Printf("[scrape] resume point %s_%d not in plan, starting from the beginning", team, year)
		}
		return items, nil
	}
	return domain.ResumeAt(items, resumeOffset), nil
}

var itemsCmd = &cobra.Command{
	Use:   "items [--from TEAM:YEAR | --offset N]",
	Short: "Prints the work items a scrape would process, in order.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		items, err := planItems(cfg)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "Key", "URL", "File"})
		for i, it := range items {
			t.AppendRow(table.Row{i + 1, it.Key(), it.URL, it.FileName})
		}
		t.AppendFooter(table.Row{"", "", "Total", len(items)})
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
