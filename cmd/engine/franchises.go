package main

import (
	"fmt"

	"mlbwar-engine/internal/config"
	"mlbwar-engine/internal/scrape"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(franchisesCmd)
}

var franchisesCmd = &cobra.Command{
	Use:   "franchises",
	Short: "Writes the active franchise table to franchises.xlsx in the output directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		fetcher, err := scrape.NewFetcher(cfg, config.ModePlain)
		if err != nil {
			return err
		}

		o := scrape.NewRunner(cfg, fetcher).Franchises(cmd.Context(), "")
		if o.Status != scrape.StatusOK {
			return fmt.Errorf("franchises: %s: %s", o.Reason, o.Detail)
		}
		fmt.Printf("wrote %d franchises to %s\n", o.Rows, o.Path)
		return nil
	},
}
