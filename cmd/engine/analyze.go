package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"mlbwar-engine/internal/aggregate"
	"mlbwar-engine/internal/chart"
	"mlbwar-engine/internal/regress"
	"mlbwar-engine/internal/sheet"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var (
	predictMetric float64
	exportPath    string
	plotPath      string
)

func init() {
	analyzeCmd.Flags().Float64Var(&predictMetric, "predict", 0, "metric total to predict wins for (default from config)")
	analyzeCmd.Flags().StringVar(&exportPath, "export", "", "also write the aggregated rows to this .xlsx")
	analyzeCmd.Flags().StringVar(&plotPath, "plot", "", "draw the metric vs wins scatter to this .png/.svg/.pdf")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [--predict W] [--export path.xlsx] [--plot path.png]",
	Short: "Rebuilds the team-season view from the output files and fits wins against the metric.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		a := cfg.Analysis

		res, err := aggregate.Dir(cfg.OutputDir(), a.MetricColumn)
		if err != nil {
			return fmt.Errorf("aggregate %s: %w", cfg.OutputDir(), err)
		}
		log.Printf("[analyze] rows=%d skipped=%d", len(res.Rows), len(res.Skipped))

		if exportPath != "" {
			tbl := aggregate.ToTable(res.Rows, a.MetricColumn)
			if err := sheet.NewWriter(sheet.LayoutSheets).Write(exportPath, &tbl, nil); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			log.Printf("[analyze] exported %s", exportPath)
		}

		if plotPath != "" {
			err := chart.Scatter(plotPath, res.Rows, chart.Options{Metric: a.MetricColumn, Colors: a.TeamColors})
			if err != nil {
				return fmt.Errorf("plot: %w", err)
			}
			log.Printf("[analyze] plotted %s", plotPath)
		}

		rep, err := regress.Analyze(res.Rows, regress.Options{TestFraction: a.TestFraction, Seed: a.Seed})
		if errors.Is(err, regress.ErrInsufficientData) {
			return fmt.Errorf("%w (scrape more seasons first)", err)
		}
		if err != nil {
			return err
		}

		metric := a.PredictMetric
		if cmd.Flags().Changed("predict") {
			metric = predictMetric
		}
		printReport(rep, a.MetricColumn, rep.Model.Prediction(metric, a.SeasonGames))
		return nil
	},
}

func printReport(rep regress.Report, metric string, p regress.Prediction) {
	fmt.Printf("wins = %.4f + %.4f * %s   (rows=%d train=%d test=%d)\n",
		rep.Model.Intercept, rep.Model.Slope, metric, rep.Rows, rep.Train, rep.Test)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Metric", "Value", "Rating"})
	for _, name := range regress.MetricNames {
		t.AppendRow(table.Row{name, fmt.Sprintf("%.4f", rep.Metrics.Get(name)), rep.Buckets[name]})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Printf("%s %.1f -> %.1f wins, %.1f losses\n", metric, p.Metric, p.Wins, p.Losses)
}
