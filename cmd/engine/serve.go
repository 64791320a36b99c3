package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"mlbwar-engine/internal/config"
	"mlbwar-engine/internal/events"
	"mlbwar-engine/internal/httpapi"
	"mlbwar-engine/internal/scheduler"
	"mlbwar-engine/internal/scrape"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	serveEvery time.Duration
	serveKind  string
)

func init() {
	serveCmd.Flags().DurationVar(&serveEvery, "every", 0, "also start a run on this interval (0 disables)")
	serveCmd.Flags().StringVar(&serveKind, "every-kind", scrape.KindRecords, "run kind for --every: scrape or records")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the local status and control API on 127.0.0.1.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, userCfgPath, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// Load config and keep it reloadable
		var cfgVal atomic.Value // stores config.Config
		cfgVal.Store(cfg)
		loadCfg := func() (config.Config, error) {
			next, err := config.Load(userCfgPath)
			if err != nil {
				return next, err
			}
			if cmd.Flags().Changed("data-dir") || next.App.DataDir == "" {
				next.App.DataDir = dataDir
			}
			next, _ = config.NormalizeAndValidate(next)
			return next, nil
		}

		var status atomic.Value
		status.Store(httpapi.RunStatus{})

		db, err := openLedger(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		hub := events.NewHub()
		p := pipeline{ledger: db, hub: hub}

		if serveKind != scrape.KindScrape && serveKind != scrape.KindRecords {
			return fmt.Errorf("--every-kind must be %s or %s", scrape.KindScrape, scrape.KindRecords)
		}

		g, ctx := errgroup.WithContext(cmd.Context())

		deps := httpapi.Deps{
			Ledger:      db,
			Hub:         hub,
			CfgVal:      &cfgVal,
			RunStatus:   &status,
			UserCfgPath: userCfgPath,
			LoadCfg:     loadCfg,
			RunPipeline: func(ctx context.Context, cfg config.Config, kind string) (*scrape.Summary, error) {
				return p.run(ctx, cfg, kind, runOpts{})
			},
			BaseCtx: ctx,
		}
		handler := httpapi.NewHandler(deps)

		addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return err
		}
		log.Printf("engine listening on http://%s (config=%s ledger=%s)", addr, userCfgPath, cfg.LedgerPath())

		srv := &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return ctx },
		}

		g.Go(func() error {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			log.Printf("[http] shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		if serveEvery > 0 {
			runner := httpapi.ScrapeHandler{
				CfgVal:      deps.CfgVal,
				RunStatus:   deps.RunStatus,
				RunPipeline: deps.RunPipeline,
				BaseCtx:     ctx,
			}
			g.Go(func() error {
				return scheduler.Every(ctx, serveEvery, "schedule:"+serveKind, false, func(context.Context) error {
					return runner.Start(serveKind)
				})
			})
		}

		return g.Wait()
	},
}
