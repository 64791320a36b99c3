package httpapi

import (
	"context"
	"sync/atomic"

	"mlbwar-engine/internal/config"
	"mlbwar-engine/internal/events"
	"mlbwar-engine/internal/scrape"
	"mlbwar-engine/internal/store"
)

// RunFunc runs one pipeline (scrape or records) to completion.
type RunFunc func(ctx context.Context, cfg config.Config, kind string) (*scrape.Summary, error)

type Deps struct {
	Ledger *store.DB
	Hub    *events.Hub

	// Atomic stores
	CfgVal    *atomic.Value // stores config.Config
	RunStatus *atomic.Value // stores httpapi.RunStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Pipeline entrypoint (inject for testability). Runs started over HTTP
	// are bound to BaseCtx so shutdown cancels them.
	RunPipeline RunFunc
	BaseCtx     context.Context
}
