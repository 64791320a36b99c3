package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"mlbwar-engine/internal/config"
	"mlbwar-engine/internal/scrape"
)

type ScrapeHandler struct {
	CfgVal      *atomic.Value // config.Config
	RunStatus   *atomic.Value // httpapi.RunStatus
	RunPipeline RunFunc
	BaseCtx     context.Context
}

func (h ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.RunStatus.Load().(RunStatus))
}

var ErrAlreadyRunning = errors.New("already running")

// Run starts a pipeline in the background. Only one runs at a time.
func (h ScrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = scrape.KindScrape
	}
	if kind != scrape.KindScrape && kind != scrape.KindRecords {
		WriteError(w, r, http.StatusBadRequest, CodeBadKind, "kind must be scrape or records")
		return
	}

	if err := h.Start(kind); err != nil {
		WriteError(w, r, http.StatusConflict, CodeAlreadyRunning, err.Error())
		return
	}
	WriteJSON(w, http.StatusAccepted, map[string]any{"ok": true, "kind": kind})
}

// Start claims the run slot and runs kind in a goroutine. It returns
// ErrAlreadyRunning when another run holds the slot.
func (h ScrapeHandler) Start(kind string) error {
	st := h.RunStatus.Load().(RunStatus)
	if st.Running {
		return ErrAlreadyRunning
	}
	next := RunStatus{
		Kind:      kind,
		Running:   true,
		StartedAt: time.Now().Format(time.RFC3339),
		LastOkAt:  st.LastOkAt,
	}
	if !h.RunStatus.CompareAndSwap(st, next) {
		return ErrAlreadyRunning
	}

	ctx := h.BaseCtx
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := h.CfgVal.Load().(config.Config)

	go func() {
		sum, err := h.RunPipeline(ctx, cfg, kind)

		now := time.Now().Format(time.RFC3339)
		done := h.RunStatus.Load().(RunStatus)
		done.Running = false
		done.FinishedAt = now
		if sum != nil {
			done.OK = sum.Count(scrape.StatusOK)
			done.Partial = sum.Count(scrape.StatusPartial)
			done.Skipped = sum.Count(scrape.StatusSkipped)
		}
		if err != nil {
			done.LastError = err.Error()
			log.Printf("[http] %s run failed: %v", kind, err)
		} else {
			done.LastOkAt = now
		}
		h.RunStatus.Store(done)
	}()
	return nil
}
