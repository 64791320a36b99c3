package httpapi

import "net/http"

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	hh := HealthHandler{RunStatus: d.RunStatus}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))

	// Ledger
	rh := RunsHandler{Ledger: d.Ledger}
	mux.HandleFunc("/runs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.List,
	}))
	mux.HandleFunc("/runs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Get, // expects /runs/{id}
	}))

	// Pipeline
	sch := ScrapeHandler{
		CfgVal:      d.CfgVal,
		RunStatus:   d.RunStatus,
		RunPipeline: d.RunPipeline,
		BaseCtx:     d.BaseCtx,
	}
	mux.HandleFunc("/scrape/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sch.Status,
	}))
	mux.HandleFunc("/scrape/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Run,
	}))

	ah := AnalysisHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/analysis", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.Get,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}

// NewHandler is the mux wrapped in the standard middleware stack.
func NewHandler(d Deps) http.Handler {
	return Chain(NewMux(d), RequestID, AccessLog, Recover, Cors)
}
