package httpapi

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"sync/atomic"

	"mlbwar-engine/internal/aggregate"
	"mlbwar-engine/internal/config"
	"mlbwar-engine/internal/regress"
)

type AnalysisHandler struct {
	CfgVal *atomic.Value // config.Config
}

type analysisResponse struct {
	Rows       int                 `json:"rows"`
	Skipped    []aggregate.Skipped `json:"skipped"`
	Report     regress.Report      `json:"report"`
	Prediction regress.Prediction  `json:"prediction"`
}

// Get rebuilds the aggregate from the output directory and fits it.
// ?metric= overrides the configured prediction input.
func (h AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)

	predict := cfg.Analysis.PredictMetric
	if s := r.URL.Query().Get("metric"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, CodeBadMetric, "metric must be a number")
			return
		}
		predict = v
	}

	res, err := aggregate.Dir(cfg.OutputDir(), cfg.Analysis.MetricColumn)
	if errors.Is(err, os.ErrNotExist) {
		WriteError(w, r, http.StatusNotFound, CodeNoOutput, "nothing scraped yet")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, CodeAggregateFailed, err.Error())
		return
	}

	rep, err := regress.Analyze(res.Rows, regress.Options{
		TestFraction: cfg.Analysis.TestFraction,
		Seed:         cfg.Analysis.Seed,
	})
	if errors.Is(err, regress.ErrInsufficientData) {
		WriteError(w, r, http.StatusUnprocessableEntity, CodeInsufficientData, err.Error())
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, CodeAnalysisFailed, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, analysisResponse{
		Rows:       len(res.Rows),
		Skipped:    res.Skipped,
		Report:     rep,
		Prediction: rep.Model.Prediction(predict, cfg.Analysis.SeasonGames),
	})
}
