package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"mlbwar-engine/internal/store"
)

type RunsHandler struct {
	Ledger *store.DB
}

func (h RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := h.Ledger.ListRuns(r.Context(), limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, CodeLedger, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, runs)
}

// Get serves /runs/{id}: the run and its items.
func (h RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/runs/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, CodeBadID, "expected /runs/{id}")
		return
	}

	run, err := h.Ledger.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, CodeNotFound, err.Error())
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, CodeLedger, err.Error())
		return
	}

	items, err := h.Ledger.ListItems(r.Context(), id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, CodeLedger, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"run": run, "items": items})
}
