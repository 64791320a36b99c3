package httpapi

import (
	"net/http"
	"sync/atomic"
)

type HealthHandler struct {
	RunStatus *atomic.Value
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	running := false
	if h.RunStatus != nil {
		if st, ok := h.RunStatus.Load().(RunStatus); ok {
			running = st.Running
		}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "running": running})
}
