package httpapi

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
)

// Error codes carried in the envelope. Clients switch on these, not on the
// message text.
const (
	CodeMethodNotAllowed  = "method_not_allowed"
	CodeInternal          = "internal_error"
	CodeEncodeFailed      = "encode_failed"
	CodeInvalidJSON       = "invalid_json"
	CodeSaveFailed        = "save_failed"
	CodeReloadFailed      = "reload_failed"
	CodeBadKind           = "bad_kind"
	CodeAlreadyRunning    = "already_running"
	CodeLedger            = "ledger_error"
	CodeBadID             = "bad_id"
	CodeNotFound          = "not_found"
	CodeBadMetric         = "bad_metric"
	CodeNoOutput          = "no_output"
	CodeAggregateFailed   = "aggregate_failed"
	CodeInsufficientData  = "insufficient_data"
	CodeAnalysisFailed    = "analysis_failed"
	CodeStreamUnsupported = "stream_unsupported"
)

// APIError is the body of every non-2xx response.
type APIError struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteJSON encodes v before touching the response so an unencodable value
// becomes a 500 envelope instead of a 200 with an empty body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Printf("[http] encode %T: %v", v, err)
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(APIError{Error: ErrorBody{
			Code:    CodeEncodeFailed,
			Message: err.Error(),
		}})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteJSON(w, status, APIError{Error: ErrorBody{
		Code:      code,
		Message:   message,
		RequestID: RequestIDFrom(r.Context()),
	}})
}
