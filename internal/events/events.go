package events

import (
	"encoding/json"
	"time"
)

// Event types published while a pipeline runs.
const (
	TypePing        = "ping"
	TypeItem        = "item"
	TypeRunStarted  = "run_started"
	TypeRunFinished = "run_finished"
)

const Version = 1

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// RunInfo is the payload of run_started and run_finished.
type RunInfo struct {
	RunID   int64  `json:"run_id"`
	Kind    string `json:"kind"`
	OK      int    `json:"ok,omitempty"`
	Partial int    `json:"partial,omitempty"`
	Skipped int    `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

func MakeEvent(reqID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	b, _ := json.Marshal(Event{
		Type:      typ,
		Version:   Version,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	})
	return string(b)
}
