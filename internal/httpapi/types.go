package httpapi

// RunStatus is the state of the pipeline started over HTTP.
type RunStatus struct {
	Kind       string `json:"kind,omitempty"`
	Running    bool   `json:"running"`
	StartedAt  string `json:"started_at,omitempty"`
	FinishedAt string `json:"finished_at,omitempty"`
	LastOkAt   string `json:"last_ok_at,omitempty"`
	LastError  string `json:"last_error,omitempty"`
	OK         int    `json:"ok"`
	Partial    int    `json:"partial"`
	Skipped    int    `json:"skipped"`
}
