package questgraph

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type ReloadResponse struct {
	Reloaded    bool      `json:"reloaded"`
	Fingerprint string    `json:"dataset_fingerprint"`
	LoadedAt    time.Time `json:"loaded_at"`
}
