package domain

import (
	"encoding/json"
	"time"
)

// Report is one completed API operation as archived and published downstream.
type Report struct {
	ID               string          `json:"id"`
	Operation        string          `json:"operation"`
	Target           string          `json:"target,omitempty"`
	HasErrorOccurred bool            `json:"has_error_occurred"`
	Result           json.RawMessage `json:"result"`
	CollectedAt      time.Time       `json:"collected_at"`
}
