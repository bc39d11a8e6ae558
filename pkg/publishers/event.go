package publishers

import (
	"encoding/json"
	"time"

	"github.com/Adda-Baaj/ssll-wrapper/internal/domain"
)

// Event represents the payload published downstream.
type Event struct {
	ReportID         string          `json:"report_id"`
	Operation        string          `json:"operation"`
	Target           string          `json:"target,omitempty"`
	HasErrorOccurred bool            `json:"has_error_occurred"`
	Result           json.RawMessage `json:"result"`
	CollectedAt      time.Time       `json:"collected_at"`
}

// NewEvent constructs an Event for a completed report.
func NewEvent(r domain.Report) Event {
	collected := r.CollectedAt
	if collected.IsZero() {
		collected = time.Now().UTC()
	}
	return Event{
		ReportID:         r.ID,
		Operation:        r.Operation,
		Target:           r.Target,
		HasErrorOccurred: r.HasErrorOccurred,
		Result:           r.Result,
		CollectedAt:      collected,
	}
}

// attributes are the routing attributes attached by queue/topic publishers.
func (e Event) attributes() map[string]string {
	attrs := map[string]string{"operation": e.Operation}
	if e.Target != "" {
		attrs["target"] = e.Target
	}
	if e.HasErrorOccurred {
		attrs["status"] = "error"
	} else {
		attrs["status"] = "ok"
	}
	return attrs
}
