package provision

import (
	"context"
	"time"
)

// Event describes one finished provisioning run. Published after the result
// is assembled; delivery failures are logged by the publisher and never
// affect the result.
type Event struct {
	SchoolCode string    `json:"school_code"`
	Kind       string    `json:"kind"`
	Operation  string    `json:"operation"`
	Total      int       `json:"total"`
	Created    int       `json:"created"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	FinishedAt time.Time `json:"finished_at"`
}

const (
	OpImport      = "import"
	OpFillMissing = "fill_missing"
	OpRegenerate  = "regenerate"
)

// Publisher receives provisioning events (NATS/Kafka fan-out is wired in
// the app layer).
type Publisher interface {
	ProvisioningCompleted(ctx context.Context, event Event)
}

// NopPublisher drops every event; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) ProvisioningCompleted(context.Context, Event) {}
