// Package audit records compliance blocks, human handoffs, and executed
// financial actions. Sinks are pluggable; the default writes structured log
// events and the server can publish to Kafka instead.
package audit

import (
	"context"
	"time"

	logx "github.com/zero-touch-cx/server/pkg/logger"
)

// Event kinds.
const (
	KindComplianceBlock = "compliance_block"
	KindHandoff         = "handoff"
	KindUpgradeExecuted = "upgrade_executed"
)

// Event is one audit record.
type Event struct {
	Kind       string    `json:"kind"`
	At         time.Time `json:"at"`
	CustomerID string    `json:"customer_id,omitempty"`
	Detail     string    `json:"detail"`
}

// Sink receives audit events. Implementations must be safe for concurrent
// use.
type Sink interface {
	Record(ctx context.Context, ev Event) error
}

// LogSink writes audit events to the structured log. It is the fallback when
// no broker is configured.
type LogSink struct{}

func (LogSink) Record(_ context.Context, ev Event) error {
	logx.Component("audit").Info().
		Str("kind", ev.Kind).
		Time("at", ev.At).
		Str("customer_id", ev.CustomerID).
		Str("detail", ev.Detail).
		Msg("audit event")
	return nil
}

// NewEvent stamps an event with the current time.
func NewEvent(kind, customerID, detail string) Event {
	return Event{Kind: kind, At: time.Now().UTC(), CustomerID: customerID, Detail: detail}
}
