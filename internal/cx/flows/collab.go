// Package flows implements the business handlers behind each supported
// intent. Handlers depend on narrow collaborator interfaces so the demo can
// run against in-memory fixtures while the server wires real backends.
package flows

import (
	"context"
	"time"
)

// BillingEntry is one line of a customer's billing history.
type BillingEntry struct {
	CustomerID  string    `json:"customer_id"`
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
}

// WireEvent is one wire transfer status event.
type WireEvent struct {
	CustomerID string    `json:"customer_id"`
	ReportID   string    `json:"report_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Passage is a scored snippet returned from policy document search.
type Passage struct {
	Title string  `json:"title"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// BillingHistoryFetcher loads a customer's billing entries.
type BillingHistoryFetcher interface {
	BillingHistory(ctx context.Context, customerID string) ([]BillingEntry, error)
}

// WireEventFetcher loads wire events for a customer within a day window.
type WireEventFetcher interface {
	WireEvents(ctx context.Context, customerID string, days int) ([]WireEvent, error)
}

// ArtifactUploader stores a generated artifact and returns a stable URI.
type ArtifactUploader interface {
	Upload(ctx context.Context, name string, contentType string, data []byte) (string, error)
}

// PassageSearcher retrieves the passages most relevant to a query.
type PassageSearcher interface {
	Search(ctx context.Context, query string, topK int) ([]Passage, error)
}

// UpgradeExecutor performs the actual plan change and returns a ticket ID.
type UpgradeExecutor interface {
	ExecuteUpgrade(ctx context.Context, customerID string, targetPlan string) (string, error)
}
