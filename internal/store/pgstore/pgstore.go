// Package pgstore backs the flow collaborators with Postgres. The schema has
// two tables, billing_history and wire_events, both keyed by customer ID.
package pgstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	errx "github.com/zero-touch-cx/server/internal/core/error"
	"github.com/zero-touch-cx/server/internal/cx/flows"
)

// Store serves billing and wire data from a Postgres pool.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// NewFromConnString dials Postgres and verifies the connection.
func NewFromConnString(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// BillingHistory loads the customer's billing entries, oldest first. The
// LIMIT guards against runaway histories in the demo dataset.
func (s *Store) BillingHistory(ctx context.Context, customerID string) ([]flows.BillingEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT customer_id, entry_date, amount, description
		FROM billing_history
		WHERE customer_id = $1
		ORDER BY entry_date
		LIMIT 500`, customerID)
	if err != nil {
		return nil, errx.WrapCollaborator(err)
	}
	defer rows.Close()

	var entries []flows.BillingEntry
	for rows.Next() {
		var e flows.BillingEntry
		if err := rows.Scan(&e.CustomerID, &e.Date, &e.Amount, &e.Description); err != nil {
			return nil, errx.WrapCollaborator(err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errx.WrapCollaborator(err)
	}
	return entries, nil
}

// WireEvents loads the customer's wire events within the trailing day
// window, oldest first.
func (s *Store) WireEvents(ctx context.Context, customerID string, days int) ([]flows.WireEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT customer_id, report_id, status, occurred_at
		FROM wire_events
		WHERE customer_id = $1
		  AND occurred_at >= now() - make_interval(days => $2)
		ORDER BY occurred_at
		LIMIT 500`, customerID, days)
	if err != nil {
		return nil, errx.WrapCollaborator(err)
	}
	defer rows.Close()

	var events []flows.WireEvent
	for rows.Next() {
		var e flows.WireEvent
		if err := rows.Scan(&e.CustomerID, &e.ReportID, &e.Status, &e.OccurredAt); err != nil {
			return nil, errx.WrapCollaborator(err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errx.WrapCollaborator(err)
	}
	return events, nil
}
