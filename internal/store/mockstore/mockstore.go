// Package mockstore provides in-memory demo implementations of the flow
// collaborators, seeded with fixture data or loaded from CSV files.
package mockstore

import (
	"context"
	"sort"
	"time"

	"github.com/zero-touch-cx/server/internal/cx/flows"
)

func day(offset int) time.Time {
	return time.Now().AddDate(0, 0, offset)
}

// Store serves billing and wire data from memory.
type Store struct {
	billing map[string][]flows.BillingEntry
	wires   map[string][]flows.WireEvent
}

// NewSeeded returns a store preloaded with the demo fixture set.
func NewSeeded() *Store {
	s := &Store{
		billing: map[string][]flows.BillingEntry{},
		wires:   map[string][]flows.WireEvent{},
	}

	s.billing["cust_001"] = []flows.BillingEntry{
		{CustomerID: "cust_001", Date: day(-20), Amount: 12.50, Description: "Outbound wire fee"},
		{CustomerID: "cust_001", Date: day(-10), Amount: 7.25, Description: "Statement delivery"},
		{CustomerID: "cust_001", Date: day(-3), Amount: 25.00, Description: "Expedited wire fee"},
	}
	s.billing["cust_002"] = []flows.BillingEntry{
		{CustomerID: "cust_002", Date: day(-5), Amount: 19.00, Description: "Silver plan subscription"},
	}
	s.billing["cust_003"] = []flows.BillingEntry{
		{CustomerID: "cust_003", Date: day(-15), Amount: 49.00, Description: "Gold plan subscription"},
		{CustomerID: "cust_003", Date: day(-2), Amount: 5.75, Description: "Deposit correction fee"},
	}

	s.wires["cust_001"] = []flows.WireEvent{
		{CustomerID: "cust_001", ReportID: "wr-1001", Status: "completed", OccurredAt: day(-25)},
		{CustomerID: "cust_001", ReportID: "wr-1002", Status: "completed", OccurredAt: day(-12)},
		{CustomerID: "cust_001", ReportID: "wr-1003", Status: "pending", OccurredAt: day(-2)},
		{CustomerID: "cust_001", ReportID: "wr-1004", Status: "failed", OccurredAt: day(-1)},
	}
	s.wires["cust_003"] = []flows.WireEvent{
		{CustomerID: "cust_003", ReportID: "wr-3001", Status: "completed", OccurredAt: day(-8)},
	}
	return s
}

// BillingHistory returns all billing entries for the customer, oldest first.
func (s *Store) BillingHistory(_ context.Context, customerID string) ([]flows.BillingEntry, error) {
	entries := append([]flows.BillingEntry(nil), s.billing[customerID]...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	return entries, nil
}

// WireEvents returns wire events within the trailing day window, oldest
// first.
func (s *Store) WireEvents(_ context.Context, customerID string, days int) ([]flows.WireEvent, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	var out []flows.WireEvent
	for _, e := range s.wires[customerID] {
		if e.OccurredAt.After(cutoff) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}

// Executor simulates the downstream plan change system.
type Executor struct{}

// ExecuteUpgrade returns a deterministic change ticket for the customer.
func (Executor) ExecuteUpgrade(_ context.Context, customerID string, _ string) (string, error) {
	return "chg_" + customerID, nil
}
