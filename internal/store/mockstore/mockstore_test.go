package mockstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSeededWireWindow(t *testing.T) {
	s := NewSeeded()
	events, err := s.WireEvents(context.Background(), "cust_001", 7)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range events {
		if e.CustomerID != "cust_001" {
			t.Fatalf("wrong customer: %+v", e)
		}
	}
	all, _ := s.WireEvents(context.Background(), "cust_001", 30)
	if len(all) <= len(events) {
		t.Fatalf("window filter not applied: 7d=%d 30d=%d", len(events), len(all))
	}
}

func TestSeededUnknownCustomerIsEmpty(t *testing.T) {
	s := NewSeeded()
	entries, err := s.BillingHistory(context.Background(), "cust_404")
	if err != nil || len(entries) != 0 {
		t.Fatalf("entries=%v err=%v", entries, err)
	}
}

func TestLoadBillingCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "billing.csv")
	data := "customer_id,date,amount,description\n" +
		"cust_001,2026-08-05,12.50,wire fee\n" +
		"cust_001,2026-08-09,3.00,statement\n" +
		"cust_002,2026-08-01,19.00,subscription\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewSeeded()
	if err := s.LoadBillingCSV(path); err != nil {
		t.Fatal(err)
	}
	entries, err := s.BillingHistory(context.Background(), "cust_001")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Amount != 12.50 {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestLoadWireEventsCSVBadRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wires.csv")
	data := "cust_001,wr-1,completed,not-a-date\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewSeeded()
	if err := s.LoadWireEventsCSV(path); err != nil {
		t.Fatal("header-like first row should be skipped, got error:", err)
	}
}

func TestExecutorTicketFormat(t *testing.T) {
	ticket, err := Executor{}.ExecuteUpgrade(context.Background(), "cust_001", "Gold")
	if err != nil || ticket != "chg_cust_001" {
		t.Fatalf("ticket=%q err=%v", ticket, err)
	}
}
