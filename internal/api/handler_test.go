package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zero-touch-cx/server/internal/cx/flows"
	"github.com/zero-touch-cx/server/internal/cx/router"
)

type stubBilling struct{}

func (stubBilling) BillingHistory(_ context.Context, customerID string) ([]flows.BillingEntry, error) {
	return []flows.BillingEntry{
		{CustomerID: customerID, Date: time.Now(), Amount: 10, Description: "wire fee"},
	}, nil
}

type stubEvents struct{}

func (stubEvents) WireEvents(_ context.Context, _ string, _ int) ([]flows.WireEvent, error) {
	return []flows.WireEvent{{Status: "completed"}}, nil
}

type stubExecutor struct{}

func (stubExecutor) ExecuteUpgrade(_ context.Context, customerID, _ string) (string, error) {
	return "chg_" + customerID, nil
}

func testHandler() http.Handler {
	r := router.New(router.Config{
		Billing:   flows.NewBillingHandler(stubBilling{}),
		Reporting: flows.NewReportingHandler(stubEvents{}, nil, nil, "mock"),
		Upgrade:   flows.NewUpgradeHandler(nil, stubExecutor{}),
	})
	return NewHandler(r).Routes()
}

func TestChatEndpoint(t *testing.T) {
	srv := httptest.NewServer(testHandler())
	defer srv.Close()

	body := strings.NewReader(`{"text":"Show me my wire status report for last 30 days cust_001"}`)
	resp, err := http.Post(srv.URL+"/chat", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Message == "" {
		t.Fatal("empty rendered message")
	}
	payload, ok := out.Data.Payload.(map[string]any)
	if !ok {
		t.Fatalf("payload type %T", out.Data.Payload)
	}
	if payload["kind"] != "report_card" {
		t.Fatalf("kind = %v", payload["kind"])
	}
}

func TestChatRejectsEmptyText(t *testing.T) {
	srv := httptest.NewServer(testHandler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/chat", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(testHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
