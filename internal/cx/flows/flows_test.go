package flows

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/zero-touch-cx/server/internal/cx/model"
	"github.com/zero-touch-cx/server/internal/cx/plan"
)

type fakeBilling struct {
	entries []BillingEntry
	err     error
	fetches int
}

func (f *fakeBilling) BillingHistory(_ context.Context, _ string) ([]BillingEntry, error) {
	f.fetches++
	return f.entries, f.err
}

type fakeEvents struct {
	events  []WireEvent
	err     error
	fetches int
}

func (f *fakeEvents) WireEvents(_ context.Context, _ string, _ int) ([]WireEvent, error) {
	f.fetches++
	return f.events, f.err
}

type fakeSearch struct {
	passages []Passage
	err      error
}

func (f *fakeSearch) Search(_ context.Context, _ string, _ int) ([]Passage, error) {
	return f.passages, f.err
}

type fakeUploader struct {
	uploads int
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, name string, _ string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads++
	return "file:///tmp/" + name, nil
}

type fakeExecutor struct {
	calls  int
	ticket string
	err    error
}

func (f *fakeExecutor) ExecuteUpgrade(_ context.Context, customerID string, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.ticket != "" {
		return f.ticket, nil
	}
	return "chg_" + customerID, nil
}

func fixedNow() time.Time {
	return time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
}

func TestBillingSummarizeMonthToDate(t *testing.T) {
	h := NewBillingHandler(&fakeBilling{entries: []BillingEntry{
		{CustomerID: "cust_001", Date: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), Amount: 12.50, Description: "wire fee"},
		{CustomerID: "cust_001", Date: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), Amount: 7.25, Description: "statement"},
		{CustomerID: "cust_001", Date: time.Date(2026, 7, 28, 0, 0, 0, 0, time.UTC), Amount: 99.99, Description: "last month"},
	}})
	h.now = fixedNow

	resp := h.Summarize(context.Background(), "cust_001")
	if resp.HandoffRequired {
		t.Fatalf("unexpected handoff: %+v", resp)
	}
	sum, ok := resp.Payload.(model.BillingSummary)
	if !ok {
		t.Fatalf("payload type %T", resp.Payload)
	}
	if sum.TotalAmountDue != 19.75 {
		t.Fatalf("total = %v, want 19.75", sum.TotalAmountDue)
	}
	if len(sum.BillingHistory) != 2 {
		t.Fatalf("entries = %d, want 2", len(sum.BillingHistory))
	}
	if sum.StartDate != "2026-08-01" {
		t.Fatalf("start = %q", sum.StartDate)
	}
}

func TestBillingFetchErrorEscalates(t *testing.T) {
	h := NewBillingHandler(&fakeBilling{err: errors.New("db down")})
	resp := h.Summarize(context.Background(), "cust_001")
	if !resp.HandoffRequired || resp.HandoffReason == "" {
		t.Fatalf("expected handoff with reason, got %+v", resp)
	}
}

func TestBillingEmptyHistoryEscalates(t *testing.T) {
	h := NewBillingHandler(&fakeBilling{})
	h.now = fixedNow
	resp := h.Summarize(context.Background(), "cust_005")
	if !resp.HandoffRequired || resp.HandoffReason == "" {
		t.Fatalf("expected handoff with reason, got %+v", resp)
	}
}

func TestBillingUnknownCustomerNeverFetches(t *testing.T) {
	src := &fakeBilling{}
	h := NewBillingHandler(src)
	resp := h.Summarize(context.Background(), "cust_999")
	if !resp.HandoffRequired || resp.HandoffReason != "Unknown customer account" {
		t.Fatalf("expected unknown-customer handoff, got %+v", resp)
	}
	if src.fetches != 0 {
		t.Fatalf("fetch ran for an unknown customer: %d", src.fetches)
	}
}

func TestBillingEntitlementGateBlocksFetch(t *testing.T) {
	src := &fakeBilling{entries: []BillingEntry{{Amount: 10}}}
	h := NewBillingHandler(src)
	h.entitle = func(string) (plan.EligibilityResult, error) {
		return plan.EligibilityResult{
			CustomerID:  "cust_001",
			Plan:        plan.Bronze,
			Feature:     "Commercial Checking Statement",
			Eligibility: plan.NotAvailable,
			AvailableOn: plan.Silver,
		}, nil
	}
	resp := h.Summarize(context.Background(), "cust_001")
	if src.fetches != 0 {
		t.Fatalf("fetch ran despite missing entitlement: %d", src.fetches)
	}
	dec, ok := resp.Payload.(model.UpgradeDecision)
	if !ok {
		t.Fatalf("payload type %T", resp.Payload)
	}
	if dec.RequestedPlan != "Silver" || !dec.RequiresConfirmation {
		t.Fatalf("decision = %+v", dec)
	}
	if resp.HandoffRequired {
		t.Fatalf("entitlement gap must stay automated: %+v", resp)
	}
}

func TestReportingGenerateCountsAndKPIs(t *testing.T) {
	events := &fakeEvents{events: []WireEvent{
		{Status: "completed"}, {Status: "completed"}, {Status: "pending"}, {Status: "failed"},
	}}
	up := &fakeUploader{}
	h := NewReportingHandler(events, &fakeSearch{passages: []Passage{
		{Title: "Wire Policy", Text: "Reports cover settled and pending wires.", Score: 0.8},
	}}, up, "mock")

	resp := h.Generate(context.Background(), "cust_001", 30)
	if resp.HandoffRequired {
		t.Fatalf("unexpected handoff: %+v", resp)
	}
	card, ok := resp.Payload.(model.ReportCard)
	if !ok {
		t.Fatalf("payload type %T", resp.Payload)
	}
	if card.StatusCounts["completed"] != 2 || card.StatusCounts["pending"] != 1 || card.StatusCounts["failed"] != 1 {
		t.Fatalf("counts = %v", card.StatusCounts)
	}
	var rate float64
	for _, k := range card.KPIs {
		if k.Name == "completion_rate" {
			rate = k.Value.(float64)
		}
	}
	if rate != 0.5 {
		t.Fatalf("completion_rate = %v, want 0.5", rate)
	}
	if card.ReportID == "" {
		t.Fatal("missing report ID")
	}
	if card.ChartURI == "" || up.uploads != 1 {
		t.Fatalf("expected one chart upload, got uri=%q uploads=%d", card.ChartURI, up.uploads)
	}
	if len(card.Citations) != 1 {
		t.Fatalf("citations = %v", card.Citations)
	}
}

func TestReportingFetchErrorEscalates(t *testing.T) {
	h := NewReportingHandler(&fakeEvents{err: errors.New("db down")}, nil, nil, "mock")
	resp := h.Generate(context.Background(), "cust_001", 30)
	if !resp.HandoffRequired || resp.HandoffReason == "" {
		t.Fatalf("expected handoff with reason, got %+v", resp)
	}
}

func TestReportingEmptyWindowStillAnswers(t *testing.T) {
	h := NewReportingHandler(&fakeEvents{}, nil, &fakeUploader{}, "mock")
	resp := h.Generate(context.Background(), "cust_001", 7)
	if resp.HandoffRequired {
		t.Fatalf("unexpected handoff: %+v", resp)
	}
	card := resp.Payload.(model.ReportCard)
	if card.StatusCounts["completed"] != 0 || card.ChartURI != "" {
		t.Fatalf("expected zero-count card without chart, got %+v", card)
	}
}

func TestReportingEntitlementGateBlocksFetch(t *testing.T) {
	events := &fakeEvents{events: []WireEvent{{Status: "completed"}}}
	h := NewReportingHandler(events, nil, nil, "mock")
	h.entitle = func(string) (plan.EligibilityResult, error) {
		return plan.EligibilityResult{
			CustomerID:  "cust_001",
			Plan:        plan.Bronze,
			Feature:     "Detailed Reports",
			Eligibility: plan.NotAvailable,
			AvailableOn: plan.Silver,
		}, nil
	}
	resp := h.Generate(context.Background(), "cust_001", 30)
	if events.fetches != 0 {
		t.Fatalf("fetch ran despite missing entitlement: %d", events.fetches)
	}
	dec, ok := resp.Payload.(model.UpgradeDecision)
	if !ok {
		t.Fatalf("payload type %T", resp.Payload)
	}
	if dec.RequestedPlan != "Silver" || !dec.RequiresConfirmation {
		t.Fatalf("decision = %+v", dec)
	}
	if resp.HandoffRequired {
		t.Fatalf("entitlement gap must stay automated: %+v", resp)
	}
}

func TestReportingUnknownCustomerNeverFetches(t *testing.T) {
	events := &fakeEvents{}
	h := NewReportingHandler(events, nil, nil, "mock")
	resp := h.Generate(context.Background(), "cust_999", 30)
	if !resp.HandoffRequired || resp.HandoffReason != "Unknown customer account" {
		t.Fatalf("expected unknown-customer handoff, got %+v", resp)
	}
	if events.fetches != 0 {
		t.Fatalf("fetch ran for an unknown customer: %d", events.fetches)
	}
}

func TestReportingChartUploadFailureKeepsCard(t *testing.T) {
	events := &fakeEvents{events: []WireEvent{{Status: "completed"}}}
	h := NewReportingHandler(events, nil, &fakeUploader{err: errors.New("disk full")}, "mock")
	resp := h.Generate(context.Background(), "cust_001", 30)
	if resp.HandoffRequired {
		t.Fatalf("unexpected handoff: %+v", resp)
	}
	if resp.Payload.(model.ReportCard).ChartURI != "" {
		t.Fatal("chart URI set despite upload failure")
	}
}

var policyPassages = []Passage{
	{Title: "Upgrade Policy", Text: "No financial action without confirmation from the customer.", Score: 0.9},
}

func TestUpgradeFirstPassRequiresConfirmation(t *testing.T) {
	exec := &fakeExecutor{}
	h := NewUpgradeHandler(&fakeSearch{passages: policyPassages}, exec)

	resp := h.Decide(context.Background(), "cust_001", plan.Gold, "Upgrade me to Pro cust_001")
	dec := resp.Payload.(model.UpgradeDecision)
	if !dec.Eligible {
		t.Fatalf("expected eligible, got %+v", dec)
	}
	if !dec.RequiresConfirmation {
		t.Fatal("first pass must require confirmation")
	}
	if dec.TicketID != "" || exec.calls != 0 {
		t.Fatalf("executor ran on first pass: ticket=%q calls=%d", dec.TicketID, exec.calls)
	}
	if dec.SimulatedMonthlyPriceUSD != 49.0 {
		t.Fatalf("price = %v, want 49", dec.SimulatedMonthlyPriceUSD)
	}
}

func TestUpgradeConfirmedExecutesExactlyOnce(t *testing.T) {
	exec := &fakeExecutor{}
	h := NewUpgradeHandler(&fakeSearch{passages: policyPassages}, exec)

	resp := h.Decide(context.Background(), "cust_001", plan.Gold, "yes, CONFIRM UPGRADE to gold cust_001")
	dec := resp.Payload.(model.UpgradeDecision)
	if exec.calls != 1 {
		t.Fatalf("executor calls = %d, want 1", exec.calls)
	}
	if dec.TicketID != "chg_cust_001" {
		t.Fatalf("ticket = %q", dec.TicketID)
	}
	if dec.RequiresConfirmation {
		t.Fatal("confirmation flag still set after execution")
	}
	if resp.HandoffRequired {
		t.Fatalf("unexpected handoff: %+v", resp)
	}
}

func TestUpgradeMissingPaymentMethodIneligible(t *testing.T) {
	exec := &fakeExecutor{}
	h := NewUpgradeHandler(nil, exec)

	resp := h.Decide(context.Background(), "cust_002", plan.Gold, "confirm upgrade")
	dec := resp.Payload.(model.UpgradeDecision)
	if dec.Eligible || exec.calls != 0 {
		t.Fatalf("expected ineligible without execution, got %+v calls=%d", dec, exec.calls)
	}
	joined := strings.Join(dec.Reasons, " ")
	if !strings.Contains(joined, "payment method") {
		t.Fatalf("reasons = %v", dec.Reasons)
	}
}

func TestUpgradePolicyClauseBlocksUnconfirmed(t *testing.T) {
	exec := &fakeExecutor{}
	h := NewUpgradeHandler(&fakeSearch{passages: policyPassages}, exec)

	resp := h.Decide(context.Background(), "cust_001", plan.Gold, "go ahead and upgrade me")
	dec := resp.Payload.(model.UpgradeDecision)
	if exec.calls != 0 {
		t.Fatalf("executor ran without confirmation: %d", exec.calls)
	}
	if !dec.RequiresConfirmation {
		t.Fatal("policy denial must keep the confirmation requirement")
	}
	joined := strings.Join(dec.Reasons, " ")
	if !strings.Contains(joined, "Upgrade Policy") {
		t.Fatalf("reasons must name the governing clause: %v", dec.Reasons)
	}
}

func TestUpgradeIneligibleStillRequiresConfirmation(t *testing.T) {
	h := NewUpgradeHandler(nil, &fakeExecutor{})
	resp := h.Decide(context.Background(), "cust_002", plan.Gold, "upgrade me to gold")
	dec := resp.Payload.(model.UpgradeDecision)
	if dec.Eligible {
		t.Fatalf("expected ineligible, got %+v", dec)
	}
	if !dec.RequiresConfirmation {
		t.Fatal("non-executed decision must keep requires_confirmation set")
	}
}

func TestUpgradeSamePlanIneligible(t *testing.T) {
	h := NewUpgradeHandler(nil, &fakeExecutor{})
	resp := h.Decide(context.Background(), "cust_003", plan.Gold, "confirm upgrade")
	dec := resp.Payload.(model.UpgradeDecision)
	if dec.Eligible {
		t.Fatalf("cust_003 already on Gold, got %+v", dec)
	}
}

func TestUpgradeExecutionFailureEscalates(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("billing system offline")}
	h := NewUpgradeHandler(nil, exec)
	resp := h.Decide(context.Background(), "cust_001", plan.Silver, "confirm upgrade")
	if !resp.HandoffRequired || resp.HandoffReason == "" {
		t.Fatalf("expected handoff with reason, got %+v", resp)
	}
}

func TestUpgradeUnknownCustomerEscalates(t *testing.T) {
	h := NewUpgradeHandler(nil, &fakeExecutor{})
	resp := h.Decide(context.Background(), "cust_999", plan.Gold, "confirm upgrade")
	if !resp.HandoffRequired || resp.HandoffReason == "" {
		t.Fatalf("expected handoff with reason, got %+v", resp)
	}
}
