// Package model defines the response envelope and typed payload variants
// shared by every flow of the assistant.
package model

// Payload kind discriminators. Consumers branch on the structural shape of a
// payload by reading its kind tag instead of probing fields.
const (
	KindReportCard      = "report_card"
	KindUpgradeDecision = "upgrade_decision"
	KindBillingSummary  = "billing_summary"
	KindComplianceBlock = "compliance_block"
	KindClarification   = "clarification"
)

// AgentResponse is the universal envelope: every code path of the router
// returns exactly one. HandoffRequired and HandoffReason are paired — a
// handoff always carries a non-empty reason. Use New / NewHandoff so the
// pairing cannot be broken.
type AgentResponse struct {
	Summary         string `json:"summary"`
	Payload         any    `json:"payload"`
	HandoffRequired bool   `json:"handoff_required"`
	HandoffReason   string `json:"handoff_reason,omitempty"`
}

// New builds a response that stays with the automated flow.
func New(summary string, payload any) AgentResponse {
	return AgentResponse{Summary: summary, Payload: payload}
}

// NewHandoff builds a response escalated to a human. An empty reason degrades
// to a plain response so the pairing invariant holds structurally.
func NewHandoff(summary string, payload any, reason string) AgentResponse {
	if reason == "" {
		return New(summary, payload)
	}
	return AgentResponse{
		Summary:         summary,
		Payload:         payload,
		HandoffRequired: true,
		HandoffReason:   reason,
	}
}

// KPI is a named metric carried inside a ReportCard.
type KPI struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// Citation is a retrieval passage grounding a report or decision.
type Citation struct {
	Title string  `json:"title"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// ReportCard is the reporting flow payload.
type ReportCard struct {
	Kind            string         `json:"kind"`
	CustomerID      string         `json:"customer_id"`
	ReportID        string         `json:"report_id"`
	Title           string         `json:"title"`
	DateRange       string         `json:"date_range"`
	StatusCounts    map[string]int `json:"status_counts"`
	KPIs            []KPI          `json:"kpis"`
	ChartURI        string         `json:"chart_uri,omitempty"`
	DataSource      string         `json:"data_source"`
	Rationale       string         `json:"rationale"`
	Citations       []Citation     `json:"citations,omitempty"`
	NextBestActions []string       `json:"next_best_actions"`
	Confidence      float64        `json:"confidence"`
}

// UpgradeDecision is the upgrade flow payload. RequiresConfirmation stays
// true until the same user turn carries the explicit confirmation phrase and
// both eligibility and policy allow execution.
type UpgradeDecision struct {
	Kind                     string   `json:"kind"`
	CustomerID               string   `json:"customer_id"`
	CurrentPlan              string   `json:"current_plan"`
	RequestedPlan            string   `json:"requested_plan"`
	Eligible                 bool     `json:"eligible"`
	Reasons                  []string `json:"reasons"`
	SimulatedMonthlyPriceUSD float64  `json:"simulated_monthly_price_usd"`
	RequiresConfirmation     bool     `json:"requires_confirmation"`
	TicketID                 string   `json:"ticket_id,omitempty"`
	NextBestActions          []string `json:"next_best_actions"`
	Confidence               float64  `json:"confidence"`
}

// BillingEntryView is one line of billing history inside a BillingSummary.
type BillingEntryView struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// BillingSummary is the billing flow payload.
type BillingSummary struct {
	Kind           string             `json:"kind"`
	CustomerID     string             `json:"customer_id"`
	StartDate      string             `json:"start_date"`
	EndDate        string             `json:"end_date"`
	TotalAmountDue float64            `json:"total_amount_due"`
	BillingHistory []BillingEntryView `json:"billing_history"`
	Error          string             `json:"error,omitempty"`
}
