package flows

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zero-touch-cx/server/internal/cx/model"
	"github.com/zero-touch-cx/server/internal/cx/plan"
	logx "github.com/zero-touch-cx/server/pkg/logger"
	"github.com/zero-touch-cx/server/pkg/tracing"
)

// ReportingHandler builds wire status report cards. The search and artifact
// collaborators are optional; a card without a chart or citations is still a
// valid answer.
type ReportingHandler struct {
	events    WireEventFetcher
	search    PassageSearcher
	artifacts ArtifactUploader
	source    string
	entitle   func(customerID string) (plan.EligibilityResult, error)
}

// NewReportingHandler builds a handler. search and artifacts may be nil.
func NewReportingHandler(events WireEventFetcher, search PassageSearcher, artifacts ArtifactUploader, source string) *ReportingHandler {
	return &ReportingHandler{
		events:    events,
		search:    search,
		artifacts: artifacts,
		source:    source,
		entitle:   plan.ReportAccess,
	}
}

// Generate aggregates the customer's wire events over the trailing day window
// into a status report card with KPIs, an optional chart artifact, and an
// optional grounding citation.
func (h *ReportingHandler) Generate(ctx context.Context, customerID string, days int) model.AgentResponse {
	ctx, span := tracing.Span(ctx, "flows.reporting.generate",
		attribute.String("customer.id", customerID),
		attribute.Int("report.days", days))
	defer span.End()

	log := logx.Component("reporting")

	// Entitlement gates the data fetch; an uncovered plan gets an upgrade
	// proposal, not a report.
	ent, err := h.entitle(customerID)
	if err != nil {
		return model.NewHandoff(
			fmt.Sprintf("I could not find an account for %s.", customerID),
			model.ReportCard{
				Kind:       model.KindReportCard,
				CustomerID: customerID,
				Title:      "Wire Status Report",
				DataSource: h.source,
			},
			"Unknown customer account",
		)
	}
	if ent.Eligibility == plan.NotAvailable {
		log.Info().
			Str("customer_id", customerID).
			Str("plan", string(ent.Plan)).
			Msg("wire reports not entitled")
		return upgradeSuggestion(customerID, "wire reports", ent)
	}

	events, err := h.events.WireEvents(ctx, customerID, days)
	if err != nil {
		log.Error().Err(err).Str("customer_id", customerID).Msg("wire event fetch failed")
		return model.NewHandoff(
			"I could not load your wire activity right now.",
			model.ReportCard{
				Kind:       model.KindReportCard,
				CustomerID: customerID,
				Title:      "Wire Status Report",
				DataSource: h.source,
			},
			"Wire event data source unavailable",
		)
	}

	counts := map[string]int{"completed": 0, "pending": 0, "failed": 0}
	for _, e := range events {
		counts[e.Status]++
	}
	total := len(events)
	completionRate := 0.0
	if total > 0 {
		completionRate = float64(counts["completed"]) / float64(total)
	}

	now := time.Now()
	card := model.ReportCard{
		Kind:       model.KindReportCard,
		CustomerID: customerID,
		ReportID:   uuid.NewString(),
		Title:      fmt.Sprintf("Wire Status Report (last %d days)", days),
		DateRange: fmt.Sprintf("%s to %s",
			now.AddDate(0, 0, -days).Format("2006-01-02"),
			now.Format("2006-01-02")),
		StatusCounts: counts,
		KPIs: []model.KPI{
			{Name: "pending", Value: counts["pending"], Unit: "wires"},
			{Name: "failed", Value: counts["failed"], Unit: "wires"},
			{Name: "completed", Value: counts["completed"], Unit: "wires"},
			{Name: "completion_rate", Value: completionRate, Unit: "ratio"},
		},
		DataSource: h.source,
		Rationale: fmt.Sprintf("Aggregated %d wire events over the last %d days.",
			total, days),
		NextBestActions: nextActionsFor(counts),
		Confidence:      0.9,
	}

	if h.artifacts != nil && total > 0 {
		svg := renderStatusChart(card.Title, counts)
		uri, err := h.artifacts.Upload(ctx, fmt.Sprintf("wire_report_%s.svg", card.ReportID), "image/svg+xml", svg)
		if err != nil {
			// The card stands without the chart.
			log.Warn().Err(err).Msg("chart upload failed")
		} else {
			card.ChartURI = uri
		}
	}

	if h.search != nil {
		passages, err := h.search.Search(ctx, "wire report delivery policy", 1)
		if err != nil {
			log.Warn().Err(err).Msg("policy search failed")
		} else if len(passages) > 0 {
			card.Citations = append(card.Citations, model.Citation{
				Title: passages[0].Title,
				Text:  passages[0].Text,
				Score: passages[0].Score,
			})
		}
	}

	log.Info().
		Str("customer_id", customerID).
		Str("report_id", card.ReportID).
		Int("events", total).
		Msg("report card generated")

	summary := fmt.Sprintf("Over the last %d days: %d completed, %d pending, %d failed wires.",
		days, counts["completed"], counts["pending"], counts["failed"])
	return model.New(summary, card)
}

func nextActionsFor(counts map[string]int) []string {
	var actions []string
	if counts["failed"] > 0 {
		actions = append(actions, "Review failed wires and retry or contact the beneficiary bank")
	}
	if counts["pending"] > 0 {
		actions = append(actions, "Monitor pending wires; most settle within one business day")
	}
	if len(actions) == 0 {
		actions = append(actions, "No action needed; all recent wires completed")
	}
	return actions
}
