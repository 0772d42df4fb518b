package flows

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zero-touch-cx/server/internal/cx/model"
	"github.com/zero-touch-cx/server/internal/cx/plan"
	logx "github.com/zero-touch-cx/server/pkg/logger"
	"github.com/zero-touch-cx/server/pkg/tracing"
)

// BillingHandler answers billing inquiries with a month-to-date summary.
type BillingHandler struct {
	fetcher BillingHistoryFetcher
	now     func() time.Time
	entitle func(customerID string) (plan.EligibilityResult, error)
}

// NewBillingHandler builds a handler over the given history source.
func NewBillingHandler(fetcher BillingHistoryFetcher) *BillingHandler {
	return &BillingHandler{fetcher: fetcher, now: time.Now, entitle: plan.StatementAccess}
}

// Summarize totals the customer's billing entries from the first of the
// current month through today. A fetch failure or an empty history cannot be
// resolved automatically and escalates to a human.
func (h *BillingHandler) Summarize(ctx context.Context, customerID string) model.AgentResponse {
	ctx, span := tracing.Span(ctx, "flows.billing.summarize",
		attribute.String("customer.id", customerID))
	defer span.End()

	log := logx.Component("billing")

	// Entitlement gates the data fetch.
	ent, err := h.entitle(customerID)
	if err != nil {
		return model.NewHandoff(
			fmt.Sprintf("I could not find an account for %s.", customerID),
			model.BillingSummary{
				Kind:       model.KindBillingSummary,
				CustomerID: customerID,
				Error:      "unknown customer",
			},
			"Unknown customer account",
		)
	}
	if ent.Eligibility == plan.NotAvailable {
		log.Info().
			Str("customer_id", customerID).
			Str("plan", string(ent.Plan)).
			Msg("billing statements not entitled")
		return upgradeSuggestion(customerID, "billing statements", ent)
	}

	entries, err := h.fetcher.BillingHistory(ctx, customerID)
	if err != nil {
		log.Error().Err(err).Str("customer_id", customerID).Msg("billing history fetch failed")
		return model.NewHandoff(
			"I could not retrieve your billing history right now.",
			model.BillingSummary{
				Kind:       model.KindBillingSummary,
				CustomerID: customerID,
				Error:      "billing history unavailable",
			},
			"Billing data source unavailable",
		)
	}

	end := h.now()
	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())

	var total float64
	var views []model.BillingEntryView
	for _, e := range entries {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		total += e.Amount
		views = append(views, model.BillingEntryView{
			Date:        e.Date.Format("2006-01-02"),
			Amount:      e.Amount,
			Description: e.Description,
		})
	}

	if len(views) == 0 {
		return model.NewHandoff(
			fmt.Sprintf("I found no billing activity for %s this month.", customerID),
			model.BillingSummary{
				Kind:       model.KindBillingSummary,
				CustomerID: customerID,
				StartDate:  start.Format("2006-01-02"),
				EndDate:    end.Format("2006-01-02"),
			},
			"No billing records found for customer",
		)
	}

	log.Info().
		Str("customer_id", customerID).
		Int("entries", len(views)).
		Float64("total", total).
		Msg("billing summary computed")

	return model.New(
		fmt.Sprintf("Your month-to-date total is $%.2f across %d charges.", total, len(views)),
		model.BillingSummary{
			Kind:           model.KindBillingSummary,
			CustomerID:     customerID,
			StartDate:      start.Format("2006-01-02"),
			EndDate:        end.Format("2006-01-02"),
			TotalAmountDue: total,
			BillingHistory: views,
		},
	)
}
