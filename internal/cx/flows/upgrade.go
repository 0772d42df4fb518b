package flows

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zero-touch-cx/server/internal/cx/model"
	"github.com/zero-touch-cx/server/internal/cx/plan"
	logx "github.com/zero-touch-cx/server/pkg/logger"
	"github.com/zero-touch-cx/server/pkg/tracing"
)

// ConfirmPhrase must appear in the user's message before any plan change is
// executed. Matching is case-insensitive.
const ConfirmPhrase = "confirm upgrade"

// UpgradeHandler runs the two-phase plan upgrade flow: the first pass always
// returns a decision that requires confirmation, and only a confirmed,
// eligible, policy-cleared request triggers the executor.
type UpgradeHandler struct {
	search PassageSearcher
	exec   UpgradeExecutor
}

// NewUpgradeHandler builds a handler. search may be nil; exec must not be.
func NewUpgradeHandler(search PassageSearcher, exec UpgradeExecutor) *UpgradeHandler {
	return &UpgradeHandler{search: search, exec: exec}
}

// Decide evaluates an upgrade request for customerID to the requested tier.
// userText is scanned for the confirmation phrase.
func (h *UpgradeHandler) Decide(ctx context.Context, customerID string, requested plan.Tier, userText string) model.AgentResponse {
	ctx, span := tracing.Span(ctx, "flows.upgrade.decide",
		attribute.String("customer.id", customerID),
		attribute.String("plan.requested", string(requested)))
	defer span.End()

	log := logx.Component("upgrade")

	current, known := plan.TierOf(customerID)
	if !known {
		return model.NewHandoff(
			fmt.Sprintf("I could not find an account for %s.", customerID),
			model.UpgradeDecision{
				Kind:                 model.KindUpgradeDecision,
				CustomerID:           customerID,
				RequestedPlan:        string(requested),
				RequiresConfirmation: true,
			},
			"Unknown customer account",
		)
	}

	decision := model.UpgradeDecision{
		Kind:                     model.KindUpgradeDecision,
		CustomerID:               customerID,
		CurrentPlan:              string(current),
		RequestedPlan:            string(requested),
		SimulatedMonthlyPriceUSD: plan.Price(requested),
		Confidence:               0.9,
	}

	eligible, reasons := h.eligibility(customerID, current, requested)
	decision.Eligible = eligible
	decision.Reasons = reasons

	if !eligible {
		decision.RequiresConfirmation = true
		decision.NextBestActions = []string{"Contact support if you believe this is incorrect"}
		return model.New(
			fmt.Sprintf("You are not eligible to move from %s to %s.", current, requested),
			decision,
		)
	}

	if allowed, clause := h.policyAllows(ctx, userText); !allowed {
		decision.RequiresConfirmation = true
		if clause != "" {
			decision.Reasons = append(decision.Reasons,
				fmt.Sprintf("Policy %q requires explicit confirmation", clause))
		}
		decision.NextBestActions = []string{
			fmt.Sprintf("Reply '%s' to move from %s to %s at $%.0f/month",
				ConfirmPhrase, current, requested, plan.Price(requested)),
		}
		return model.New(
			fmt.Sprintf("You can upgrade from %s to %s for $%.0f/month. Reply '%s' to proceed.",
				current, requested, plan.Price(requested), ConfirmPhrase),
			decision,
		)
	}

	ticket, err := h.exec.ExecuteUpgrade(ctx, customerID, string(requested))
	if err != nil {
		log.Error().Err(err).Str("customer_id", customerID).Msg("upgrade execution failed")
		decision.RequiresConfirmation = true
		return model.NewHandoff(
			"Your upgrade could not be completed automatically.",
			decision,
			"Plan change execution failed",
		)
	}

	decision.TicketID = ticket
	decision.NextBestActions = []string{"Your new plan features are active within a few minutes"}
	log.Info().
		Str("customer_id", customerID).
		Str("ticket_id", ticket).
		Str("plan", string(requested)).
		Msg("plan upgrade executed")

	return model.New(
		fmt.Sprintf("Done. You are now on %s. Ticket %s.", requested, ticket),
		decision,
	)
}

// eligibility applies the ordering and payment rules. Reasons accumulate so
// the decision explains itself.
func (h *UpgradeHandler) eligibility(customerID string, current, requested plan.Tier) (bool, []string) {
	if !requested.Valid() {
		return false, []string{fmt.Sprintf("Unknown plan %q", requested)}
	}
	if current == requested {
		return false, []string{fmt.Sprintf("Already on %s", current)}
	}
	rank := func(t plan.Tier) int {
		for i, tier := range plan.Hierarchy {
			if tier == t {
				return i
			}
		}
		return -1
	}
	if rank(requested) < rank(current) {
		return false, []string{fmt.Sprintf("%s is below your current %s plan; downgrades are handled by support", requested, current)}
	}
	if requested == plan.Gold && !plan.HasPaymentOnFile(customerID) {
		return false, []string{"Gold requires a payment method on file; none found"}
	}
	return true, []string{fmt.Sprintf("Upgrade path %s to %s is available", current, requested)}
}

// policyAllows evaluates the user's message against the retrieved upgrade
// policy before any financial action. The governing clause demands the
// explicit confirmation phrase in the same turn; a missing or failing search
// collaborator falls back to the phrase check alone. The clause title is
// returned when it is the reason for denial.
func (h *UpgradeHandler) policyAllows(ctx context.Context, userText string) (bool, string) {
	confirmed := strings.Contains(strings.ToLower(userText), ConfirmPhrase)
	if h.search == nil {
		return confirmed, ""
	}
	passages, err := h.search.Search(ctx, "plan change financial action confirmation", 2)
	if err != nil {
		logx.Component("upgrade").Warn().Err(err).Msg("policy search failed")
		return confirmed, ""
	}
	for _, p := range passages {
		if strings.Contains(strings.ToLower(p.Text), "no financial action without confirmation") && !confirmed {
			return false, p.Title
		}
	}
	return confirmed, ""
}
