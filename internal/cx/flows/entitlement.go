package flows

import (
	"fmt"

	"github.com/zero-touch-cx/server/internal/cx/model"
	"github.com/zero-touch-cx/server/internal/cx/plan"
)

// upgradeSuggestion answers a data request the customer's plan does not
// cover. The data source is never touched; the response proposes the plan
// that would grant the capability.
func upgradeSuggestion(customerID, capability string, ent plan.EligibilityResult) model.AgentResponse {
	dec := model.UpgradeDecision{
		Kind:                 model.KindUpgradeDecision,
		CustomerID:           customerID,
		CurrentPlan:          string(ent.Plan),
		Eligible:             true,
		RequiresConfirmation: true,
		Confidence:           0.9,
	}

	target := ent.AvailableOn
	if target == "" {
		if next, _, ok := plan.UpgradeBenefits(ent.Plan); ok {
			target = next
		}
	}
	if target == "" {
		dec.Eligible = false
		dec.Reasons = []string{fmt.Sprintf("%s is not offered on any plan", ent.Feature)}
		return model.New(
			fmt.Sprintf("Your %s plan does not include %s.", ent.Plan, capability),
			dec,
		)
	}

	dec.RequestedPlan = string(target)
	dec.SimulatedMonthlyPriceUSD = plan.Price(target)
	dec.Reasons = []string{fmt.Sprintf("%s is available on %s", ent.Feature, target)}
	dec.NextBestActions = []string{
		fmt.Sprintf("Reply '%s' to move to %s at $%.0f/month", ConfirmPhrase, target, plan.Price(target)),
	}
	return model.New(
		fmt.Sprintf("Your %s plan does not include %s. Upgrading to %s would add it.",
			ent.Plan, capability, target),
		dec,
	)
}
