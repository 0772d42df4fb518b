package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/zero-touch-cx/server/internal/cx/plan"
)

// ===================================
// Plan Eligibility Tool
// ===================================

type PlanEligibilityInput struct {
	CustomerID string `json:"customer_id"`
	Feature    string `json:"feature,omitempty"`
	Query      string `json:"query,omitempty"`
}

type PlanEligibilityOutput struct {
	Result          plan.EligibilityResult `json:"result"`
	UpgradeBenefits []string               `json:"upgrade_benefits,omitempty"`
	NextTier        string                 `json:"next_tier,omitempty"`
}

func createPlanEligibilityTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolPlanEligibility,
			Desc: "Check whether a feature is included, optional, or unavailable on the customer's current plan, and what an upgrade would add. Provide either a canonical feature name or the customer's free-text question.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customer_id": {
					Type:     "string",
					Desc:     "Customer identifier, e.g. cust_001 or USR-AstroZen",
					Required: true,
				},
				"feature": {
					Type: "string",
					Desc: "Canonical feature name, e.g. 'Intraday Expanded Detail'",
				},
				"query": {
					Type: "string",
					Desc: "The customer's question, used to resolve the feature when no canonical name is given",
				},
			}),
		},
		func(ctx context.Context, in *PlanEligibilityInput) (*PlanEligibilityOutput, error) {
			return evalPlanEligibility(in)
		},
	)
}

// evalPlanEligibility resolves the feature and classifies it. Anything short
// of INCLUDED gets the next-tier suggestion with the feature diff, so the
// model can pitch the upgrade for optional add-ons too.
func evalPlanEligibility(in *PlanEligibilityInput) (*PlanEligibilityOutput, error) {
	if in.CustomerID == "" {
		return nil, fmt.Errorf("customer_id is required")
	}
	feature := in.Feature
	if feature == "" {
		f, ok := plan.ExtractFeature(in.Query)
		if !ok {
			return nil, plan.ErrUnknownFeature
		}
		feature = f
	}

	result, err := plan.FeatureEligibility(in.CustomerID, feature)
	if err != nil {
		return nil, err
	}

	out := &PlanEligibilityOutput{Result: result}
	if result.Eligibility != plan.Included {
		if next, gained, ok := plan.UpgradeBenefits(result.Plan); ok {
			out.NextTier = string(next)
			out.UpgradeBenefits = gained
		}
	}
	return out, nil
}
