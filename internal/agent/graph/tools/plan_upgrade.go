package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/zero-touch-cx/server/internal/cx/flows"
	"github.com/zero-touch-cx/server/internal/cx/plan"
)

// ===================================
// Plan Upgrade Tool
// ===================================

type PlanUpgradeInput struct {
	CustomerID string `json:"customer_id"`
	TargetPlan string `json:"target_plan,omitempty"`
	Confirmed  bool   `json:"confirmed,omitempty"`
}

func createPlanUpgradeTool(h *flows.UpgradeHandler) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolPlanUpgrade,
			Desc: "Evaluate or execute a plan upgrade. Set confirmed=true ONLY when the customer has explicitly confirmed the upgrade in this conversation; otherwise the tool returns a quote requiring confirmation.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customer_id": {
					Type:     "string",
					Desc:     "Customer identifier, e.g. cust_001",
					Required: true,
				},
				"target_plan": {
					Type: "string",
					Desc: "Target plan: Bronze, Silver, or Gold. Legacy names basic/starter/pro/max are accepted. Defaults to Gold.",
				},
				"confirmed": {
					Type: "boolean",
					Desc: "Whether the customer explicitly confirmed the upgrade",
				},
			}),
		},
		func(ctx context.Context, in *PlanUpgradeInput) (*FlowOutput, error) {
			if in.CustomerID == "" {
				return nil, fmt.Errorf("customer_id is required")
			}
			requested := plan.RequestedPlan(in.TargetPlan)
			userText := ""
			if in.Confirmed {
				userText = flows.ConfirmPhrase
			}
			resp := h.Decide(ctx, in.CustomerID, requested, userText)
			return flowOutput(resp), nil
		},
	)
}
