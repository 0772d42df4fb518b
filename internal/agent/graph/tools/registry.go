// Package tools exposes the business flows as model-callable tools.
package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/zero-touch-cx/server/internal/cx/flows"
	"github.com/zero-touch-cx/server/internal/cx/model"
)

// Tool names as the model sees them.
const (
	ToolBillingSummary  = "billing_summary"
	ToolWireReport      = "wire_report"
	ToolPlanEligibility = "plan_eligibility"
	ToolPlanUpgrade     = "plan_upgrade"
)

// Deps carries the flow handlers the tools delegate to.
type Deps struct {
	Billing   *flows.BillingHandler
	Reporting *flows.ReportingHandler
	Upgrade   *flows.UpgradeHandler
}

// AssistantTools returns the full tool set for the assistant model.
func AssistantTools(deps Deps) []tool.BaseTool {
	return []tool.BaseTool{
		createBillingSummaryTool(deps.Billing),
		createWireReportTool(deps.Reporting),
		createPlanEligibilityTool(),
		createPlanUpgradeTool(deps.Upgrade),
	}
}

// FlowOutput is the envelope shape every flow-backed tool returns to the
// model.
type FlowOutput struct {
	Summary         string `json:"summary"`
	Data            any    `json:"data"`
	HandoffRequired bool   `json:"handoff_required"`
	HandoffReason   string `json:"handoff_reason,omitempty"`
}

func flowOutput(resp model.AgentResponse) *FlowOutput {
	return &FlowOutput{
		Summary:         resp.Summary,
		Data:            resp.Payload,
		HandoffRequired: resp.HandoffRequired,
		HandoffReason:   resp.HandoffReason,
	}
}

// GetToolInfos collects the ToolInfo of every tool for model binding.
func GetToolInfos(ctx context.Context, tools []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
