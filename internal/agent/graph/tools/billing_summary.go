package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/zero-touch-cx/server/internal/cx/flows"
)

// ===================================
// Billing Summary Tool
// ===================================

type BillingSummaryInput struct {
	CustomerID string `json:"customer_id"`
}

func createBillingSummaryTool(h *flows.BillingHandler) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolBillingSummary,
			Desc: "Get the customer's month-to-date billing summary with line items and total amount due. Use whenever the customer asks about bills, charges, or fees.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customer_id": {
					Type:     "string",
					Desc:     "Customer identifier, e.g. cust_001",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *BillingSummaryInput) (*FlowOutput, error) {
			if in.CustomerID == "" {
				return nil, fmt.Errorf("customer_id is required")
			}
			resp := h.Summarize(ctx, in.CustomerID)
			return flowOutput(resp), nil
		},
	)
}
