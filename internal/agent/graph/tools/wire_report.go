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
// Wire Report Tool
// ===================================

type WireReportInput struct {
	CustomerID string `json:"customer_id"`
	Days       int    `json:"days,omitempty"`
}

func createWireReportTool(h *flows.ReportingHandler) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolWireReport,
			Desc: "Generate a wire status report card for a customer over a trailing day window, with status counts, KPIs, and an optional chart. Use for wire status, transfer status, or report requests.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customer_id": {
					Type:     "string",
					Desc:     "Customer identifier, e.g. cust_001",
					Required: true,
				},
				"days": {
					Type: "number",
					Desc: "Trailing window in days (default 30)",
				},
			}),
		},
		func(ctx context.Context, in *WireReportInput) (*FlowOutput, error) {
			if in.CustomerID == "" {
				return nil, fmt.Errorf("customer_id is required")
			}
			if in.Days <= 0 {
				in.Days = 30
			}
			resp := h.Generate(ctx, in.CustomerID, in.Days)
			return flowOutput(resp), nil
		},
	)
}
