package prompts

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/zero-touch-cx/server/internal/agent/graph/tools"
	"github.com/zero-touch-cx/server/internal/agent/model"
	"github.com/zero-touch-cx/server/internal/cx/flows"
	cx "github.com/zero-touch-cx/server/internal/cx/model"
)

//go:embed template/assistant_prompt.txt
var assistantSystemPrompt string

// RenderAssistantSystem renders the assistant system prompt around the
// pipeline's draft envelope and triggers prompt callbacks.
func RenderAssistantSystem(ctx context.Context, config model.AssistantPromptConfig, envelope cx.AgentResponse) (string, error) {
	draft, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal envelope: %w", err)
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(assistantSystemPrompt),
	)
	vars := map[string]any{
		"BusinessName":    config.BusinessName,
		"Persona":         config.Persona,
		"Envelope":        string(draft),
		"ConfirmPhrase":   flows.ConfirmPhrase,
		"BillingTool":     tools.ToolBillingSummary,
		"ReportTool":      tools.ToolWireReport,
		"EligibilityTool": tools.ToolPlanEligibility,
		"UpgradeTool":     tools.ToolPlanUpgrade,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("assistant prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("assistant prompt render: empty result")
	}
	return msgs[0].Content, nil
}
