package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zero-touch-cx/server/internal/agent/graph/conversations"
	"github.com/zero-touch-cx/server/internal/agent/graph/prompts"
	"github.com/zero-touch-cx/server/internal/agent/model"
	cx "github.com/zero-touch-cx/server/internal/cx/model"
	"github.com/zero-touch-cx/server/internal/cx/router"
	logx "github.com/zero-touch-cx/server/pkg/logger"
)

// Graph node names.
const (
	NodePipeline           = "PipelineNode"
	NodeHumanHandoff       = "HumanHandoffNode"
	NodeRender             = "RenderNode"
	NodeAnswerAssembler    = "AnswerAssemblerNode"
	NodeAssistantChatModel = "AssistantChatModelNode"
	NodeToolExecutor       = "ToolExecutorNode"
)

// NewPipelinePreHandler resets per-query state before the pipeline runs.
func NewPipelinePreHandler() func(context.Context, model.QueryInput, *model.AppState) (model.QueryInput, error) {
	return func(ctx context.Context, in model.QueryInput, s *model.AppState) (model.QueryInput, error) {
		if s.ConversationID == "" {
			s.ConversationID = in.ConversationID
		}
		s.ToolCallCount = 0
		s.ToolCallLimitReached = false
		s.ToolCallIDSeq = 0
		s.History = nil
		s.Envelope = nil
		return in, nil
	}
}

// NewPipelineNode runs the screened decision pipeline for one query. The
// user's turn is persisted first so a downstream failure still leaves it in
// the transcript.
func NewPipelineNode(rt *router.Router, mm *conversations.MessagesManager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.QueryInput) (cx.AgentResponse, error) {
		if err := mm.RecordUserMessage(ctx, input.ConversationID, input.Query); err != nil {
			logx.Error().Err(err).Str("conversation_id", input.ConversationID).Msg("failed to record user message")
		}
		return rt.Respond(ctx, input.Query), nil
	})
}

// NewPipelinePostHandler stores the envelope in graph state for the
// assembler and handoff nodes.
func NewPipelinePostHandler() func(context.Context, cx.AgentResponse, *model.AppState) (cx.AgentResponse, error) {
	return func(ctx context.Context, out cx.AgentResponse, state *model.AppState) (cx.AgentResponse, error) {
		state.Envelope = &out
		return out, nil
	}
}

// NewHandoffCondition routes handoff envelopes to the human handoff node and
// everything else to next.
func NewHandoffCondition(next string) func(context.Context, cx.AgentResponse) (string, error) {
	return func(ctx context.Context, input cx.AgentResponse) (string, error) {
		if input.HandoffRequired {
			logx.Debug().Str("reason", input.HandoffReason).Msg("Routing to human handoff")
			return NodeHumanHandoff, nil
		}
		return next, nil
	}
}

// NewHumanHandoffNode renders the envelope with its escalation note and
// persists the assistant turn.
func NewHumanHandoffNode(mm *conversations.MessagesManager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input cx.AgentResponse) (*schema.Message, error) {
		logx.Warn().
			Str("reason", input.HandoffReason).
			Msg("Human intervention required")

		text := router.Render(input)
		saveAssistantTurn(ctx, mm, text)
		return schema.AssistantMessage(text, nil), nil
	})
}

// NewRenderNode flattens the envelope to text without a model pass. Used
// when no chat model is configured.
func NewRenderNode(mm *conversations.MessagesManager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input cx.AgentResponse) (*schema.Message, error) {
		text := router.Render(input)
		saveAssistantTurn(ctx, mm, text)
		return schema.AssistantMessage(text, nil), nil
	})
}

// NewAnswerAssemblerNode builds the assistant model context: a system prompt
// wrapping the envelope, followed by recent conversation history.
func NewAnswerAssemblerNode(
	mm *conversations.MessagesManager,
	promptConfig *model.AssistantPromptConfig,
) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input cx.AgentResponse) ([]*schema.Message, error) {
		var conversationID string
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
			conversationID = state.ConversationID
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}

		sysPrompt, err := prompts.RenderAssistantSystem(ctx, *promptConfig, input)
		if err != nil {
			return nil, fmt.Errorf("render assistant prompt: %w", err)
		}

		messages, err := mm.BuildAssistantContext(ctx, conversationID, sysPrompt)
		if err != nil {
			return nil, fmt.Errorf("build assistant context: %w", err)
		}
		return messages, nil
	})
}

// NewAssistantChatModelPreHandler appends incoming messages to state history
// and injects a wrap-up notice once the tool call limit is hit.
func NewAssistantChatModelPreHandler(maxToolCalls int) func(context.Context, []*schema.Message, *model.AppState) ([]*schema.Message, error) {
	return func(ctx context.Context, in []*schema.Message, state *model.AppState) ([]*schema.Message, error) {
		// Gemini may omit tool_call_id on tool results; recover it from the
		// most recent assistant tool call in history.
		if len(in) > 0 {
			last := in[len(in)-1]
			if last != nil && last.Role == schema.Tool && strings.TrimSpace(last.ToolCallID) == "" {
				for i := len(state.History) - 1; i >= 0; i-- {
					msg := state.History[i]
					if msg == nil || msg.Role != schema.Assistant || len(msg.ToolCalls) == 0 {
						continue
					}
					if id := msg.ToolCalls[0].ID; strings.TrimSpace(id) != "" {
						last.ToolCallID = id
					}
					break
				}
			}
		}

		state.History = append(state.History, in...)

		if checkAndMarkToolLimit(state, maxToolCalls) {
			maxToolCalls = normalizeMaxToolCalls(maxToolCalls)
			wrapUp := &schema.Message{
				Role: schema.System,
				Content: fmt.Sprintf(
					"SYSTEM NOTICE: You have reached the maximum tool call limit (%d). "+
						"Please synthesize a helpful response using the information you've already gathered.",
					maxToolCalls,
				),
			}
			state.History = append(state.History, wrapUp)
		}

		return state.History, nil
	}
}

// NewAssistantChatModelPostHandler normalizes tool call IDs, appends the
// model output to history, and persists final assistant answers.
func NewAssistantChatModelPostHandler(mm *conversations.MessagesManager) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.AppState) (*schema.Message, error) {
		if out != nil && len(out.ToolCalls) > 0 {
			for i := range out.ToolCalls {
				if strings.TrimSpace(out.ToolCalls[i].ID) == "" {
					state.ToolCallIDSeq++
					out.ToolCalls[i].ID = fmt.Sprintf("call_%d", state.ToolCallIDSeq)
				}
			}
		}

		state.History = append(state.History, out)

		if len(out.ToolCalls) > 0 {
			logx.Debug().Int("tool_count", len(out.ToolCalls)).Msg("Calling tools")
			return out, nil
		}

		// Final assistant message: persist it.
		if out.Role == schema.Assistant && strings.TrimSpace(out.Content) != "" {
			if err := mm.SaveResponse(ctx, state.ConversationID, out.Content); err != nil {
				logx.Error().
					Str("conversation_id", state.ConversationID).
					Err(err).
					Msg("Error saving assistant response")
			}
		}
		return out, nil
	}
}

// NewToolExecutorCondition routes to the tool executor while the model keeps
// requesting tools and the limit has not been hit.
func NewToolExecutorCondition() func(context.Context, *schema.Message) (string, error) {
	return func(ctx context.Context, input *schema.Message) (string, error) {
		var limitReached bool
		compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
			limitReached = state.ToolCallLimitReached
			return nil
		})

		if limitReached {
			logx.Debug().Msg("Tool limit reached - routing to end")
			return compose.END, nil
		}
		if len(input.ToolCalls) > 0 {
			return NodeToolExecutor, nil
		}
		return compose.END, nil
	}
}

// NewToolExecutorPreHandler counts tool executions against the limit.
func NewToolExecutorPreHandler(maxToolCalls int) func(context.Context, *schema.Message, *model.AppState) (*schema.Message, error) {
	return func(ctx context.Context, in *schema.Message, state *model.AppState) (*schema.Message, error) {
		exceeded := incrementToolCallAndCheck(state, maxToolCalls)
		if exceeded {
			logx.Warn().
				Int("tool_call_count", state.ToolCallCount).
				Str("conversation_id", state.ConversationID).
				Msg("Tool call limit exceeded - flagging and continuing")
		}
		return in, nil
	}
}

func saveAssistantTurn(ctx context.Context, mm *conversations.MessagesManager, text string) {
	var conversationID string
	if err := compose.ProcessState(ctx, func(_ context.Context, state *model.AppState) error {
		conversationID = state.ConversationID
		return nil
	}); err != nil {
		logx.Error().Err(err).Msg("failed to access state")
		return
	}
	if err := mm.SaveResponse(ctx, conversationID, text); err != nil {
		logx.Error().Err(err).Str("conversation_id", conversationID).Msg("failed to save assistant turn")
	}
}
