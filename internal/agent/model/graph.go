package model

import (
	"github.com/cloudwego/eino/schema"

	cx "github.com/zero-touch-cx/server/internal/cx/model"
)

// AppState stores per-invocation state for the Eino graph.
// Concurrency model:
//   - Registered as graph local state via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers:
//     WithStatePreHandler, WithStatePostHandler, or compose.ProcessState.
//   - Eino serializes access within these handlers, so no extra locking is
//     needed as long as the state is never touched outside them.
type AppState struct {
	ConversationID       string
	History              []*schema.Message  // mutated only inside Eino state handlers
	Envelope             *cx.AgentResponse  // set by the pipeline post-handler
	ToolCallCount        int
	ToolCallLimitReached bool
	ToolCallIDSeq        int // synthesizes tool_call_id when the provider omits it
}

// QueryInput is the public input for one user turn.
type QueryInput struct {
	ConversationID string `json:"conversation_id"`
	Query          string `json:"query"`
}
