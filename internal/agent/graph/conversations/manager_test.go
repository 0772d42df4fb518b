package conversations

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/zero-touch-cx/server/internal/agent/model"
	"github.com/zero-touch-cx/server/internal/agent/repo"
)

func newManager(maxTurns int) (*MessagesManager, model.ConversationRepository) {
	var cfg model.ConversationConfig
	cfg.History.MaxTurns = maxTurns
	r := repo.NewMemoryConversationRepository()
	return NewMessagesManager(r, cfg), r
}

func TestRecordAndBuildContext(t *testing.T) {
	ctx := context.Background()
	mm, _ := newManager(10)

	if err := mm.RecordUserMessage(ctx, "conv-1", "show my bill"); err != nil {
		t.Fatal(err)
	}
	if err := mm.SaveResponse(ctx, "conv-1", "your total is $10"); err != nil {
		t.Fatal(err)
	}

	msgs, err := mm.BuildAssistantContext(ctx, "conv-1", "system prompt")
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want 3", len(msgs))
	}
	if msgs[0].Role != schema.System || msgs[1].Role != schema.User || msgs[2].Role != schema.Assistant {
		t.Fatalf("roles = %v %v %v", msgs[0].Role, msgs[1].Role, msgs[2].Role)
	}
}

func TestBuildContextTrimsHistory(t *testing.T) {
	ctx := context.Background()
	mm, _ := newManager(2)

	for i := 0; i < 5; i++ {
		if err := mm.RecordUserMessage(ctx, "conv-2", "turn"); err != nil {
			t.Fatal(err)
		}
	}

	msgs, err := mm.BuildAssistantContext(ctx, "conv-2", "system prompt")
	if err != nil {
		t.Fatal(err)
	}
	// system prompt plus the two newest turns
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want 3", len(msgs))
	}
}
