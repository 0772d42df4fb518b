package conversations

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/zero-touch-cx/server/internal/agent/model"
)

// MessagesManager mediates between graph nodes and the conversation store.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
	historyMaxTurns  int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, config model.ConversationConfig) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		historyMaxTurns:  config.History.MaxTurns,
	}
}

// RecordUserMessage persists the user's turn before processing starts, so a
// mid-pipeline failure still leaves the question in the transcript.
func (cm *MessagesManager) RecordUserMessage(ctx context.Context, conversationID string, query string) error {
	return cm.conversationRepo.AddMessage(ctx, conversationID, schema.UserMessage(query))
}

// BuildAssistantContext returns the system prompt followed by the most
// recent history turns.
func (cm *MessagesManager) BuildAssistantContext(ctx context.Context, conversationID string, systemPrompt string) ([]*schema.Message, error) {
	history, err := cm.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
	}
	messages = append(messages, trimTail(history.Messages, cm.historyMaxTurns)...)
	return messages, nil
}

// SaveResponse persists the assistant's final turn.
func (cm *MessagesManager) SaveResponse(ctx context.Context, conversationID string, content string) error {
	return cm.conversationRepo.AddMessage(ctx, conversationID, schema.AssistantMessage(content, nil))
}

// trimTail keeps the last maxTurns messages, copying so callers never alias
// repository storage.
func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		result := make([]*schema.Message, len(messages))
		copy(result, messages)
		return result
	}
	source := messages[len(messages)-maxTurns:]
	result := make([]*schema.Message, len(source))
	copy(result, source)
	return result
}
