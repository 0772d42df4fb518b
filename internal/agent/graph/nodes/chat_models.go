package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/zero-touch-cx/server/internal/agent/model"
	logx "github.com/zero-touch-cx/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation.
type ChatModelConfig struct {
	APIKey    string
	BaseURL   string
	Assistant *model.AssistantModelConfig
}

// ChatModels holds the assistant chat model.
type ChatModels struct {
	Assistant          *gemini.ChatModel
	AssistantModelName string
}

// NewChatModels creates the assistant chat model.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	assistant, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.Assistant.Model,
		Temperature: &config.Assistant.Temperature,
		MaxTokens:   &config.Assistant.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: true,
			ThinkingBudget:  genai.Ptr(int32(2000)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating assistant model")
		return nil, fmt.Errorf("error creating assistant model: %w", err)
	}

	return &ChatModels{
		Assistant:          assistant,
		AssistantModelName: config.Assistant.Model,
	}, nil
}

// BindToolsToAssistant binds tools to the assistant chat model.
func (cm *ChatModels) BindToolsToAssistant(ctx context.Context, tools []*schema.ToolInfo) error {
	if err := cm.Assistant.BindTools(tools); err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools")
		return fmt.Errorf("failed to bind tools: %w", err)
	}
	logx.Debug().Msg("Successfully bound tools to assistant model")
	return nil
}
