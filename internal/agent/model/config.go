package model

// ================ Config ================
type ConversationConfig struct {
	TTL     string `envconfig:"CONVERSATION_TTL" default:"15m"`
	History struct {
		MaxTurns int `envconfig:"CONVERSATION_HISTORY_MAX_TURNS" default:"10"`
	}
	Tools struct {
		MaxCalls int `envconfig:"CONVERSATION_TOOL_MAX_CALLS" default:"6"`
	}
}

type AssistantModelConfig struct {
	Model       string  `envconfig:"ASSISTANT_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"ASSISTANT_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"ASSISTANT_TEMPERATURE" default:"0.3"`
}

type AssistantPromptConfig struct {
	BusinessName string `envconfig:"PROMPT_BUSINESS_NAME" default:"Zero Touch CX"`
	Persona      string `envconfig:"PROMPT_PERSONA" default:"a concise, helpful banking operations assistant"`
}
