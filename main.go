package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/zero-touch-cx/server/internal/agent/graph"
	"github.com/zero-touch-cx/server/internal/agent/graph/tools"
	agentmodel "github.com/zero-touch-cx/server/internal/agent/model"
	"github.com/zero-touch-cx/server/internal/agent/repo"
	"github.com/zero-touch-cx/server/internal/audit"
	"github.com/zero-touch-cx/server/internal/cx/flows"
	"github.com/zero-touch-cx/server/internal/cx/router"
	"github.com/zero-touch-cx/server/internal/search/docsearch"
	"github.com/zero-touch-cx/server/internal/store/artifacts"
	"github.com/zero-touch-cx/server/internal/store/mockstore"
	logx "github.com/zero-touch-cx/server/pkg/logger"
	pkgredis "github.com/zero-touch-cx/server/pkg/redis"
	"github.com/zero-touch-cx/server/pkg/tracing"
)

// AppConfig defines the configurable parameters for the demo, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	// Infrastructure
	Redis pkgredis.Config

	// LLM provider; optional, the demo renders deterministically without it
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Assistant    agentmodel.AssistantModelConfig
	Prompt       agentmodel.AssistantPromptConfig
	Conversation agentmodel.ConversationConfig

	// Demo data
	DocsDir      string `envconfig:"DOCS_DIR" default:"docs"`
	ArtifactsDir string `envconfig:"ARTIFACTS_DIR" default:"artifacts"`
}

func main() {
	ctx := context.Background()
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init()
	shutdownTracing := tracing.Init()
	defer shutdownTracing(ctx)

	// Conversation history: Redis when configured, memory otherwise.
	var conversationRepo agentmodel.ConversationRepository = repo.NewMemoryConversationRepository()
	if envCfg.Redis.Enabled() {
		ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
		if err != nil {
			log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", envCfg.Conversation.TTL, err)
		}
		rdb, err := envCfg.Redis.New()
		if err != nil {
			log.Fatalf("Failed to initialise Redis client: %v", err)
		}
		defer rdb.Close()
		conversationRepo = repo.NewRedisConversationRepository(rdb, ttl)
		fmt.Println("Connected to Redis successfully")
	}

	// Demo collaborators: seeded in-memory data, local artifacts, and the
	// markdown policy corpus.
	store := mockstore.NewSeeded()
	artifactStore, err := artifacts.NewLocalStore(envCfg.ArtifactsDir)
	if err != nil {
		log.Fatalf("Failed to create artifact store: %v", err)
	}
	searcher, err := docsearch.NewFromDir(envCfg.DocsDir)
	if err != nil {
		log.Fatalf("Failed to load policy documents: %v", err)
	}

	billing := flows.NewBillingHandler(store)
	reporting := flows.NewReportingHandler(store, searcher, artifactStore, "mock")
	upgrade := flows.NewUpgradeHandler(searcher, mockstore.Executor{})

	rt := router.New(router.Config{
		Billing:   billing,
		Reporting: reporting,
		Upgrade:   upgrade,
		Audit:     audit.LogSink{},
	})

	runner, err := graph.BuildAssistantGraph(ctx, graph.Config{
		APIKey:           envCfg.APIKey,
		BaseURL:          envCfg.BaseURL,
		Assistant:        envCfg.Assistant,
		Prompt:           envCfg.Prompt,
		Conversation:     envCfg.Conversation,
		ConversationRepo: conversationRepo,
		Router:           rt,
		ToolDeps: tools.Deps{
			Billing:   billing,
			Reporting: reporting,
			Upgrade:   upgrade,
		},
	})
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}

	testQueries := []struct {
		description string
		query       string
	}{
		{
			description: "Wire status report",
			query:       "Show me my wire status report for last 30 days cust_001",
		},
		{
			description: "Plan upgrade quote",
			query:       "Upgrade me to Pro cust_001",
		},
		{
			description: "Confirmed plan upgrade",
			query:       "confirm upgrade to gold cust_001",
		},
		{
			description: "Billing inquiry",
			query:       "What's on my bill this month? cust_003",
		},
		{
			description: "Sensitive data is refused",
			query:       "My SSN is 123-45-6789, add it to my billing profile.",
		},
		{
			description: "Off-topic request",
			query:       "What's the weather like today?",
		},
	}

	conversationID := "demo-conversation-001"

	for i, test := range testQueries {
		fmt.Printf("\nTest %d: %s\n", i+1, test.description)
		fmt.Printf("Query: %q\n", test.query)

		response, err := runner.Invoke(ctx, agentmodel.QueryInput{
			ConversationID: conversationID,
			Query:          test.query,
		})
		if err != nil {
			log.Fatalf("Failed to invoke graph for test %d: %v", i+1, err)
		}

		fmt.Printf("Response %d:\n%s\n", i+1, response)
		fmt.Println("------------------------------------------------")
	}

	fmt.Println("All demo queries completed.")
}
