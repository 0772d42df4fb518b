// Package graph composes the assistant conversation graph: the screened
// decision pipeline, the human handoff path, and an optional model-polished
// answer path with tool access.
package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zero-touch-cx/server/internal/agent/graph/conversations"
	"github.com/zero-touch-cx/server/internal/agent/graph/nodes"
	"github.com/zero-touch-cx/server/internal/agent/graph/observers"
	"github.com/zero-touch-cx/server/internal/agent/graph/tools"
	"github.com/zero-touch-cx/server/internal/agent/model"
	"github.com/zero-touch-cx/server/internal/cx/router"
	logx "github.com/zero-touch-cx/server/pkg/logger"
)

// Runner executes the compiled graph with the public QueryInput.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (string, error)
}

// Config holds everything needed to compose the assistant graph end-to-end.
// An empty APIKey disables the chat model; the graph then renders the
// pipeline envelope deterministically.
type Config struct {
	APIKey           string
	BaseURL          string
	Assistant        model.AssistantModelConfig
	Prompt           model.AssistantPromptConfig
	Conversation     model.ConversationConfig
	ConversationRepo model.ConversationRepository
	Router           *router.Router
	ToolDeps         tools.Deps
}

// GraphConfig holds the constructed collaborators needed to build the graph.
type GraphConfig struct {
	ChatModels      *nodes.ChatModels // nil disables the model path
	MessagesManager *conversations.MessagesManager
	Router          *router.Router
	PromptConfig    *model.AssistantPromptConfig
	ToolDeps        tools.Deps
	ToolMaxCalls    int
}

// GraphBuilder handles the construction of the assistant conversation graph.
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.QueryInput, *schema.Message]
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, *schema.Message]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (string, error) {
	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", nil
	}
	return out.Content, nil
}

// BuildAssistantGraph constructs chat models and the messages manager, builds
// the graph, and returns a Runner.
func BuildAssistantGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.ConversationRepo == nil {
		return nil, fmt.Errorf("conversation repo is nil")
	}
	if cfg.Router == nil {
		return nil, fmt.Errorf("router is nil")
	}

	var cms *nodes.ChatModels
	if cfg.APIKey != "" {
		var err error
		cms, err = nodes.NewChatModels(ctx, nodes.ChatModelConfig{
			APIKey:    cfg.APIKey,
			BaseURL:   cfg.BaseURL,
			Assistant: &cfg.Assistant,
		})
		if err != nil {
			return nil, err
		}
	} else {
		logx.Info().Msg("No API key configured; assistant answers are rendered deterministically")
	}

	mm := conversations.NewMessagesManager(cfg.ConversationRepo, cfg.Conversation)

	runnable, err := BuildGraph(ctx, &GraphConfig{
		ChatModels:      cms,
		MessagesManager: mm,
		Router:          cfg.Router,
		PromptConfig:    &cfg.Prompt,
		ToolDeps:        cfg.ToolDeps,
		ToolMaxCalls:    cfg.Conversation.Tools.MaxCalls,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Assistant graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// BuildGraph constructs and returns the compiled assistant graph.
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.MessagesManager == nil {
		return nil, fmt.Errorf("messages manager is nil")
	}
	if config.Router == nil {
		return nil, fmt.Errorf("router is nil")
	}
	if config.PromptConfig == nil {
		return nil, fmt.Errorf("prompt config is nil")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.QueryInput, *schema.Message](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	if builder.withModel() {
		if err := builder.setupTools(ctx); err != nil {
			return nil, err
		}
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

func (b *GraphBuilder) withModel() bool {
	return b.config.ChatModels != nil
}

// setupTools configures the flow tools and binds them to the assistant model.
func (b *GraphBuilder) setupTools(ctx context.Context) error {
	flowTools := tools.AssistantTools(b.config.ToolDeps)
	toolInfos, err := tools.GetToolInfos(ctx, flowTools)
	if err != nil {
		logx.Error().Err(err).Msg("Failed to get tool infos")
		return fmt.Errorf("failed to get tool infos: %w", err)
	}

	if err := b.config.ChatModels.BindToolsToAssistant(ctx, toolInfos); err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools to assistant model")
		return fmt.Errorf("failed to bind tools to assistant model: %w", err)
	}

	toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
		Tools:               flowTools,
		ExecuteSequentially: true,
		UnknownToolsHandler: func(ctx context.Context, name, input string) (string, error) {
			// Gracefully handle hallucinated or malformed tool calls.
			logx.Warn().
				Str("tool_name", name).
				Str("arguments", input).
				Msg("Unknown or invalid tool call; returning fallback result")
			return fmt.Sprintf("{\"error\":\"unknown_tool\",\"name\":%q,\"note\":\"ignored\"}", name), nil
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Failed to create tools node")
		return fmt.Errorf("failed to create tools node: %w", err)
	}

	b.graph.AddToolsNode(nodes.NodeToolExecutor, toolsNode,
		compose.WithStatePreHandler(nodes.NewToolExecutorPreHandler(b.config.ToolMaxCalls)),
	)
	return nil
}

// addNodes adds all processing nodes to the graph.
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodePipeline,
		nodes.NewPipelineNode(b.config.Router, b.config.MessagesManager),
		compose.WithStatePreHandler(nodes.NewPipelinePreHandler()),
		compose.WithStatePostHandler(nodes.NewPipelinePostHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeHumanHandoff,
		nodes.NewHumanHandoffNode(b.config.MessagesManager),
	)

	if !b.withModel() {
		b.graph.AddLambdaNode(nodes.NodeRender,
			nodes.NewRenderNode(b.config.MessagesManager),
		)
		return
	}

	b.graph.AddLambdaNode(nodes.NodeAnswerAssembler,
		nodes.NewAnswerAssemblerNode(b.config.MessagesManager, b.config.PromptConfig),
	)

	b.graph.AddChatModelNode(nodes.NodeAssistantChatModel,
		b.config.ChatModels.Assistant,
		compose.WithStatePreHandler(nodes.NewAssistantChatModelPreHandler(b.config.ToolMaxCalls)),
		compose.WithStatePostHandler(nodes.NewAssistantChatModelPostHandler(b.config.MessagesManager)),
	)
}

// addEdges creates the main flow connections between nodes.
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodePipeline},
		{nodes.NodeHumanHandoff, compose.END},
	}
	if b.withModel() {
		edges = append(edges,
			[2]string{nodes.NodeAnswerAssembler, nodes.NodeAssistantChatModel},
			[2]string{nodes.NodeToolExecutor, nodes.NodeAssistantChatModel},
		)
	} else {
		edges = append(edges, [2]string{nodes.NodeRender, compose.END})
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates conditional routing branches.
func (b *GraphBuilder) addBranches() error {
	next := nodes.NodeRender
	if b.withModel() {
		next = nodes.NodeAnswerAssembler
	}

	handoffBranch := compose.NewGraphBranch(
		nodes.NewHandoffCondition(next),
		map[string]bool{
			nodes.NodeHumanHandoff: true,
			next:                   true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodePipeline, handoffBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding handoff branch")
		return fmt.Errorf("error adding handoff branch: %w", err)
	}

	if !b.withModel() {
		return nil
	}

	decisionBranch := compose.NewGraphBranch(
		nodes.NewToolExecutorCondition(),
		map[string]bool{
			nodes.NodeToolExecutor: true,
			compose.END:            true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeAssistantChatModel, decisionBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding decision branch")
		return fmt.Errorf("error adding decision branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph.
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	// Limit total run steps to avoid loops in branching or tool retries.
	maxSteps := 10 + b.config.ToolMaxCalls*2
	if maxSteps < 20 {
		maxSteps = 20
	}

	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(maxSteps))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
