// Package oracle wraps the language-model dependency behind a single-method
// gateway. The model is treated as an unreliable remote capability: it may
// fail, stall, or return malformed text, and every caller pairs it with a
// deterministic fallback computed from data already in hand. Nothing in
// this package interprets responses.
package oracle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/go-agents/pkg/agent"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Gateway is the pipeline's only view of the language model.
type Gateway interface {
	// GenerateText sends a free-text prompt and returns the raw free-text
	// response. Callers own parse-or-fallback handling of the result.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GatewayFunc adapts a plain function to the Gateway interface.
type GatewayFunc func(ctx context.Context, prompt string) (string, error)

// GenerateText implements Gateway.
func (f GatewayFunc) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type agentGateway struct {
	cfg    gaconfig.AgentConfig
	logger *slog.Logger
}

// New creates a Gateway backed by a go-agents chat agent. The agent itself
// is constructed per call; agent construction is cheap and the underlying
// provider client carries the connection state.
func New(cfg gaconfig.AgentConfig, logger *slog.Logger) Gateway {
	return &agentGateway{
		cfg:    cfg,
		logger: logger.With("system", "oracle"),
	}
}

func (g *agentGateway) GenerateText(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(&g.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		g.logger.WarnContext(ctx, "oracle call failed", "error", err)
		return "", fmt.Errorf("chat call: %w", err)
	}

	return resp.Content(), nil
}
