package v1

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tranvuongquocdat/life-companition-AI-sub000/internal"
)

// Client exposes the memory engine as tool-call handlers. Both methods return
// strings meant to be fed back to a language model verbatim, so user-level
// problems (bad type, nothing matched) come back as result text, not errors.
type Client struct {
	engine *internal.Engine
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	vault := internal.ResolveVault(cfg.vaultDir)

	gateway := cfg.gateway
	if gateway == nil {
		loaded, err := internal.LoadConfig(vault)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		gateway = internal.NewGatewayFromConfig(loaded)
	}

	return &Client{
		engine: internal.NewEngine(vault, gateway),
	}, nil
}

// SaveMemory handles the save_memory tool call.
func (c *Client) SaveMemory(ctx context.Context, content, kind string) (string, error) {
	out, err := c.engine.Save(ctx, content, kind)
	if errors.Is(err, internal.ErrInvalidKind) {
		return fmt.Sprintf("Invalid memory type %q. Use: fact, preference, context, emotional", kind), nil
	}
	if err != nil {
		return "", fmt.Errorf("save memory: %w", err)
	}

	return fmt.Sprintf("Memory saved [%s] %s", out.Entry.Kind, out.Entry.ID), nil
}

// RecallMemory handles the recall_memory tool call. days < 0 means no date
// window, limit <= 0 falls back to the default.
func (c *Client) RecallMemory(ctx context.Context, query string, days, limit int) (string, error) {
	out, err := c.engine.Recall(ctx, internal.RecallInput{
		Query: query, Days: days, Limit: limit,
	})
	if err != nil {
		return "", fmt.Errorf("recall memories: %w", err)
	}

	if !out.HasLog {
		return "No memories saved yet.", nil
	}
	if len(out.Results) == 0 {
		if q := strings.TrimSpace(query); q != "" {
			return fmt.Sprintf("No memories matching %q.", q), nil
		}
		return "No memories saved yet.", nil
	}

	blocks := make([]string, 0, len(out.Results))
	for _, r := range out.Results {
		blocks = append(blocks, fmt.Sprintf("[%s] %s\n%s", r.Entry.Kind, r.Entry.ID, r.Entry.Content))
	}
	return strings.Join(blocks, "\n\n"), nil
}

// Close releases any resources held by the client.
func (c *Client) Close() error {
	return nil
}
