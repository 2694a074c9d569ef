package llm

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.7
	DefaultTimeout     = 60 * time.Second

	systemPrompt = "You are a helpful AI assistant. Use the provided context and conversation history " +
		"to provide relevant and accurate answers. If the context doesn't contain relevant " +
		"information, say so politely and provide a general answer."
)

// Config holds the gateway's provider configuration.
type Config struct {
	Endpoint    string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Format      Format
	Timeout     time.Duration
}

// Gateway sends assembled prompts to a single configured provider endpoint
// and parses the response through the adapter matching its wire format. It
// holds no conversation state and never retries.
type Gateway struct {
	cfg     Config
	adapter Adapter
	client  *http.Client
}

// Ensure Gateway implements Querier
var _ Querier = &Gateway{}

// NewGateway validates the configuration and applies defaults. The adapter
// is chosen by the caller (see the factory package) so that config-driven
// format selection stays in one place.
func NewGateway(cfg Config, adapter Adapter) (*Gateway, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, &GatewayError{Reason: "missing endpoint configuration"}
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &GatewayError{Reason: "missing API credential"}
	}
	if adapter == nil {
		return nil, &GatewayError{Reason: "no adapter configured"}
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Gateway{
		cfg:     cfg,
		adapter: adapter,
		client:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (g *Gateway) Query(ctx context.Context, userText, contextText string) (string, error) {
	return g.QueryWithHistory(ctx, userText, contextText, nil)
}

func (g *Gateway) QueryWithHistory(ctx context.Context, userText, contextText string, history []Message) (string, error) {
	messages := g.buildMessages(userText, contextText, history)

	body, err := g.adapter.MarshalRequest(Request{
		Model:       g.cfg.Model,
		Messages:    messages,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return "", &GatewayError{Reason: "marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &GatewayError{Reason: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &GatewayError{Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GatewayError{Reason: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &GatewayError{Reason: "provider returned status " + resp.Status + ": " + truncate(respBody, 512)}
	}

	return g.adapter.ParseResponse(respBody)
}

// buildMessages assembles the turn sequence in the fixed order providers
// expect chronologically: system instruction, optional context, prior turns
// verbatim, then the new user turn last.
func (g *Gateway) buildMessages(userText, contextText string, history []Message) []Message {
	messages := make([]Message, 0, len(history)+3)

	messages = append(messages, Message{Role: "system", Content: systemPrompt})

	if strings.TrimSpace(contextText) != "" {
		messages = append(messages, Message{Role: "system", Content: "Context: " + contextText})
	}

	messages = append(messages, history...)

	messages = append(messages, Message{Role: "user", Content: userText})

	return messages
}

func truncate(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
