package openaicompat

import (
	"encoding/json"
	"strings"

	"rag-chat-be/pkg/llm"
)

// Adapter speaks the OpenAI-compatible chat-completions wire format: a
// structured list of role/content turns in, a "choices" list out.
type Adapter struct{}

var _ llm.Adapter = Adapter{}

// --- Request/Response structs (internal to this package) ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	// Providers report errors either as {"message": "..."} objects or as a
	// bare string; keep the raw bytes and decode both shapes.
	Error json.RawMessage `json:"error,omitempty"`
}

func New() Adapter {
	return Adapter{}
}

func (Adapter) Name() string {
	return "chat-completions"
}

func (Adapter) MarshalRequest(req llm.Request) ([]byte, error) {
	return json.Marshal(chatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
}

func (Adapter) ParseResponse(body []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &llm.GatewayError{Reason: "unexpected response format", Err: err}
	}

	if len(resp.Error) > 0 && string(resp.Error) != "null" {
		return "", &llm.GatewayError{Reason: "provider error: " + decodeProviderError(resp.Error)}
	}

	if len(resp.Choices) == 0 {
		return "", &llm.GatewayError{Reason: "empty choices in response"}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func decodeProviderError(raw json.RawMessage) string {
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
