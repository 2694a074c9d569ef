package textgen

import (
	"encoding/json"
	"strings"

	"rag-chat-be/pkg/llm"
)

// Adapter speaks the HuggingFace-style text-generation wire format: one
// flattened prompt string in, a list of generated_text results out.
type Adapter struct{}

var _ llm.Adapter = Adapter{}

// --- Request/Response structs (internal to this package) ---

type generateRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters *generateParameters `json:"parameters,omitempty"`
}

type generateParameters struct {
	MaxNewTokens int     `json:"max_new_tokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
}

type generateResult struct {
	GeneratedText string `json:"generated_text"`
}

type generateError struct {
	Error string `json:"error"`
}

func New() Adapter {
	return Adapter{}
}

func (Adapter) Name() string {
	return "text-generation"
}

// MarshalRequest flattens the turn sequence into a single prompt. System
// turns ("Context: ..." and the instruction) go in as bare lines, every
// other turn as a "role: content" line, with a trailing "assistant:" cue so
// the model completes the next turn.
func (Adapter) MarshalRequest(req llm.Request) ([]byte, error) {
	var prompt strings.Builder
	for _, msg := range req.Messages {
		if msg.Role == "system" {
			prompt.WriteString(msg.Content)
		} else {
			prompt.WriteString(msg.Role + ": " + msg.Content)
		}
		prompt.WriteString("\n")
	}
	prompt.WriteString("assistant:")

	return json.Marshal(generateRequest{
		Inputs: prompt.String(),
		Parameters: &generateParameters{
			MaxNewTokens: req.MaxTokens,
			Temperature:  req.Temperature,
		},
	})
}

func (Adapter) ParseResponse(body []byte) (string, error) {
	var results []generateResult
	if err := json.Unmarshal(body, &results); err == nil {
		if len(results) == 0 {
			return "", &llm.GatewayError{Reason: "empty results in response"}
		}
		return strings.TrimSpace(results[0].GeneratedText), nil
	}

	var provErr generateError
	if err := json.Unmarshal(body, &provErr); err == nil && provErr.Error != "" {
		return "", &llm.GatewayError{Reason: "provider error: " + provErr.Error}
	}

	return "", &llm.GatewayError{Reason: "unexpected response format"}
}
