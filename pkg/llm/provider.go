package llm

import (
	"context"
)

// Message represents a chat turn in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Request is the provider-agnostic payload handed to an Adapter.
type Request struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// Adapter translates between the gateway's abstract prompt/response model
// and one provider wire format. Adapters are stateless.
type Adapter interface {
	// Name identifies the wire format (for logs and errors)
	Name() string

	// MarshalRequest builds the provider-specific request body
	MarshalRequest(req Request) ([]byte, error)

	// ParseResponse extracts the generated text from the provider's
	// response body. Provider-reported errors and unexpected shapes are
	// returned as *GatewayError.
	ParseResponse(body []byte) (string, error)
}

// Querier is the gateway contract consumed by callers.
type Querier interface {
	// Query sends a single user message (plus optional retrieval context)
	Query(ctx context.Context, userText, contextText string) (string, error)

	// QueryWithHistory additionally replays prior turns, oldest first
	QueryWithHistory(ctx context.Context, userText, contextText string, history []Message) (string, error)
}

// GatewayError is the single failure kind surfaced by the gateway:
// configuration problems, transport failures, provider-reported errors and
// unexpected response shapes all normalize to it.
type GatewayError struct {
	Reason string
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return "llm gateway: " + e.Reason + ": " + e.Err.Error()
	}
	return "llm gateway: " + e.Reason
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
