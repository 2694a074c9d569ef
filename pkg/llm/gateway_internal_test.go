package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopAdapter struct{}

func (nopAdapter) Name() string                           { return "nop" }
func (nopAdapter) MarshalRequest(Request) ([]byte, error) { return []byte("{}"), nil }
func (nopAdapter) ParseResponse([]byte) (string, error)   { return "", nil }

func TestBuildMessagesOrder(t *testing.T) {
	g, err := NewGateway(Config{
		Endpoint: "https://api.openai.com/v1/chat/completions",
		APIKey:   "test-key",
		Model:    "gpt-3.5-turbo",
	}, nopAdapter{})
	require.NoError(t, err)

	history := []Message{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}

	messages := g.buildMessages("how are you", "some docs", history)

	require.Len(t, messages, 5)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, Message{Role: "system", Content: "Context: some docs"}, messages[1])
	assert.Equal(t, Message{Role: "user", Content: "hi"}, messages[2])
	assert.Equal(t, Message{Role: "assistant", Content: "hello"}, messages[3])
	assert.Equal(t, Message{Role: "user", Content: "how are you"}, messages[4])
}

func TestBuildMessagesSkipsBlankContext(t *testing.T) {
	g, err := NewGateway(Config{Endpoint: "http://localhost", APIKey: "k"}, nopAdapter{})
	require.NoError(t, err)

	messages := g.buildMessages("hello", "   ", nil)

	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, Message{Role: "user", Content: "hello"}, messages[1])
}

func TestNewGatewayValidatesConfig(t *testing.T) {
	_, err := NewGateway(Config{APIKey: "k"}, nopAdapter{})
	assert.ErrorContains(t, err, "missing endpoint")

	_, err = NewGateway(Config{Endpoint: "http://localhost"}, nopAdapter{})
	assert.ErrorContains(t, err, "missing API credential")

	_, err = NewGateway(Config{Endpoint: "http://localhost", APIKey: "k"}, nil)
	assert.ErrorContains(t, err, "no adapter")
}

func TestNewGatewayDefaults(t *testing.T) {
	g, err := NewGateway(Config{Endpoint: "http://localhost", APIKey: "k"}, nopAdapter{})
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxTokens, g.cfg.MaxTokens)
	assert.Equal(t, DefaultTemperature, g.cfg.Temperature)
	assert.Equal(t, DefaultTimeout, g.cfg.Timeout)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		want     Format
	}{
		{
			name:     "openai chat completions",
			endpoint: "https://api.openai.com/v1/chat/completions",
			want:     FormatChat,
		},
		{
			name:     "chat completions path on unknown host",
			endpoint: "https://llm.internal.example/v1/chat/completions",
			want:     FormatChat,
		},
		{
			name:     "openrouter host",
			endpoint: "https://openrouter.ai/api/v1",
			want:     FormatChat,
		},
		{
			name:     "huggingface router",
			endpoint: "https://router.huggingface.co/v1",
			want:     FormatChat,
		},
		{
			name:     "huggingface inference model url",
			endpoint: "https://api-inference.huggingface.co/models/google/flan-t5-xl",
			want:     FormatTextGen,
		},
		{
			name:     "unknown endpoint",
			endpoint: "http://localhost:8080/generate",
			want:     FormatTextGen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.endpoint))
		})
	}
}
