package factory

import (
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/llm/openaicompat"
	"rag-chat-be/pkg/llm/textgen"
)

// NewGateway resolves the wire format and builds the gateway with the
// matching adapter. An explicit format in the config wins; FormatAuto falls
// back to sniffing the endpoint URL.
func NewGateway(cfg llm.Config) (*llm.Gateway, error) {
	format := cfg.Format
	if format == "" || format == llm.FormatAuto {
		format = llm.DetectFormat(cfg.Endpoint)
	}

	var adapter llm.Adapter
	switch format {
	case llm.FormatChat:
		adapter = openaicompat.New()
	case llm.FormatTextGen:
		adapter = textgen.New()
	default:
		return nil, &llm.GatewayError{Reason: "unsupported API format: " + string(format)}
	}

	return llm.NewGateway(cfg, adapter)
}
