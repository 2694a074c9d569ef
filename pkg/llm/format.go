package llm

import "strings"

// Format tags the wire format an endpoint speaks.
type Format string

const (
	// FormatAuto defers to URL sniffing (DetectFormat)
	FormatAuto Format = "auto"
	// FormatChat is the OpenAI-compatible chat-completions format
	FormatChat Format = "chat"
	// FormatTextGen is the HuggingFace-style text-generation format
	FormatTextGen Format = "textgen"
)

// openAICompatibleHosts are host substrings known to speak the
// chat-completions format even without the canonical path.
var openAICompatibleHosts = []string{
	"api.openai.com",
	"openrouter.ai",
	"router.huggingface.co",
	"api.groq.com",
	"api.together.xyz",
}

// DetectFormat guesses the wire format from the endpoint URL. Explicit
// configuration should be preferred; this is the convenience fallback for
// FormatAuto. Unrecognized endpoints default to the text-generation format,
// matching the HuggingFace inference URLs that carry no distinctive path.
func DetectFormat(endpoint string) Format {
	lower := strings.ToLower(endpoint)

	if strings.Contains(lower, "/chat/completions") || strings.Contains(lower, "/v1/chat") {
		return FormatChat
	}
	for _, host := range openAICompatibleHosts {
		if strings.Contains(lower, host) {
			return FormatChat
		}
	}
	return FormatTextGen
}
