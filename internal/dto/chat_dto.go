package dto

type ChatRequest struct {
	Query          string `json:"query" validate:"required"`
	Context        string `json:"context,omitempty"`
	IncludeHistory bool   `json:"include_history"`
}

type ChatResponse struct {
	UserMessage      *MessageResponse `json:"user_message"`
	AssistantMessage *MessageResponse `json:"assistant_message"`
	Response         string           `json:"response"`
}

type QueryRequest struct {
	Query   string `json:"query" validate:"required"`
	Context string `json:"context,omitempty"`
}

type QueryResponse struct {
	Response string `json:"response"`
}
