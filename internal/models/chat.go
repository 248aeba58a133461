package models

// ProviderMessage is a single turn in the provider-format conversation
// history the client replays to the model on every chat request.
type ProviderMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat relay endpoint.
type ChatRequest struct {
	Messages []ProviderMessage `json:"messages"`
}

// ChatResponse carries the model's reply for both relay endpoints.
type ChatResponse struct {
	Result string `json:"result"`
}

// ErrorResponse is the wire shape for every 4xx/5xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
