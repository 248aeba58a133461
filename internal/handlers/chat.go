package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"helpdesk-backend/internal/models"
)

// assistant is the subset of the provider service the relays need; it keeps
// the handlers testable without a live provider.
type assistant interface {
	Chat(ctx context.Context, messages []models.ProviderMessage) (string, error)
	Describe(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

type ChatHandler struct {
	assistant assistant
	timeout   time.Duration
}

func NewChatHandler(assistant assistant, timeout time.Duration) *ChatHandler {
	return &ChatHandler{assistant: assistant, timeout: timeout}
}

// Relay validates the conversation history and forwards it verbatim to the
// provider. One provider call per invocation, no retry, no streaming.
func (h *ChatHandler) Relay(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body."})
		return
	}

	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "No messages provided."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.assistant.Chat(ctx, req.Messages)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: errMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Result: result})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "The assistant is unavailable right now."
	}
	return err.Error()
}
