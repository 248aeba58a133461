package services

import (
	"context"
	"strings"

	"helpdesk-backend/internal/models"
)

// Assistant is the model-provider boundary shared by both relay endpoints.
type Assistant interface {
	// Chat forwards the full conversation history verbatim and returns the
	// model's single textual reply.
	Chat(ctx context.Context, messages []models.ProviderMessage) (string, error)

	// Describe sends a single-turn multimodal request (text prompt plus one
	// inline image) and returns the model's textual reply. Image context is
	// not retained for future turns.
	Describe(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// fallbackReply substitutes for an empty or missing model reply.
const fallbackReply = "Sorry, I couldn't come up with a response. Please try again."

// visionSystemPrompt frames every vision request.
const visionSystemPrompt = "You are a friendly IT helpdesk assistant. The user has shared a screenshot of a problem on their computer. " +
	"Identify what is going wrong and explain how to fix it in clear, step-by-step, non-technical language."

func replyOrFallback(text string) string {
	if strings.TrimSpace(text) == "" {
		return fallbackReply
	}
	return text
}
