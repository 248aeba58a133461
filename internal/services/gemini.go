package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"helpdesk-backend/internal/models"
)

// GeminiAssistant relays conversations to the Gemini API.
type GeminiAssistant struct {
	client    *genai.Client
	model     string
	maxTokens int
}

func NewGeminiAssistant(ctx context.Context, apiKey, model string, maxTokens int) (*GeminiAssistant, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiAssistant{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

func (a *GeminiAssistant) Close() error {
	return a.client.Close()
}

func (a *GeminiAssistant) Chat(ctx context.Context, messages []models.ProviderMessage) (string, error) {
	model := a.newModel()

	// Gemini has no system role in chat history; system turns become the
	// model's system instruction, the rest map to user/model turns.
	var system strings.Builder
	var turns []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case "system":
			if system.Len() > 0 {
				system.WriteString("\n\n")
			}
			system.WriteString(m.Content)
		case "assistant":
			turns = append(turns, &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text(m.Content)},
			})
		default:
			turns = append(turns, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(m.Content)},
			})
		}
	}

	if system.Len() > 0 {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system.String())},
		}
	}

	if len(turns) == 0 {
		return "", fmt.Errorf("conversation contains no user turns")
	}

	last := turns[len(turns)-1]
	session := model.StartChat()
	session.History = turns[:len(turns)-1]

	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return replyOrFallback(extractText(resp)), nil
}

func (a *GeminiAssistant) Describe(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	model := a.newModel()
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(visionSystemPrompt)},
	}

	resp, err := model.GenerateContent(ctx,
		genai.Text(prompt),
		genai.ImageData(imageFormat(mimeType), image),
	)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	return replyOrFallback(extractText(resp)), nil
}

// newModel builds a fresh model handle per call; SystemInstruction differs
// between the chat and vision paths.
func (a *GeminiAssistant) newModel() *genai.GenerativeModel {
	model := a.client.GenerativeModel(a.model)
	model.SetMaxOutputTokens(int32(a.maxTokens))
	return model
}

// imageFormat maps a MIME type like "image/png" to the bare format Gemini
// inline image data expects.
func imageFormat(mimeType string) string {
	if i := strings.IndexByte(mimeType, '/'); i >= 0 {
		return mimeType[i+1:]
	}
	return mimeType
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
