package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"helpdesk-backend/internal/models"
)

// OpenAIAssistant relays conversations to an OpenAI-compatible
// chat-completion endpoint.
type OpenAIAssistant struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIAssistant creates a client for the given credential. baseURL is
// optional and overrides the default endpoint, so any OpenAI-compatible
// provider can stand in.
func NewOpenAIAssistant(apiKey, baseURL, model string, maxTokens int) *OpenAIAssistant {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIAssistant{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (a *OpenAIAssistant) Chat(ctx context.Context, messages []models.ProviderMessage) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages:  make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	return firstChoiceOrFallback(resp), nil
}

func (a *OpenAIAssistant) Describe(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	req := openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: visionSystemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision completion failed: %w", err)
	}

	return firstChoiceOrFallback(resp), nil
}

func firstChoiceOrFallback(resp openai.ChatCompletionResponse) string {
	if len(resp.Choices) == 0 {
		return fallbackReply
	}
	return replyOrFallback(resp.Choices[0].Message.Content)
}
