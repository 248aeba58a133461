package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk-backend/internal/models"
)

// fakeProvider stands in for an OpenAI-compatible endpoint via the BaseURL
// override and records the last request body.
func fakeProvider(t *testing.T, response string, status int) (*httptest.Server, *[]byte) {
	t.Helper()

	var lastBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		lastBody = body

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	return srv, &lastBody
}

const successResponse = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"choices": [
		{"index": 0, "message": {"role": "assistant", "content": "Restart the print spooler service."}, "finish_reason": "stop"}
	]
}`

func TestOpenAIChat_ForwardsHistoryVerbatim(t *testing.T) {
	srv, lastBody := fakeProvider(t, successResponse, http.StatusOK)
	a := NewOpenAIAssistant("test-key", srv.URL+"/v1", "gpt-4o", 1000)

	messages := []models.ProviderMessage{
		{Role: "system", Content: "You are an IT helpdesk assistant."},
		{Role: "user", Content: "printer not working"},
		{Role: "assistant", Content: "Is it connected?"},
		{Role: "user", Content: "yes, via USB"},
	}

	reply, err := a.Chat(context.Background(), messages)
	require.NoError(t, err)
	assert.Equal(t, "Restart the print spooler service.", reply)

	var sent struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(*lastBody, &sent))

	assert.Equal(t, "gpt-4o", sent.Model)
	assert.Equal(t, 1000, sent.MaxTokens)
	require.Len(t, sent.Messages, len(messages))
	for i, m := range messages {
		assert.Equal(t, m.Role, sent.Messages[i].Role)
		assert.Equal(t, m.Content, sent.Messages[i].Content)
	}
}

func TestOpenAIChat_EmptyChoicesFallsBack(t *testing.T) {
	srv, _ := fakeProvider(t, `{"id":"chatcmpl-2","object":"chat.completion","choices":[]}`, http.StatusOK)
	a := NewOpenAIAssistant("test-key", srv.URL+"/v1", "gpt-4o", 1000)

	reply, err := a.Chat(context.Background(), []models.ProviderMessage{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, fallbackReply, reply)
}

func TestOpenAIChat_BlankContentFallsBack(t *testing.T) {
	blank := `{"id":"chatcmpl-3","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  "},"finish_reason":"stop"}]}`
	srv, _ := fakeProvider(t, blank, http.StatusOK)
	a := NewOpenAIAssistant("test-key", srv.URL+"/v1", "gpt-4o", 1000)

	reply, err := a.Chat(context.Background(), []models.ProviderMessage{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, fallbackReply, reply)
}

func TestOpenAIChat_ProviderError(t *testing.T) {
	srv, _ := fakeProvider(t, `{"error":{"message":"model overloaded","type":"server_error"}}`, http.StatusInternalServerError)
	a := NewOpenAIAssistant("test-key", srv.URL+"/v1", "gpt-4o", 1000)

	_, err := a.Chat(context.Background(), []models.ProviderMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion failed")
}

func TestOpenAIDescribe_BuildsDataURLRequest(t *testing.T) {
	srv, lastBody := fakeProvider(t, successResponse, http.StatusOK)
	a := NewOpenAIAssistant("test-key", srv.URL+"/v1", "gpt-4o", 1000)

	image := []byte{0x89, 'P', 'N', 'G'}
	reply, err := a.Describe(context.Background(), "what does this error mean?", image, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "Restart the print spooler service.", reply)

	body := string(*lastBody)
	// System prompt, the user text part, and an inline base64 data URL.
	assert.Contains(t, body, `"role":"system"`)
	assert.Contains(t, body, "what does this error mean?")
	assert.Contains(t, body, `"type":"image_url"`)
	assert.Contains(t, body, "data:image/png;base64,iVBORw==")

	var sent struct {
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(*lastBody, &sent))
	require.Len(t, sent.Messages, 2)
	assert.Equal(t, "system", sent.Messages[0].Role)
	assert.Equal(t, "user", sent.Messages[1].Role)
}

func TestOpenAIDescribe_MimeTypeInDataURL(t *testing.T) {
	srv, lastBody := fakeProvider(t, successResponse, http.StatusOK)
	a := NewOpenAIAssistant("test-key", srv.URL+"/v1", "gpt-4o", 1000)

	_, err := a.Describe(context.Background(), "see this", []byte("x"), "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(*lastBody), "data:image/jpeg;base64,"))
}
