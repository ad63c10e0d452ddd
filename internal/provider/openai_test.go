package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOpenAIHandler validates requests and sends back a canned reply
func mockOpenAIHandler(t *testing.T, validation func(*oaiRequest), reply string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req oaiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if validation != nil {
			validation(&req)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message":       map[string]any{"role": "assistant", "content": reply},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}
}

func TestOpenAI_Complete(t *testing.T) {
	server := httptest.NewServer(mockOpenAIHandler(t, func(req *oaiRequest) {
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		assert.Equal(t, 1000, req.MaxTokens)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
	}, "Day 1: Louvre"))
	defer server.Close()

	p := NewOpenAI("openai", server.URL+"/", "key", "")
	resp, err := p.Complete(context.Background(), Request{
		Messages: []Message{
			{Role: RoleSystem, Content: "be helpful"},
			{Role: RoleUser, Content: "plan Paris"},
		},
		MaxTokens: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Day 1: Louvre", resp.Text)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestOpenAI_EmptyContentMarshaling(t *testing.T) {
	// "content" must be sent even when empty
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		msgs := raw["messages"].([]any)
		_, hasContent := msgs[0].(map[string]any)["content"]
		assert.True(t, hasContent)
		_, hasMax := raw["max_tokens"]
		assert.False(t, hasMax)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	p := NewOpenAI("test", server.URL, "key", "model")
	_, err := p.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser}}})
	require.NoError(t, err)
}

func TestOpenAI_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	p := NewOpenAI("openai", server.URL, "key", "model")
	_, err := p.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 401, se.Code)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
	assert.False(t, se.Retryable())
}

func TestOpenAI_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := NewOpenAI("openai", server.URL, "key", "model").Complete(context.Background(), Request{})
	assert.ErrorContains(t, err, "no choices")
}

func TestOpenAI_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewOpenAI("openai", url, "", "model").Complete(context.Background(), Request{})
	require.Error(t, err)
	assert.True(t, isRetryable(err))
}

func TestOpenAI_Models(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.Write([]byte(`{"data":[{"id":"gpt-4o"},{"id":"gpt-3.5-turbo"}]}`))
	}))
	defer server.Close()

	models, err := NewOpenAI("openai", server.URL, "key", "model").Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o", "gpt-3.5-turbo"}, models)
}
