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

func TestOpenAI_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 1)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "trending down"}},
			},
		})
	}))
	defer srv.Close()

	o := NewOpenAI("sk-test", srv.URL, "")
	out, err := o.Complete(context.Background(), CompletionParams{
		Messages: []Message{{Role: "user", Content: "summarize"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "trending down", out)
}

func TestOpenAI_CompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	o := NewOpenAI("sk-test", srv.URL, "")
	_, err := o.Complete(context.Background(), CompletionParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestOllama_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		assert.Equal(t, "json", req.Format)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]any{"content": `{"trend":"flat"}`},
		})
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "llama3.2")
	out, err := o.Complete(context.Background(), CompletionParams{JSONMode: true})
	require.NoError(t, err)
	assert.Equal(t, `{"trend":"flat"}`, out)
}

func TestOllama_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{{"name": "llama3.2:latest"}},
		})
	}))
	defer srv.Close()

	assert.True(t, NewOllama(srv.URL, "llama3.2").Available(context.Background()))
	assert.False(t, NewOllama(srv.URL, "mistral").Available(context.Background()))
}
