package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaClient_Generate(t *testing.T) {
	var gotReq ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(ollamaResponse{Response: "# Jane Doe\nGenerated resume"})
	}))
	defer server.Close()

	c := NewOllamaClient(server.URL, "llama3")
	out, err := c.Generate(context.Background(), "user prompt", "system prompt")
	require.NoError(t, err)

	assert.Equal(t, "# Jane Doe\nGenerated resume", out)
	assert.Equal(t, "llama3", gotReq.Model)
	assert.False(t, gotReq.Stream)
	// System prompt is prepended, not dropped.
	assert.Contains(t, gotReq.Prompt, "system prompt")
	assert.Contains(t, gotReq.Prompt, "user prompt")
}

func TestOllamaClient_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	c := NewOllamaClient(server.URL, "missing")
	_, err := c.Generate(context.Background(), "p", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestOllamaClient_Unreachable(t *testing.T) {
	c := NewOllamaClient("http://127.0.0.1:1", "llama3")
	_, err := c.Generate(context.Background(), "p", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}

func TestOllamaClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewOllamaClient(server.URL, "llama3")
	assert.NoError(t, c.Ping(context.Background()))
}
