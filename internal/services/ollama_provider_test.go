package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taggen/internal/models"
)

func TestOllamaProvider_Complete(t *testing.T) {
	var got ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"role": "assistant", "content": `{"tags":["photo"]}`},
			"done":    true,
		})
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "llava:13b", 5*time.Second)

	reply, err := provider.Complete(context.Background(), "system text", "context text", []string{"aaa", "bbb"})
	require.NoError(t, err)
	assert.Equal(t, `{"tags":["photo"]}`, reply)

	// Outbound contract: two messages, non-streaming, low temperature, images
	// carried on the user message only.
	assert.Equal(t, "llava:13b", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, 0.2, got.Options["temperature"])
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "system text", got.Messages[0].Content)
	assert.Empty(t, got.Messages[0].Images)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "context text", got.Messages[1].Content)
	assert.Equal(t, []string{"aaa", "bbb"}, got.Messages[1].Images)
}

func TestOllamaProvider_Complete_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "llava:13b", 5*time.Second)

	_, err := provider.Complete(context.Background(), "s", "u", nil)
	require.Error(t, err)

	var callErr *models.ModelCallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, http.StatusNotFound, callErr.Status)
	assert.Contains(t, callErr.Body, "model not found")
}

func TestOllamaProvider_Complete_UnexpectedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "llava:13b", 5*time.Second)

	_, err := provider.Complete(context.Background(), "s", "u", nil)
	require.Error(t, err)

	var callErr *models.ModelCallError
	require.True(t, errors.As(err, &callErr))
	assert.Contains(t, callErr.Body, "unexpected")
}

func TestOllamaProvider_Complete_Unreachable(t *testing.T) {
	// Closed server: the transport error must surface as a ModelCallError.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	provider := NewOllamaProvider(server.URL, "llava:13b", time.Second)

	_, err := provider.Complete(context.Background(), "s", "u", nil)
	require.Error(t, err)

	var callErr *models.ModelCallError
	assert.True(t, errors.As(err, &callErr))
}

func TestNewOllamaProvider_TrimsTrailingSlash(t *testing.T) {
	provider := NewOllamaProvider("http://localhost:11434/", "llava:13b", time.Second)
	assert.Equal(t, "http://localhost:11434", provider.baseURL)
}
