package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"taggen/internal/models"
)

// OllamaProvider calls Ollama's native /api/chat endpoint. Vision input on
// that API is a list of raw base64 strings on the user message, which the
// OpenAI-shaped SDKs cannot express, so the request is built by hand.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

type ollamaMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type ollamaChatRequest struct {
	Model    string                 `json:"model"`
	Messages []ollamaMessage        `json:"messages"`
	Stream   bool                   `json:"stream"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// NewOllamaProvider creates a provider for the Ollama endpoint at baseURL.
// The timeout bounds the whole outbound call.
func NewOllamaProvider(baseURL, model string, timeout time.Duration) *OllamaProvider {
	return &OllamaProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *OllamaProvider) Complete(ctx context.Context, system, user string, images []string) (string, error) {
	request := ollamaChatRequest{
		Model: p.model,
		Messages: []ollamaMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user, Images: images},
		},
		Stream:  false,
		Options: map[string]interface{}{"temperature": samplingTemperature},
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal ollama request: %w", err)
	}

	url := p.baseURL + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debugf("Calling Ollama %s (model %s, %d images)", url, p.model, len(images))

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &models.ModelCallError{Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &models.ModelCallError{Status: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &models.ModelCallError{Status: resp.StatusCode, Body: string(body)}
	}

	var chat ollamaChatResponse
	if err := json.Unmarshal(body, &chat); err != nil || chat.Message.Content == "" {
		// Success status but no reply content where expected.
		return "", &models.ModelCallError{Status: resp.StatusCode, Body: string(body)}
	}
	return chat.Message.Content, nil
}
