package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"taggen/internal/models"
)

// chatCompleter is the minimal go-openai surface used here, so tests can
// substitute a mock client.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider talks to OpenAI or any OpenAI-compatible vision endpoint.
// Images are re-wrapped as data URLs, which is how the chat completions API
// accepts inline payloads.
type OpenAIProvider struct {
	client chatCompleter
	model  string
}

// NewOpenAIProvider creates the provider. The API key falls back to the
// OPENAI_API_KEY environment variable; baseURL may point at any
// OpenAI-compatible server.
func NewOpenAIProvider(apiKey, baseURL, model string, timeout time.Duration) (*OpenAIProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("openai provider requires an API key")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	log.Infof("OpenAI vision provider initialized with model %s", model)
	return &OpenAIProvider{client: openai.NewClientWithConfig(clientConfig), model: model}, nil
}

func (p *OpenAIProvider) Complete(ctx context.Context, system, user string, images []string) (string, error) {
	parts := make([]openai.ChatMessagePart, 0, len(images)+1)
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: user,
	})
	for _, img := range images {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: "data:image/jpeg;base64," + img,
			},
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
		Temperature: samplingTemperature,
	})
	if err != nil {
		return "", &models.ModelCallError{Body: err.Error()}
	}
	if len(resp.Choices) == 0 {
		return "", &models.ModelCallError{Body: "no choices returned from completion"}
	}
	return resp.Choices[0].Message.Content, nil
}
