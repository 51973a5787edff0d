package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"taggen/internal/models"
)

// GeminiProvider sends vision requests through the Google Gemini API.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiProvider creates the provider. The API key falls back to the
// GEMINI_API_KEY environment variable.
func NewGeminiProvider(apiKey, model string, timeout time.Duration) (*GeminiProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini provider requires an API key")
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	log.Infof("Gemini vision provider initialized with model %s", model)
	return &GeminiProvider{client: client, model: model, timeout: timeout}, nil
}

func (p *GeminiProvider) Complete(ctx context.Context, system, user string, images []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	gm := p.client.GenerativeModel(p.model)
	gm.SetTemperature(samplingTemperature)
	gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	parts := []genai.Part{genai.Text(user)}
	for _, img := range images {
		// Gemini takes raw bytes, so the payload has to decode; payloads that
		// don't are dropped rather than failing the whole request.
		raw, err := base64.StdEncoding.DecodeString(img)
		if err != nil {
			log.Warnf("Dropping preview image that is not valid base64: %v", err)
			continue
		}
		parts = append(parts, genai.ImageData("jpeg", raw))
	}

	resp, err := gm.GenerateContent(ctx, parts...)
	if err != nil {
		return "", &models.ModelCallError{Body: err.Error()}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &models.ModelCallError{Body: "no candidates returned from Gemini"}
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	if out.Len() == 0 {
		return "", &models.ModelCallError{Body: "Gemini candidate contained no text parts"}
	}
	return out.String(), nil
}
