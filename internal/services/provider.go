package services

import (
	"context"
	"fmt"
	"strings"

	"taggen/internal/config"
)

// samplingTemperature is fixed low so tag output stays stable across calls.
const samplingTemperature = 0.2

// VisionCompleter sends a fixed system instruction plus one user turn
// (context text and base64 images) to a vision-capable chat model and returns
// the raw reply text. Failures surface as *models.ModelCallError.
type VisionCompleter interface {
	Complete(ctx context.Context, system, user string, images []string) (string, error)
}

// NewVisionCompleter builds the provider selected by cfg.Model.Provider.
func NewVisionCompleter(cfg *config.Config) (VisionCompleter, error) {
	switch strings.ToLower(cfg.Model.Provider) {
	case "", "ollama":
		return NewOllamaProvider(cfg.Model.OllamaURL, cfg.Model.Name, cfg.Timeout()), nil
	case "openai":
		return NewOpenAIProvider(cfg.Model.OpenaiApiKey, cfg.Model.OpenaiBaseURL, cfg.Model.Name, cfg.Timeout())
	case "gemini":
		return NewGeminiProvider(cfg.Model.GeminiApiKey, cfg.Model.Name, cfg.Timeout())
	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.Model.Provider)
	}
}
