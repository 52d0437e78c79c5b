package provider

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nunajera/portfolio-backend/internal/config"
)

// FromConfig builds the failover list: every configured Gemini model
// first, then OpenAI, Anthropic and Ollama when configured. An empty list
// is not an error here; the chat endpoint reports it per request.
func FromConfig(ctx context.Context, cfg config.Server, logger *zap.Logger) ([]ChatProvider, error) {
	if cfg.Provider == "mock" {
		logger.Warn("using mock chat provider")
		return []ChatProvider{MockProvider{}}, nil
	}

	var out []ChatProvider
	if cfg.GeminiAPIKey != "" {
		gs, err := NewGeminiProviders(ctx, cfg.GeminiAPIKey, cfg.GeminiModels)
		if err != nil {
			return nil, err
		}
		for _, g := range gs {
			out = append(out, g)
		}
	}
	if cfg.OpenAIAPIKey != "" {
		p, err := NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if cfg.AnthropicAPIKey != "" {
		p, err := NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if cfg.OllamaModel != "" {
		p, err := NewOllamaProvider(cfg.OllamaHost, cfg.OllamaModel)
		if err != nil {
			return nil, fmt.Errorf("ollama: %w", err)
		}
		out = append(out, p)
	}

	if len(out) == 0 {
		logger.Warn("no model provider configured; /api/chat will return 500")
	}
	for i, p := range out {
		logger.Info("model candidate", zap.Int("order", i+1), zap.String("provider", p.Name()), zap.String("model", p.Model()))
	}
	return out, nil
}
