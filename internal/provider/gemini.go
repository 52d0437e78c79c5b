package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var errEmptyReply = errors.New("model returned an empty reply")

// GeminiProvider calls one Gemini model through the Google GenAI SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProviders returns one provider per model id, in order, all
// sharing a single client.
func NewGeminiProviders(ctx context.Context, apiKey string, models []string) ([]*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("at least one Gemini model is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	out := make([]*GeminiProvider, 0, len(models))
	for _, m := range models {
		out = append(out, &GeminiProvider{client: client, model: m})
	}
	return out, nil
}

func (p *GeminiProvider) Name() string  { return "gemini" }
func (p *GeminiProvider) Model() string { return p.model }

func (p *GeminiProvider) Reply(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", p.model, err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini %s: %w", p.model, errEmptyReply)
	}
	return text, nil
}
