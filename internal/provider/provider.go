// Package provider wraps the generative model APIs behind one interface
// and tries them in order until one answers.
package provider

import (
	"context"
	"strings"
)

// ChatProvider turns a fully assembled prompt into a reply. Each value is
// bound to exactly one model, so a failover list is a list of providers.
type ChatProvider interface {
	Name() string
	Model() string
	Reply(ctx context.Context, prompt string) (string, error)
}

// MockProvider answers without any external API, for offline development.
type MockProvider struct{}

func (m MockProvider) Name() string  { return "mock" }
func (m MockProvider) Model() string { return "mock-portfolio" }

func (m MockProvider) Reply(ctx context.Context, prompt string) (string, error) {
	question := prompt
	if i := strings.LastIndex(prompt, "Current question: "); i >= 0 {
		question = prompt[i+len("Current question: "):]
		if j := strings.Index(question, "\n"); j >= 0 {
			question = question[:j]
		}
	}
	return "Understood. (mock) You asked: \"" + question + "\"", nil
}
