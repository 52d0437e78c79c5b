package provider

import (
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/nunajera/portfolio-backend/internal"
)

var (
	authMarkers = []string{
		"api key", "api_key", "apikey", "unauthorized", "unauthenticated",
		"permission denied", "permission_denied", "invalid authentication",
	}
	rateMarkers = []string{
		"quota", "rate limit", "rate-limit", "ratelimit", "resource_exhausted",
		"resource exhausted", "too many requests", "status 429", "code 429",
	}
	modelMarkers = []string{
		"not found", "not supported", "not available", "does not exist", "unknown model", "no such model",
	}
)

// Classify maps an SDK error onto the kinds the chat endpoint reports.
// HTTP status wins when the SDK exposes one; otherwise the message text
// is matched.
func Classify(err error) internal.ProviderKind {
	if err == nil {
		return internal.ProviderUnknown
	}
	var pe *internal.ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	var rl *internal.RateLimitError
	if errors.As(err, &rl) {
		return internal.ProviderRateLimit
	}

	switch StatusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return internal.ProviderAuth
	case http.StatusTooManyRequests:
		return internal.ProviderRateLimit
	case http.StatusNotFound:
		return internal.ProviderModelUnavailable
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, authMarkers):
		return internal.ProviderAuth
	case containsAny(msg, rateMarkers):
		return internal.ProviderRateLimit
	case strings.Contains(msg, "model") && containsAny(msg, modelMarkers):
		return internal.ProviderModelUnavailable
	}
	return internal.ProviderUnknown
}

// StatusCode extracts the HTTP status from any of the SDK error types, or 0.
func StatusCode(err error) int {
	var gerr genai.APIError
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	var oerr *openai.Error
	if errors.As(err, &oerr) {
		return oerr.StatusCode
	}
	var aerr *anthropic.Error
	if errors.As(err, &aerr) {
		return aerr.StatusCode
	}
	var serr api.StatusError
	if errors.As(err, &serr) {
		return serr.StatusCode
	}
	return 0
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
