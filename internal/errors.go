package internal

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotConfigured means no model provider credentials are available.
	ErrNotConfigured = errors.New("no model provider configured")
	ErrEmptyMessage  = errors.New("message is empty")
	ErrBusy          = errors.New("a response is already being generated")
	ErrClosed        = errors.New("chat is closed")
)

// ValidationError represents bad, missing or oversized input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConfigurationError represents missing server credentials or settings.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s is not set", e.Setting)
}

// RateLimitError is returned when the provider or the client throttle
// refuses a request. RetryAfter is zero when no cooldown was declared.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rate limit exceeded: %v", e.Err)
	}
	return "rate limit exceeded"
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// ProviderKind classifies failures reported by a model provider.
type ProviderKind int

const (
	ProviderUnknown ProviderKind = iota
	ProviderAuth
	ProviderRateLimit
	ProviderModelUnavailable
)

func (k ProviderKind) String() string {
	switch k {
	case ProviderAuth:
		return "auth"
	case ProviderRateLimit:
		return "rate_limit"
	case ProviderModelUnavailable:
		return "model_unavailable"
	default:
		return "unknown"
	}
}

// ProviderError is returned once every model candidate has failed.
type ProviderError struct {
	Kind     ProviderKind
	Model    string
	Attempts int
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error [%s] after %d attempt(s), last model %s: %v", e.Kind, e.Attempts, e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NetworkError represents a failed round trip from the client.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusError is a non-success HTTP response seen by the client.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}
