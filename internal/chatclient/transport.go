package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nunajera/portfolio-backend/internal"
)

// Transport sends one chat turn to the backend.
type Transport interface {
	Chat(ctx context.Context, message string, history []internal.HistoryEntry) (string, error)
}

// HTTPTransport talks to the /api/chat endpoint.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

func NewHTTPTransport(baseURL string) *HTTPTransport {
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (t *HTTPTransport) Chat(ctx context.Context, message string, history []internal.HistoryEntry) (string, error) {
	if history == nil {
		history = []internal.HistoryEntry{}
	}
	body, err := json.Marshal(internal.ChatRequest{Message: message, ConversationHistory: history})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &internal.NetworkError{Op: "POST /api/chat", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &internal.NetworkError{Op: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var er internal.ErrorResponse
		_ = json.Unmarshal(raw, &er)
		if er.Error == "" {
			er.Error = http.StatusText(resp.StatusCode)
		}
		statusErr := &internal.StatusError{Code: resp.StatusCode, Message: er.Error}
		if resp.StatusCode == http.StatusTooManyRequests || strings.Contains(strings.ToLower(er.Error), "rate limit") {
			return "", &internal.RateLimitError{RetryAfter: retryAfter(resp.Header.Get("Retry-After")), Err: statusErr}
		}
		return "", statusErr
	}

	var out internal.ChatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("invalid chat response: %w", err)
	}
	if !out.Success {
		return "", errors.New("chat response reported failure")
	}
	return out.Message, nil
}

// retryAfter parses a delay-seconds Retry-After value; anything else is 0.
func retryAfter(v string) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
