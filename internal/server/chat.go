package server

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nunajera/portfolio-backend/internal"
	"github.com/nunajera/portfolio-backend/internal/prompt"
	"github.com/nunajera/portfolio-backend/internal/provider"
	"github.com/nunajera/portfolio-backend/internal/textclean"
)

const (
	// MaxMessageLength is counted in characters, not bytes.
	MaxMessageLength = 500
	// MaxHistoryEntries caps what is read from a request; the prompt uses
	// fewer.
	MaxHistoryEntries = 10
	// RetryAfterSeconds is advertised on every 429.
	RetryAfterSeconds = "30"
)

const (
	msgInvalidMessage = "Message is required and must be a string"
	msgTooLong        = "Message is too long. Please keep it under 500 characters."
	msgNotConfigured  = "Server configuration error: API key not configured"
	msgAuth           = "Invalid or missing API key. Please check the server configuration."
	msgRateLimit      = "Rate limit exceeded. Please try again in a moment."
	msgModel          = "AI model not available. Please try again later."
	msgGeneric        = "Something went wrong while generating a response. Please try again later."
)

func (s *Server) handleChat(c *gin.Context) {
	var req internal.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, internal.ErrorResponse{Error: msgInvalidMessage})
		return
	}
	if utf8.RuneCountInString(req.Message) > MaxMessageLength {
		c.JSON(http.StatusBadRequest, internal.ErrorResponse{Error: msgTooLong})
		return
	}

	history := req.ConversationHistory
	if len(history) > MaxHistoryEntries {
		history = history[len(history)-MaxHistoryEntries:]
	}

	p := prompt.Build(s.source.Context(), history, req.Message)
	res, err := s.models.Reply(c.Request.Context(), p)
	if err != nil {
		s.writeChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, internal.ChatResponse{
		Success: true,
		Message: textclean.StripMarkdown(res.Text),
		Model:   res.Model,
	})
}

func (s *Server) writeChatError(c *gin.Context, err error) {
	_ = c.Error(err)

	var cfgErr *internal.ConfigurationError
	if errors.Is(err, internal.ErrNotConfigured) || errors.As(err, &cfgErr) {
		s.logger.Error("chat provider not configured", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internal.ErrorResponse{Error: msgNotConfigured})
		return
	}

	kind := provider.Classify(err)
	s.logger.Error("chat reply failed", zap.String("kind", kind.String()), zap.Error(err))

	switch kind {
	case internal.ProviderAuth:
		c.JSON(http.StatusInternalServerError, internal.ErrorResponse{Error: msgAuth})
	case internal.ProviderRateLimit:
		c.Header("Retry-After", RetryAfterSeconds)
		c.JSON(http.StatusTooManyRequests, internal.ErrorResponse{Error: msgRateLimit})
	case internal.ProviderModelUnavailable:
		c.JSON(http.StatusInternalServerError, internal.ErrorResponse{Error: msgModel})
	default:
		if s.cfg.Development() {
			c.JSON(http.StatusInternalServerError, internal.ErrorResponse{
				Error:   "Failed to generate response: " + err.Error(),
				Details: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, internal.ErrorResponse{Error: msgGeneric})
	}
}
