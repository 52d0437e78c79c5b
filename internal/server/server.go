// Package server exposes the chat and contact endpoints over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nunajera/portfolio-backend/internal"
	"github.com/nunajera/portfolio-backend/internal/config"
	"github.com/nunajera/portfolio-backend/internal/logging"
	"github.com/nunajera/portfolio-backend/internal/mail"
	"github.com/nunajera/portfolio-backend/internal/portfolio"
	"github.com/nunajera/portfolio-backend/internal/provider"
)

// Replier produces a model reply for an assembled prompt.
// *provider.Failover is the production implementation.
type Replier interface {
	Reply(ctx context.Context, prompt string) (provider.Result, error)
	Models() []string
}

type Server struct {
	cfg      config.Server
	logger   *zap.Logger
	source   *portfolio.Source
	models   Replier
	mailer   mail.Sender
	validate *validator.Validate
	started  time.Time
	engine   *gin.Engine
}

// New wires the routes. mailer may be nil, in which case the contact
// endpoint answers 500.
func New(cfg config.Server, logger *zap.Logger, source *portfolio.Source, models Replier, mailer mail.Sender) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		source:   source,
		models:   models,
		mailer:   mailer,
		validate: newValidator(),
		started:  time.Now(),
	}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(logging.Gin(s.logger), gin.Recovery(), s.cors())

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, internal.ErrorResponse{Error: "Method not allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, internal.ErrorResponse{Error: "Not found"})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "uptime": time.Since(s.started).Round(time.Second).String()})
	})
	r.GET("/api/model", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"models": s.models.Models()})
	})
	r.POST("/api/chat", s.handleChat)
	r.POST("/api/contact", s.handleContact)
	return r
}

// cors allows the configured origins with credentials. "*" allows any.
func (s *Server) cors() gin.HandlerFunc {
	allowed := make(map[string]bool, len(s.cfg.AllowedOrigins))
	for _, o := range s.cfg.AllowedOrigins {
		allowed[o] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowed[origin] || allowed["*"]) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Run serves on cfg.Port until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	return nil
}
