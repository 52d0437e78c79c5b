package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nunajera/portfolio-backend/internal/config"
	"github.com/nunajera/portfolio-backend/internal/logging"
	"github.com/nunajera/portfolio-backend/internal/mail"
	"github.com/nunajera/portfolio-backend/internal/portfolio"
	"github.com/nunajera/portfolio-backend/internal/provider"
	"github.com/nunajera/portfolio-backend/internal/server"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve POST /api/chat and POST /api/contact.

Configuration comes from the environment and an optional .env file:
GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OLLAMA_MODEL select the
chat models (tried in that order), RESEND_API_KEY and CONTACT_TO_EMAIL
enable the contact form, PORTFOLIO_DATA points at a portfolio YAML file
that is reloaded when it changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	cfg := config.LoadServer(envFiles...)
	if servePort != "" {
		cfg.Port = servePort
	}
	if portfolioPath != "" {
		cfg.PortfolioData = portfolioPath
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Development())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := loadPortfolio(cfg.PortfolioData)
	if err != nil {
		return err
	}
	source := portfolio.NewSource(p)

	providers, err := provider.FromConfig(ctx, cfg, logger)
	if err != nil {
		return err
	}
	models := provider.NewFailover(logger, providers...)
	if models.Len() == 0 {
		logger.Warn("no chat provider configured; /api/chat will answer 500")
	} else {
		logger.Info("chat providers ready", zap.Strings("models", models.Models()))
	}

	var mailer mail.Sender
	if cfg.MailConfigured() {
		mailer = mail.NewResendSender(cfg.ResendAPIKey)
	} else {
		logger.Warn("RESEND_API_KEY or CONTACT_TO_EMAIL not set; contact form disabled")
	}

	srv := server.New(cfg, logger, source, models, mailer)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	if cfg.PortfolioData != "" {
		w, err := portfolio.NewWatcher(cfg.PortfolioData, source, logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Run(gctx) })
	}
	return g.Wait()
}
