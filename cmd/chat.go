package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nunajera/portfolio-backend/internal/chatclient"
	"github.com/nunajera/portfolio-backend/internal/config"
	"github.com/nunajera/portfolio-backend/internal/logging"
	"github.com/nunajera/portfolio-backend/internal/store"
	"github.com/nunajera/portfolio-backend/internal/tui"
)

var (
	clientConfigPath string
	serverURL        string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the chat widget in the terminal",
	Long: `Chat with the portfolio assistant from the terminal.

The conversation and theme are kept in chat.db under the data directory
and restored on the next run. Settings are read from
~/.config/portfolio-chat/config.toml and PORTFOLIO_CHAT_* variables.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&clientConfigPath, "config", "", "Client config file (default ~/.config/portfolio-chat/config.toml)")
	chatCmd.Flags().StringVar(&serverURL, "server", "", "Backend base URL (overrides server_url)")
	rootCmd.AddCommand(chatCmd)
}

func loadClientConfig() (config.Client, error) {
	path := clientConfigPath
	if path == "" {
		path = config.ClientConfigPath()
	}
	cfg, err := config.LoadClient(path)
	if err != nil {
		return cfg, err
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	return cfg, nil
}

// openHistory opens the persistent store under dataDir.
func openHistory(dataDir string, logger *zap.Logger) (*store.History, func() error, error) {
	kv, err := store.NewSQLiteStore(dataDir)
	if err != nil {
		return nil, nil, err
	}
	return store.NewHistory(kv, logger), kv.Close, nil
}

func runChat(_ *cobra.Command, _ []string) error {
	cfg, err := loadClientConfig()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// The terminal belongs to the widget, so logs only go to a file.
	logger := zap.NewNop()
	if cfg.Debug() || verbose {
		logger, err = logging.NewFile(filepath.Join(cfg.DataDir, "chat.log"))
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	p, err := loadPortfolio(portfolioPath)
	if err != nil {
		return err
	}

	history, closeStore, err := openHistory(cfg.DataDir, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	nav := tui.NewNavigator(cfg.SiteURL, cfg.DownloadDir, chatclient.SystemClipboard{}, logger)
	ctrl := chatclient.New(
		chatclient.NewHTTPTransport(cfg.ServerURL),
		history,
		chatclient.WithLogger(logger),
		chatclient.WithNavigator(nav),
		chatclient.WithDetector(chatclient.NewDetector(p)),
		chatclient.WithExportDir(cfg.DownloadDir),
	)
	logger.Info("chat widget started", zap.String("server", cfg.ServerURL))
	return tui.Run(ctrl, history, nav, cfg.Theme)
}
