package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Client is the terminal widget configuration.
type Client struct {
	ServerURL   string `toml:"server_url"`
	SiteURL     string `toml:"site_url"`
	DataDir     string `toml:"data_dir"`
	DownloadDir string `toml:"download_dir"`
	Theme       string `toml:"theme"`
}

func defaultClient() Client {
	home, _ := os.UserHomeDir()
	return Client{
		ServerURL:   "http://localhost:8080",
		SiteURL:     "http://localhost:5173",
		DataDir:     filepath.Join(home, ".local", "share", "portfolio-chat"),
		DownloadDir: filepath.Join(home, "Downloads"),
		Theme:       "dark",
	}
}

// ClientConfigPath returns ~/.config/portfolio-chat/config.toml.
func ClientConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "portfolio-chat", "config.toml")
}

// LoadClient reads the TOML file at path, if any, then applies environment
// overrides. A missing file is not an error.
func LoadClient(path string) (Client, error) {
	cfg := defaultClient()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	cfg.DataDir = ExpandPath(cfg.DataDir)
	cfg.DownloadDir = ExpandPath(cfg.DownloadDir)
	return cfg, nil
}

func (c *Client) applyEnvOverrides() {
	if v := os.Getenv("PORTFOLIO_CHAT_SERVER"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("PORTFOLIO_CHAT_SITE"); v != "" {
		c.SiteURL = v
	}
	if v := os.Getenv("PORTFOLIO_CHAT_DATA_DIR"); v != "" {
		c.DataDir = v
	}
}

// Debug reports whether the widget should write a log file.
func (c Client) Debug() bool {
	v := os.Getenv("PORTFOLIO_CHAT_DEBUG")
	return v == "1" || v == "true"
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(p string) string {
	if len(p) > 0 && p[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
