package tui

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nunajera/portfolio-backend/internal/chatclient"
)

const downloadTimeout = 30 * time.Second

// Navigator carries out quick actions from a terminal. Downloads are
// fetched from the site into DownloadDir. Sections and links cannot be
// opened here, so their URLs go to the clipboard.
type Navigator struct {
	SiteURL     string
	DownloadDir string
	Clipboard   chatclient.Clipboard
	Logger      *zap.Logger
	// Notify receives a one-line description of what happened.
	Notify func(string)

	client *http.Client
}

func NewNavigator(siteURL, downloadDir string, cb chatclient.Clipboard, logger *zap.Logger) *Navigator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Navigator{
		SiteURL:     strings.TrimRight(siteURL, "/"),
		DownloadDir: downloadDir,
		Clipboard:   cb,
		Logger:      logger,
		client:      &http.Client{Timeout: downloadTimeout},
	}
}

func (n *Navigator) notify(msg string) {
	if n.Notify != nil {
		n.Notify(msg)
	}
}

func (n *Navigator) Download(path string) error {
	url := n.SiteURL + "/" + strings.TrimLeft(path, "/")
	ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: status %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(n.DownloadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}
	dest := filepath.Join(n.DownloadDir, filepath.Base(path))
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	n.Logger.Info("file downloaded", zap.String("url", url), zap.String("path", dest))
	n.notify("Saved " + dest)
	return nil
}

func (n *Navigator) ScrollTo(section string) error {
	return n.copyURL(n.SiteURL + "/#" + section)
}

func (n *Navigator) OpenURL(url string) error {
	return n.copyURL(url)
}

func (n *Navigator) copyURL(url string) error {
	if n.Clipboard == nil {
		n.notify(url)
		return nil
	}
	if err := n.Clipboard.WriteAll(url); err != nil {
		return fmt.Errorf("failed to copy %s: %w", url, err)
	}
	n.notify("Copied " + url)
	return nil
}
