package portfolio

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reloads a portfolio file into a Source whenever it changes.
// The parent directory is watched so editors that replace the file on save
// are picked up. A file that fails to parse leaves the previous data live.
type Watcher struct {
	path     string
	source   *Source
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	running bool
	doneCh  chan struct{}

	// OnReload, when set, is called after every successful reload.
	OnReload func(*Portfolio)
}

func NewWatcher(path string, source *Source, logger *zap.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	return &Watcher{
		path:     abs,
		source:   source,
		logger:   logger,
		watcher:  w,
		debounce: defaultDebounce,
		doneCh:   make(chan struct{}),
	}, nil
}

// Run watches until ctx is cancelled. It blocks.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()
	defer close(w.doneCh)
	defer w.watcher.Close()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info("watching portfolio data", zap.String("path", w.path))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				pending = time.After(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("portfolio watcher error", zap.Error(err))
		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

// Done is closed when Run returns.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

func (w *Watcher) reload() {
	p, err := Load(w.path)
	if err != nil {
		w.logger.Warn("portfolio reload failed, keeping previous data", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.source.Set(p)
	w.logger.Info("portfolio data reloaded",
		zap.Int("projects", len(p.Projects)),
		zap.Int("papers", len(p.Papers)))
	if w.OnReload != nil {
		w.OnReload(p)
	}
}
