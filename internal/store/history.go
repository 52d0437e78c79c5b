package store

import (
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/nunajera/portfolio-backend/internal"
)

const (
	HistoryKey = "portfolio-chat-history"
	ThemeKey   = "portfolio-theme"
)

// History persists the conversation under HistoryKey. Every method is
// total: storage and encoding failures are logged and never returned.
type History struct {
	kv     KV
	logger *zap.Logger
	now    func() time.Time
}

func NewHistory(kv KV, logger *zap.Logger) *History {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &History{kv: kv, logger: logger, now: time.Now}
}

// Load returns the saved conversation, or a lone welcome message when
// nothing usable is stored.
func (h *History) Load() []internal.Message {
	raw, err := h.kv.Get(HistoryKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			h.logger.Warn("failed to read chat history", zap.Error(err))
		}
		return h.fresh()
	}

	var msgs []internal.Message
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		h.logger.Warn("discarding corrupt chat history", zap.Error(err))
		return h.fresh()
	}

	out := msgs[:0]
	for _, m := range msgs {
		if m.Role != internal.RoleUser && m.Role != internal.RoleAssistant {
			continue
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return h.fresh()
	}
	return out
}

// Save writes msgs with render-only state removed.
func (h *History) Save(msgs []internal.Message) {
	clean := make([]internal.Message, len(msgs))
	for i, m := range msgs {
		clean[i] = m.Clean()
	}
	b, err := json.Marshal(clean)
	if err != nil {
		h.logger.Error("failed to encode chat history", zap.Error(err))
		return
	}
	if err := h.kv.Set(HistoryKey, string(b)); err != nil {
		h.logger.Error("failed to save chat history", zap.Error(err))
	}
}

// Clear replaces the stored conversation with the welcome message and
// returns it.
func (h *History) Clear() []internal.Message {
	msgs := h.fresh()
	h.Save(msgs)
	return msgs
}

func (h *History) fresh() []internal.Message {
	return []internal.Message{internal.WelcomeMessage(h.now())}
}

// Theme returns the stored theme preference, or "" when unset.
func (h *History) Theme() string {
	v, err := h.kv.Get(ThemeKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			h.logger.Warn("failed to read theme", zap.Error(err))
		}
		return ""
	}
	return v
}

func (h *History) SetTheme(theme string) {
	if err := h.kv.Set(ThemeKey, theme); err != nil {
		h.logger.Error("failed to save theme", zap.Error(err))
	}
}
