package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nunajera/portfolio-backend/internal"
	"github.com/nunajera/portfolio-backend/internal/chatclient"
	"github.com/nunajera/portfolio-backend/internal/store"
)

// blockingTransport holds every request until it is cancelled.
type blockingTransport struct{}

func (blockingTransport) Chat(ctx context.Context, _ string, _ []internal.HistoryEntry) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type recordingNavigator struct{ scrolled []string }

func (n *recordingNavigator) Download(string) error { return nil }
func (n *recordingNavigator) ScrollTo(section string) error {
	n.scrolled = append(n.scrolled, section)
	return nil
}
func (n *recordingNavigator) OpenURL(string) error { return nil }

type recordingClipboard struct{ text string }

func (c *recordingClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

func newTestModel(t *testing.T) (Model, *chatclient.Controller, *store.History) {
	t.Helper()
	history := store.NewHistory(store.NewMemoryStore(), zap.NewNop())
	ctrl := chatclient.New(blockingTransport{}, history, chatclient.WithClipboard(&recordingClipboard{}))
	t.Cleanup(ctrl.Close)

	m := NewModel(ctrl, history, ThemeDark)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), ctrl, history
}

func press(m Model, key tea.KeyMsg) Model {
	next, _ := m.Update(key)
	return next.(Model)
}

func TestLauncherToggle(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	assert.Contains(t, m.View(), "Chat with me")

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, ctrl.Snapshot().Open)
	assert.Contains(t, m.View(), "Portfolio assistant")
	assert.Contains(t, m.View(), "Try:")

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, ctrl.Snapshot().Open)
	assert.Contains(t, m.View(), "Chat with me")
}

func TestEnterSendsInput(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})

	m.in.SetValue("What do you work on?")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	snap := ctrl.Snapshot()
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, "What do you work on?", snap.Messages[1].Content)
	assert.Equal(t, chatclient.StateAwaitingResponse, snap.State)
	assert.Empty(t, m.in.Value())
	assert.Contains(t, m.View(), "Thinking...")

	m.in.SetValue("another")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Please wait for the current reply.", m.flash)
	assert.Equal(t, "another", m.in.Value())
}

func TestClearKey(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m.in.SetValue("hello")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	snap := ctrl.Snapshot()
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, internal.WelcomeMessageID, snap.Messages[0].ID)
	assert.Equal(t, chatclient.StateIdle, snap.State)
	assert.Equal(t, "Conversation cleared", m.flash)
}

func TestThemeTogglePersists(t *testing.T) {
	m, _, history := newTestModel(t)
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, ThemeDark, m.theme.Name)

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, ThemeLight, m.theme.Name)
	assert.Equal(t, ThemeLight, history.Theme())

	again := NewModel(m.ctrl, history, ThemeDark)
	assert.Equal(t, ThemeLight, again.theme.Name)
}

func TestQuickActionKey(t *testing.T) {
	cases := []struct {
		key  string
		want int
		ok   bool
	}{
		{"alt+1", 0, true},
		{"alt+9", 8, true},
		{"alt+0", 0, false},
		{"alt+a", 0, false},
		{"ctrl+1", 0, false},
		{"1", 0, false},
	}
	for _, tc := range cases {
		n, ok := quickActionKey(tc.key)
		assert.Equal(t, tc.ok, ok, tc.key)
		if tc.ok {
			assert.Equal(t, tc.want, n, tc.key)
		}
	}
}

func TestNavigatorDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resume.pdf" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	nav := NewNavigator(srv.URL+"/", dir, nil, nil)
	var notes []string
	nav.Notify = func(s string) { notes = append(notes, s) }

	require.NoError(t, nav.Download("/resume.pdf"))
	data, err := os.ReadFile(filepath.Join(dir, "resume.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
	assert.Equal(t, []string{"Saved " + filepath.Join(dir, "resume.pdf")}, notes)

	assert.Error(t, nav.Download("/missing.pdf"))
	_, err = os.Stat(filepath.Join(dir, "missing.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestNavigatorCopiesURLs(t *testing.T) {
	cb := &recordingClipboard{}
	nav := NewNavigator("https://example.dev", t.TempDir(), cb, nil)

	require.NoError(t, nav.ScrollTo("projects"))
	assert.Equal(t, "https://example.dev/#projects", cb.text)

	require.NoError(t, nav.OpenURL("https://github.com/example/devpulse"))
	assert.Equal(t, "https://github.com/example/devpulse", cb.text)
}

func TestQuickActionsOnlyUnderNewestReply(t *testing.T) {
	history := store.NewHistory(store.NewMemoryStore(), zap.NewNop())
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	history.Save([]internal.Message{
		internal.WelcomeMessage(at),
		{ID: "q1", Role: internal.RoleUser, Content: "Tell me about your projects", Timestamp: at},
		{ID: "a1", Role: internal.RoleAssistant, Content: "Here are a few highlights.", Timestamp: at},
		{ID: "q2", Role: internal.RoleUser, Content: "How do I get in touch?", Timestamp: at},
		{ID: "a2", Role: internal.RoleAssistant, Content: "Send me an email.", Timestamp: at},
	})
	nav := &recordingNavigator{}
	ctrl := chatclient.New(blockingTransport{}, history, chatclient.WithNavigator(nav))
	t.Cleanup(ctrl.Close)
	require.Equal(t, "View projects", ctrl.QuickActions("a1")[0].Label)
	require.Equal(t, "Contact me", ctrl.QuickActions("a2")[0].Label)

	m := NewModel(ctrl, history, ThemeDark)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = press(next.(Model), tea.KeyMsg{Type: tea.KeyTab})

	transcript := m.renderMessages()
	assert.Equal(t, 1, strings.Count(transcript, "[alt+1]"))
	assert.Contains(t, transcript, "[alt+1] Contact me")
	assert.NotContains(t, transcript, "View projects")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}, Alt: true})
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Equal(t, []string{chatclient.SectionContact}, nav.scrolled)
}
