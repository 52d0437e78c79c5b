// Package tui renders the chat widget in a terminal with bubbletea.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nunajera/portfolio-backend/internal"
	"github.com/nunajera/portfolio-backend/internal/chatclient"
	"github.com/nunajera/portfolio-backend/internal/store"
)

// chrome is the number of rows outside the transcript viewport.
const chrome = 9

type (
	changedMsg struct{}
	flashMsg   string
)

// Model is the bubbletea model for the widget. All conversation state
// lives in the controller; the model only keeps view state.
type Model struct {
	ctrl    *chatclient.Controller
	history *store.History

	theme Theme
	vp    viewport.Model
	in    textinput.Model
	spin  spinner.Model
	snap  chatclient.Snapshot
	flash string

	width, height int
	ready         bool
}

func NewModel(ctrl *chatclient.Controller, history *store.History, fallbackTheme string) Model {
	in := textinput.New()
	in.Placeholder = "Ask about skills, projects or research..."
	in.CharLimit = chatclient.MaxMessageLength
	in.Prompt = "> "
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	name := history.Theme()
	if name == "" {
		name = fallbackTheme
	}

	return Model{
		ctrl:    ctrl,
		history: history,
		theme:   ThemeFor(name),
		in:      in,
		spin:    sp,
		snap:    ctrl.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := max(msg.Height-chrome, 3)
		w := max(msg.Width-4, 20)
		if !m.ready {
			m.vp = viewport.New(w, h)
			m.ready = true
		} else {
			m.vp.Width, m.vp.Height = w, h
		}
		m.in.Width = w - 4
		m.refresh()
		return m, nil

	case changedMsg:
		m.refresh()
		return m, nil

	case flashMsg:
		m.flash = string(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if model, cmd, handled := m.handleKey(msg); handled {
			return model, cmd
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.snap.Open && !m.snap.InputDisabled() {
		m.in, cmd = m.in.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.ready {
		m.vp, cmd = m.vp.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	key := msg.String()
	switch key {
	case "ctrl+c":
		return m, tea.Quit, true
	case "tab":
		m.ctrl.Toggle()
		m.refresh()
		return m, nil, true
	}
	if !m.snap.Open {
		if key == "enter" || key == "esc" {
			m.ctrl.SetOpen(true)
			m.refresh()
			return m, nil, true
		}
		if key == "q" {
			return m, tea.Quit, true
		}
		return m, nil, true
	}

	switch key {
	case "esc":
		m.ctrl.SetOpen(false)
		m.refresh()
		return m, nil, true
	case "enter":
		return m.send(), nil, true
	case "ctrl+n":
		if matches := m.ctrl.MatchSuggestions(m.in.Value()); len(matches) > 0 {
			m.in.SetValue(matches[0])
			m.in.CursorEnd()
		}
		return m, nil, true
	case "ctrl+l":
		m.ctrl.Clear()
		m.flash = "Conversation cleared"
		m.refresh()
		return m, nil, true
	case "ctrl+e":
		return m, m.export("txt"), true
	case "ctrl+j":
		return m, m.export("json"), true
	case "ctrl+y":
		id := m.ctrl.LastReplyID()
		if id == "" {
			return m, nil, true
		}
		if err := m.ctrl.CopyMessage(id); err != nil {
			m.flash = "Copy failed: " + err.Error()
		} else {
			m.flash = "Copied!"
		}
		return m, nil, true
	case "ctrl+t":
		m.theme = m.theme.next()
		m.history.SetTheme(m.theme.Name)
		m.refresh()
		return m, nil, true
	}

	if n, ok := quickActionKey(key); ok {
		ctrl, id := m.ctrl, m.ctrl.LastReplyID()
		return m, func() tea.Msg {
			if err := ctrl.RunQuickAction(id, n); err != nil {
				return flashMsg(err.Error())
			}
			return nil
		}, true
	}
	return m, nil, false
}

// quickActionKey maps alt+1..alt+9 to a zero based action index.
func quickActionKey(key string) (int, bool) {
	if len(key) != 5 || !strings.HasPrefix(key, "alt+") {
		return 0, false
	}
	d := key[4]
	if d < '1' || d > '9' {
		return 0, false
	}
	return int(d - '1'), true
}

func (m Model) send() Model {
	if m.snap.InputDisabled() {
		return m
	}
	err := m.ctrl.Send(m.in.Value())
	var throttle *chatclient.ThrottleError
	var invalid *internal.ValidationError
	switch {
	case err == nil:
		m.in.SetValue("")
		m.flash = ""
	case errors.Is(err, internal.ErrBusy):
		m.flash = "Please wait for the current reply."
	case errors.Is(err, internal.ErrEmptyMessage):
	case errors.As(err, &throttle), errors.As(err, &invalid):
		// Shown through the controller status.
	default:
		m.flash = err.Error()
	}
	m.refresh()
	return m
}

func (m Model) export(format string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		path, err := ctrl.Export(format)
		if err != nil {
			return flashMsg("Export failed: " + err.Error())
		}
		return flashMsg("Exported to " + path)
	}
}

// refresh pulls a fresh snapshot and rerenders the transcript.
func (m *Model) refresh() {
	m.snap = m.ctrl.Snapshot()
	if m.snap.InputDisabled() {
		m.in.Blur()
	} else {
		m.in.Focus()
	}
	if !m.ready {
		return
	}
	m.vp.SetContent(m.renderMessages())
	m.vp.GotoBottom()
}

func (m Model) renderMessages() string {
	width := m.vp.Width
	// alt+N always targets the newest reply, so only it gets actions.
	lastReply := -1
	for i := len(m.snap.Messages) - 1; i >= 0; i-- {
		if m.snap.Messages[i].Role == internal.RoleAssistant {
			lastReply = i
			break
		}
	}

	var b strings.Builder
	for i, msg := range m.snap.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		label := m.theme.Assistant.Render("Assistant")
		if msg.Role == internal.RoleUser {
			label = m.theme.User.Render("You")
		}
		b.WriteString(label)
		b.WriteString(m.theme.Muted.Render(" " + msg.Timestamp.Format("15:04")))
		b.WriteString("\n")

		text := msg.Display()
		if msg.IsStreaming {
			text += "▍"
		}
		b.WriteString(m.theme.Body.Width(width).Render(text))
		b.WriteString("\n")

		if i != lastReply {
			continue
		}
		for j, a := range msg.QuickActions {
			if j >= 9 {
				break
			}
			b.WriteString(m.theme.Action.Render(fmt.Sprintf("  [alt+%d] %s", j+1, a.Label)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) statusLine() string {
	switch {
	case m.snap.State == chatclient.StateRateLimited:
		return m.theme.Error.Render(fmt.Sprintf("Too many requests. You can send again in %ds.", m.snap.CooldownRemaining))
	case m.snap.Busy():
		return m.spin.View() + m.theme.Muted.Render(" Thinking...")
	case m.snap.Status != "":
		return m.theme.Error.Render(m.snap.Status)
	case m.flash != "":
		return m.theme.Muted.Render(m.flash)
	}
	return ""
}

func (m Model) suggestionLine() string {
	matches := m.ctrl.MatchSuggestions(m.in.Value())
	if len(matches) == 0 {
		return ""
	}
	return m.theme.Muted.Render("Try: " + strings.Join(matches, " · ") + "  (ctrl+n)")
}

func (m Model) View() string {
	if !m.snap.Open {
		return m.theme.Launcher.Render("Chat with me") + "  " + m.theme.Muted.Render("tab to open · q to quit")
	}
	if !m.ready {
		return "Loading..."
	}

	help := m.theme.Muted.Render("enter send · esc close · ctrl+l clear · ctrl+e/ctrl+j export · ctrl+y copy · ctrl+t theme · ctrl+c quit")
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Portfolio assistant"),
		m.vp.View(),
		m.suggestionLine(),
		m.statusLine(),
		m.in.View(),
		help,
	)
	return m.theme.Frame.Render(body)
}

// Run opens the widget and blocks until the user quits. The controller is
// closed before Run returns.
func Run(ctrl *chatclient.Controller, history *store.History, nav *Navigator, theme string) error {
	ctrl.SetOpen(true)
	p := tea.NewProgram(NewModel(ctrl, history, theme), tea.WithAltScreen())
	ctrl.OnChange(func() { go p.Send(changedMsg{}) })
	if nav != nil {
		nav.Notify = func(s string) { go p.Send(flashMsg(s)) }
	}
	_, err := p.Run()
	ctrl.Close()
	return err
}
