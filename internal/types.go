package internal

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Label is the capitalized form used in prompts and transcripts.
func (r Role) Label() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// Message is one chat turn. Content is always the final text; the
// streaming fields and quick actions are render state and never persisted.
type Message struct {
	ID        string    `json:"id,omitempty" yaml:"id,omitempty"`
	Role      Role      `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	IsStreaming      bool          `json:"-" yaml:"-"`
	StreamingContent string        `json:"-" yaml:"-"`
	QuickActions     []QuickAction `json:"-" yaml:"-"`
}

// Display returns what the widget should show for the message right now.
func (m Message) Display() string {
	if m.IsStreaming {
		return m.StreamingContent
	}
	return m.Content
}

// Clean drops render-only state.
func (m Message) Clean() Message {
	m.IsStreaming = false
	m.StreamingContent = ""
	m.QuickActions = nil
	return m
}

const WelcomeMessageID = "welcome"

const welcomeText = "Hi! I'm the portfolio assistant. Ask me about skills, projects, research papers, or how to get in touch."

// WelcomeMessage is the canonical first message of every conversation.
func WelcomeMessage(at time.Time) Message {
	return Message{
		ID:        WelcomeMessageID,
		Role:      RoleAssistant,
		Content:   welcomeText,
		Timestamp: at,
	}
}

type ActionType string

const (
	ActionDownload ActionType = "download"
	ActionScroll   ActionType = "scroll"
	ActionLink     ActionType = "link"
)

// QuickAction is a shortcut offered under an assistant reply. Target is a
// file path for downloads, a section id for scrolls and a URL for links.
type QuickAction struct {
	Type   ActionType `json:"type"`
	Label  string     `json:"label"`
	Target string     `json:"target"`
}

// HistoryEntry is the wire form of a past turn sent with a chat request.
type HistoryEntry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string         `json:"message"`
	ConversationHistory []HistoryEntry `json:"conversationHistory"`
}

type ChatResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Model   string `json:"model,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ContactRequest is the contact form body. Website is a honeypot.
type ContactRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Subject   string `json:"subject" validate:"required,max=200"`
	Message   string `json:"message" validate:"required,max=5000"`
	Website   string `json:"website,omitempty"`
}

type ContactResponse struct {
	OK bool `json:"ok"`
}
