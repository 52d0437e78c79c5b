// Package mail delivers contact form submissions through the Resend API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nunajera/portfolio-backend/internal"
)

const DefaultEndpoint = "https://api.resend.com/emails"

type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text,omitempty"`
}

// Sender delivers one e-mail.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

type ResendSender struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{
		apiKey:   apiKey,
		endpoint: DefaultEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// WithEndpoint points the sender at another base URL (tests, proxies).
func (s *ResendSender) WithEndpoint(endpoint string) *ResendSender {
	s.endpoint = endpoint
	return s
}

func (s *ResendSender) Send(ctx context.Context, e Email) error {
	if s.apiKey == "" {
		return &internal.ConfigurationError{Setting: "RESEND_API_KEY"}
	}

	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}

// ContactEmail renders a contact form submission. Every user-supplied
// field is HTML-escaped before it is embedded in the body.
func ContactEmail(req internal.ContactRequest, from, to string) Email {
	esc := html.EscapeString
	name := strings.TrimSpace(req.FirstName + " " + req.LastName)

	var b strings.Builder
	b.WriteString("<h2>New portfolio contact</h2>\n")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>\n", esc(name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>\n", esc(req.Email))
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>\n", esc(req.Subject))
	b.WriteString("<p><strong>Message:</strong></p>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n", strings.ReplaceAll(esc(req.Message), "\n", "<br>"))

	text := fmt.Sprintf("Name: %s\nEmail: %s\nSubject: %s\n\n%s\n", name, req.Email, req.Subject, req.Message)

	return Email{
		From:    from,
		To:      []string{to},
		ReplyTo: req.Email,
		Subject: "Portfolio contact: " + req.Subject,
		HTML:    b.String(),
		Text:    text,
	}
}
