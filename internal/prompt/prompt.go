// Package prompt assembles the text sent to the model for one chat turn.
package prompt

import (
	"fmt"
	"strings"

	"github.com/nunajera/portfolio-backend/internal"
)

// HistoryWindow is how many past turns are embedded verbatim.
const HistoryWindow = 5

const reminder = `Remember: reply in plain text only. Do not use markdown (no **, no #, no backticks, no [text](url) links). Use "•" for bullet points and keep the answer short.`

// Build concatenates the portfolio context, the recent conversation, the
// visitor's question and the plain-text reminder.
func Build(context string, history []internal.HistoryEntry, question string) string {
	var b strings.Builder
	b.WriteString(context)
	b.WriteString("\n\n")

	if recent := Recent(history); len(recent) > 0 {
		b.WriteString("Recent conversation:\n")
		for _, h := range recent {
			fmt.Fprintf(&b, "%s: %s\n", h.Role.Label(), strings.TrimSpace(h.Content))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Current question: %s\n\n", strings.TrimSpace(question))
	b.WriteString(reminder)
	return b.String()
}

// Recent returns the last HistoryWindow usable entries. Entries with an
// unknown role or no content are dropped first.
func Recent(history []internal.HistoryEntry) []internal.HistoryEntry {
	usable := make([]internal.HistoryEntry, 0, len(history))
	for _, h := range history {
		if h.Role != internal.RoleUser && h.Role != internal.RoleAssistant {
			continue
		}
		if strings.TrimSpace(h.Content) == "" {
			continue
		}
		usable = append(usable, h)
	}
	if len(usable) > HistoryWindow {
		usable = usable[len(usable)-HistoryWindow:]
	}
	return usable
}
