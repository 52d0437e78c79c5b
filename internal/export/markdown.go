package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nunajera/portfolio-backend/internal"
)

// MarkdownExporter exports the transcript as a Markdown document
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(messages []internal.Message, w io.Writer) error {
	msgs := clean(messages)

	_, _ = fmt.Fprintf(w, "# Portfolio chat transcript\n\n")
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(msgs))
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range msgs {
		timestamp := ""
		if !msg.Timestamp.IsZero() {
			timestamp = fmt.Sprintf(" (%s)", msg.Timestamp.Format(time.RFC3339))
		}

		if _, err := fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", msg.Role.Label(), timestamp, escapeMarkdown(msg.Content)); err != nil {
			return err
		}

		if i < len(msgs)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}
	return nil
}

// escapeMarkdown keeps visitor text from turning into emphasis.
func escapeMarkdown(text string) string {
	r := strings.NewReplacer("**", "\\*\\*", "__", "\\_\\_", "#", "\\#")
	return r.Replace(text)
}

func (e *MarkdownExporter) Extension() string {
	return "md"
}
