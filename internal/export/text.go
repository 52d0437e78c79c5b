package export

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nunajera/portfolio-backend/internal"
)

// TextExporter writes "<Role> (<relative time>): <content>" blocks
// separated by blank lines.
type TextExporter struct {
	// Now anchors relative times; time.Now when nil.
	Now func() time.Time
}

func (e *TextExporter) Export(messages []internal.Message, w io.Writer) error {
	now := time.Now()
	if e.Now != nil {
		now = e.Now()
	}
	for i, msg := range clean(messages) {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		rel := humanize.RelTime(msg.Timestamp, now, "ago", "from now")
		if _, err := fmt.Fprintf(w, "%s (%s): %s\n", msg.Role.Label(), rel, msg.Content); err != nil {
			return err
		}
	}
	return nil
}

func (e *TextExporter) Extension() string {
	return "txt"
}
