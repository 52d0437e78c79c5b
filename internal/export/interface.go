// Package export writes chat transcripts to files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nunajera/portfolio-backend/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(messages []internal.Message, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "txt", "text":
		return &TextExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "html":
		return &HTMLExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: txt, json, yaml, md, html)", format)
	}
}

// Filename is the timestamped name a transcript is saved under.
func Filename(ext string, at time.Time) string {
	return fmt.Sprintf("portfolio-chat-%s.%s", at.Format("2006-01-02-150405"), ext)
}

// ToFile exports msgs into dir and returns the written path. A failed
// export removes the partial file.
func ToFile(dir, format string, msgs []internal.Message, at time.Time) (string, error) {
	exp, err := NewExporter(format)
	if err != nil {
		return "", err
	}
	if t, ok := exp.(*TextExporter); ok {
		t.Now = func() time.Time { return at }
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, Filename(exp.Extension(), at))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	if err := exp.Export(msgs, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to export chat: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

func clean(msgs []internal.Message) []internal.Message {
	out := make([]internal.Message, len(msgs))
	for i, m := range msgs {
		out[i] = m.Clean()
	}
	return out
}
