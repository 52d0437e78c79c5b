package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nunajera/portfolio-backend/internal"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func transcript() []internal.Message {
	return []internal.Message{
		{ID: "welcome", Role: internal.RoleAssistant, Content: "Hi!", Timestamp: now.Add(-10 * time.Minute)},
		{ID: "u1", Role: internal.RoleUser, Content: "Tell me about **EcoRoute** <script>", Timestamp: now.Add(-2 * time.Minute)},
		{
			ID: "a1", Role: internal.RoleAssistant, Content: "EcoRoute plans greener trips.", Timestamp: now.Add(-90 * time.Second),
			IsStreaming: true, StreamingContent: "EcoRoute",
		},
	}
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{"txt", "txt", false},
		{"text", "txt", false},
		{"json", "json", false},
		{"yaml", "yaml", false},
		{"md", "md", false},
		{"markdown", "md", false},
		{"html", "html", false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			exp, err := NewExporter(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, exp.Extension())
		})
	}
}

func TestTextExporter(t *testing.T) {
	var buf bytes.Buffer
	exp := &TextExporter{Now: func() time.Time { return now }}
	require.NoError(t, exp.Export(transcript(), &buf))

	want := "Assistant (10 minutes ago): Hi!\n" +
		"\n" +
		"User (2 minutes ago): Tell me about **EcoRoute** <script>\n" +
		"\n" +
		"Assistant (1 minute ago): EcoRoute plans greener trips.\n"
	assert.Equal(t, want, buf.String())
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONExporter{}).Export(transcript(), &buf))

	assert.NotContains(t, buf.String(), "streaming")

	var got []internal.Message
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "EcoRoute plans greener trips.", got[2].Content)
	assert.True(t, got[2].Timestamp.Equal(now.Add(-90*time.Second)))
	assert.False(t, got[2].IsStreaming)
}

func TestYAMLExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLExporter{}).Export(transcript(), &buf))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "user", got[1]["role"])
	assert.NotContains(t, buf.String(), "streamingcontent")
}

func TestMarkdownExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownExporter{}).Export(transcript(), &buf))
	out := buf.String()

	assert.Contains(t, out, "# Portfolio chat transcript")
	assert.Contains(t, out, "**Messages:** 3")
	assert.Contains(t, out, "**User:** (2024-05-01T11:58:00Z)")
	assert.Contains(t, out, `Tell me about \*\*EcoRoute\*\*`)
	assert.Equal(t, 2, strings.Count(out, "---\n\n")-1)
}

func TestHTMLExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&HTMLExporter{}).Export(transcript(), &buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Portfolio chat transcript</h1>")
	assert.Contains(t, out, "<strong>User:</strong>")
	assert.NotContains(t, out, "<script>")
	assert.True(t, strings.HasSuffix(out, "</html>\n"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "portfolio-chat-2024-05-01-120000.txt", Filename("txt", now))
}

func TestToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := ToFile(dir, "txt", transcript(), now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "portfolio-chat-2024-05-01-120000.txt"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "Assistant (10 minutes ago): Hi!"))

	_, err = ToFile(dir, "xml", transcript(), now)
	assert.Error(t, err)
}
