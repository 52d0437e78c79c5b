package export

import (
	"bytes"
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"

	"github.com/nunajera/portfolio-backend/internal"
)

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Portfolio chat transcript</title>
<style>body{font-family:system-ui,sans-serif;max-width:48rem;margin:2rem auto;line-height:1.5;padding:0 1rem}hr{border:0;border-top:1px solid #ddd}</style>
</head>
<body>
`

const htmlFoot = "</body>\n</html>\n"

// HTMLExporter renders the Markdown transcript to a standalone page.
// Raw HTML typed into the chat is dropped, not rendered.
type HTMLExporter struct{}

func (e *HTMLExporter) Export(messages []internal.Message, w io.Writer) error {
	var md bytes.Buffer
	if err := (&MarkdownExporter{}).Export(messages, &md); err != nil {
		return err
	}

	if _, err := io.WriteString(w, htmlHead); err != nil {
		return err
	}
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	if _, err := w.Write(markdown.ToHTML(md.Bytes(), nil, renderer)); err != nil {
		return err
	}
	_, err := io.WriteString(w, htmlFoot)
	return err
}

func (e *HTMLExporter) Extension() string {
	return "html"
}
