// Package textclean turns model output into plain text for the chat widget.
package textclean

import (
	"regexp"
	"strings"
)

// Bullet is the glyph every list marker is normalized to.
const Bullet = "•"

var (
	fencedCode  = regexp.MustCompile("(?s)```[^\\n`]*\\n?(.*?)```")
	inlineCode  = regexp.MustCompile("`([^`\\n]*)`")
	image       = regexp.MustCompile(`!\[([^\]]*)\]\((?:[^()\n]|\([^()\n]*\))*\)`)
	link        = regexp.MustCompile(`\[([^\]]+)\]\((?:[^()\n]|\([^()\n]*\))*\)`)
	hrule       = regexp.MustCompile(`(?m)^[ \t]*([-*_][ \t]*){3,}$`)
	header      = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]*`)
	boldStar    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnder   = regexp.MustCompile(`__(.+?)__`)
	strike      = regexp.MustCompile(`~~(.+?)~~`)
	bullet      = regexp.MustCompile(`(?m)^([ \t]*)[-*+][ \t]+`)
	italicStar  = regexp.MustCompile(`\*([^*\n]+)\*`)
	italicUnder = regexp.MustCompile(`\b_([^_\n]+)_\b`)
	trailingWS  = regexp.MustCompile(`(?m)[ \t]+$`)
	blankLines  = regexp.MustCompile(`\n{3,}`)

	leftovers = strings.NewReplacer("*", "", "`", "")
)

// StripMarkdown removes residual markdown syntax. Code keeps its text,
// links keep their label and list markers become Bullet.
func StripMarkdown(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	s = fencedCode.ReplaceAllString(s, "$1")
	s = inlineCode.ReplaceAllString(s, "$1")
	s = image.ReplaceAllString(s, "$1")
	s = link.ReplaceAllString(s, "$1")
	s = hrule.ReplaceAllString(s, "")
	s = header.ReplaceAllString(s, "")

	s = boldStar.ReplaceAllString(s, "$1")
	s = boldUnder.ReplaceAllString(s, "$1")
	s = strike.ReplaceAllString(s, "$1")

	// bullets before single-star emphasis, "* item" is a list marker
	s = bullet.ReplaceAllString(s, "${1}"+Bullet+" ")
	s = italicStar.ReplaceAllString(s, "$1")
	s = italicUnder.ReplaceAllString(s, "$1")

	s = leftovers.Replace(s)
	s = trailingWS.ReplaceAllString(s, "")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
