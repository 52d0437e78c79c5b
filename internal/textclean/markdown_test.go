package textclean

import (
	"strings"
	"testing"
)

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Hello there.", "Hello there."},
		{"bold", "This is **important** text", "This is important text"},
		{"bold underscores", "This is __important__ text", "This is important text"},
		{"italic star", "This is *subtle* text", "This is subtle text"},
		{"italic underscore", "_emphasis_ here", "emphasis here"},
		{"snake case kept", "use snake_case_name here", "use snake_case_name here"},
		{"adjacent underscore italics", "_Go_ _Python_ _Rust_", "Go Python Rust"},
		{"italic in parentheses", "(_draft_)", "(draft)"},
		{"header", "### Projects\nDetails", "Projects\nDetails"},
		{"inline code", "Run `go test` now", "Run go test now"},
		{"fenced code", "Example:\n```go\nfmt.Println(1)\n```", "Example:\nfmt.Println(1)"},
		{"link", "See [GitHub](https://github.com/x) profile", "See GitHub profile"},
		{"image", "![logo](/logo.png) Brand", "logo Brand"},
		{"link with parentheses in url", "[the repo](https://x.io/a_(b)) here", "the repo here"},
		{"image with parentheses in url", "![chart](/img/(v2).png) done", "chart done"},
		{"strikethrough", "~~old~~ new", "old new"},
		{"dash bullets", "- Go\n- Python", "• Go\n• Python"},
		{"star bullets", "* Go\n* Python", "• Go\n• Python"},
		{"plus bullets", "+ Go", "• Go"},
		{"indented bullet", "  - nested", "• nested"},
		{"numbered list kept", "1. First\n2. Second", "1. First\n2. Second"},
		{"negative number kept", "-5 degrees", "-5 degrees"},
		{"horizontal rule", "above\n---\nbelow", "above\n\nbelow"},
		{"blank lines collapsed", "a\n\n\n\nb", "a\n\nb"},
		{"windows newlines", "a\r\nb", "a\nb"},
		{"stray star", "5 * 3", "5  3"},
		{"trims", "  \n hi \n ", "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkdown(tt.in); got != tt.want {
				t.Errorf("StripMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripMarkdown_SkillsAnswer(t *testing.T) {
	in := "## Technical Skills\n\nHere are the **main** areas:\n\n" +
		"* **Languages:** Go, Python\n" +
		"- *Frontend*: React\n" +
		"+ Backend: `Gin`\n\n" +
		"Check [GitHub](https://github.com/x) for ~~old~~ more.\n\n" +
		"```go\nfmt.Println(\"hi\")\n```\n"

	want := "Technical Skills\n\nHere are the main areas:\n\n" +
		"• Languages: Go, Python\n" +
		"• Frontend: React\n" +
		"• Backend: Gin\n\n" +
		"Check GitHub for old more.\n\n" +
		"fmt.Println(\"hi\")"

	got := StripMarkdown(in)
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	for _, c := range []string{"*", "#", "`"} {
		if strings.Contains(got, c) {
			t.Errorf("output still contains %q", c)
		}
	}
}
