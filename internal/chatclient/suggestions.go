package chatclient

import (
	"github.com/atotto/clipboard"
	"github.com/sahilm/fuzzy"
)

// DefaultSuggestions are offered while the conversation is untouched.
var DefaultSuggestions = []string{
	"What are your technical skills?",
	"Tell me about your projects",
	"What research have you published?",
	"How can I contact you?",
	"Can I download your resume?",
}

// MatchSuggestions fuzzy-filters candidates against input, best match
// first. Empty input returns every candidate.
func MatchSuggestions(input string, candidates []string) []string {
	if input == "" {
		out := make([]string, len(candidates))
		copy(out, candidates)
		return out
	}
	matches := fuzzy.Find(input, candidates)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}

// Clipboard receives copied message text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
