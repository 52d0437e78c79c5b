package chatclient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nunajera/portfolio-backend/internal"
	"github.com/nunajera/portfolio-backend/internal/portfolio"
)

func actionTypes(actions []internal.QuickAction) map[string]internal.QuickAction {
	out := make(map[string]internal.QuickAction, len(actions))
	for _, a := range actions {
		out[a.Label] = a
	}
	return out
}

func TestDetector(t *testing.T) {
	d := NewDetector(portfolio.Default())

	tests := []struct {
		name     string
		question string
		reply    string
		want     []string
	}{
		{"resume", "", "You can grab my resume below.", []string{"Download resume"}},
		{"cv in question", "Do you have a CV?", "Yes.", []string{"Download resume"}},
		{"skills", "What technology stack do you use?", "Mostly Go.", []string{"View skills"}},
		{"research", "", "My latest paper was accepted.", []string{"View research"}},
		{"contact", "How do I reach you?", "Email is best.", []string{"Contact me"}},
		{"project title", "", "Sentiment Lens classifies feedback.", []string{"View Sentiment Lens on GitHub"}},
		{"case insensitive title", "", "i built MEDSCAN ASSIST last year", []string{"View MedScan Assist on GitHub"}},
		{"several", "Projects and contact?", "EcoRoute, and email me.", []string{"View projects", "Contact me", "View EcoRoute on GitHub"}},
		{"nothing", "hello", "Hi there!", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := actionTypes(d.Detect(tt.question, tt.reply))
			assert.Len(t, got, len(tt.want))
			for _, label := range tt.want {
				assert.Contains(t, got, label)
			}
		})
	}
}

func TestDetector_ProjectLinkTarget(t *testing.T) {
	d := NewDetector(&portfolio.Portfolio{
		Projects: []portfolio.Project{
			{Title: "Widget", GitHub: "https://github.com/example/widget"},
			{Title: "NoLink"},
		},
	})
	got := d.Detect("", "Widget and NoLink")
	assert.Equal(t, []internal.QuickAction{
		{Type: internal.ActionLink, Label: "View Widget on GitHub", Target: "https://github.com/example/widget"},
	}, got)
}

func TestMatchSuggestions(t *testing.T) {
	assert.Equal(t, DefaultSuggestions, MatchSuggestions("", DefaultSuggestions))

	got := MatchSuggestions("contact", DefaultSuggestions)
	assert.Equal(t, "How can I contact you?", got[0])

	assert.Empty(t, MatchSuggestions("zzzz", DefaultSuggestions))
}
