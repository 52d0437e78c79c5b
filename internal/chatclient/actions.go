package chatclient

import (
	"strings"

	"github.com/nunajera/portfolio-backend/internal"
	"github.com/nunajera/portfolio-backend/internal/portfolio"
)

// Section ids the scroll actions point at.
const (
	SectionProjects = "projects"
	SectionSkills   = "skills"
	SectionResearch = "research"
	SectionContact  = "contact"
)

type topic struct {
	keywords []string
	action   internal.QuickAction
}

type projectLink struct {
	title string
	lower string
	url   string
}

// Detector derives quick actions from a question and its reply.
type Detector struct {
	topics   []topic
	projects []projectLink
}

func NewDetector(p *portfolio.Portfolio) *Detector {
	resume := p.ResumePath
	if resume == "" {
		resume = "/resume.pdf"
	}
	d := &Detector{
		topics: []topic{
			{[]string{"resume", "cv", "download"}, internal.QuickAction{Type: internal.ActionDownload, Label: "Download resume", Target: resume}},
			{[]string{"project", "portfolio", "work", "github"}, internal.QuickAction{Type: internal.ActionScroll, Label: "View projects", Target: SectionProjects}},
			{[]string{"skill", "technology", "expertise"}, internal.QuickAction{Type: internal.ActionScroll, Label: "View skills", Target: SectionSkills}},
			{[]string{"research", "paper", "publication", "journal"}, internal.QuickAction{Type: internal.ActionScroll, Label: "View research", Target: SectionResearch}},
			{[]string{"contact", "email", "reach", "connect"}, internal.QuickAction{Type: internal.ActionScroll, Label: "Contact me", Target: SectionContact}},
		},
	}
	for _, pr := range p.Projects {
		if pr.Title == "" || pr.GitHub == "" {
			continue
		}
		d.projects = append(d.projects, projectLink{title: pr.Title, lower: strings.ToLower(pr.Title), url: pr.GitHub})
	}
	return d
}

// Detect scans question and reply case-insensitively. Each matching topic
// and each project title found verbatim yields one action.
func (d *Detector) Detect(question, reply string) []internal.QuickAction {
	text := strings.ToLower(question + " " + reply)

	var out []internal.QuickAction
	for _, t := range d.topics {
		for _, kw := range t.keywords {
			if strings.Contains(text, kw) {
				out = append(out, t.action)
				break
			}
		}
	}
	for _, pr := range d.projects {
		if strings.Contains(text, pr.lower) {
			out = append(out, internal.QuickAction{
				Type:   internal.ActionLink,
				Label:  "View " + pr.title + " on GitHub",
				Target: pr.url,
			})
		}
	}
	return out
}

// Navigator performs quick actions for the widget.
type Navigator interface {
	Download(path string) error
	ScrollTo(section string) error
	OpenURL(url string) error
}
