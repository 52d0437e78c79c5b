package portfolio

import (
	"fmt"
	"strings"
)

// Instructions appended after the portfolio data. The model must stay
// inside the given context and answer in plain text.
const instructions = `Instructions:
- Answer ONLY using the information in the context above. Do not invent projects, skills, dates or links.
- Write in plain text. Do not use markdown: no asterisks, no hashes, no backticks, no link syntax.
- Keep answers concise. Prefer short bullet-style lines starting with "•" when listing items.
- When asked about something that is not in the context, say politely that you don't have that information and suggest using the contact form.
- Refer to the portfolio owner in the third person by name.`

// BuildContext returns the context for the embedded portfolio.
func BuildContext() string {
	return Default().Context()
}

// Context renders every skill, project, paper and contact link followed by
// the model instructions. Nothing is truncated.
func (p *Portfolio) Context() string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are the assistant on %s's portfolio website.", p.Owner.Name)
	b.WriteString(" Visitors ask you about their background, skills, projects and research.\n\n")

	b.WriteString("[About]\n")
	fmt.Fprintf(&b, "Name: %s\n", p.Owner.Name)
	if p.Owner.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", p.Owner.Title)
	}
	if p.Owner.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", p.Owner.Location)
	}
	if p.Owner.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", strings.TrimSpace(p.Owner.Summary))
	}

	b.WriteString("\n[Skills]\n")
	for _, s := range p.Skills {
		fmt.Fprintf(&b, "- %s: %s\n", s.Category, strings.Join(s.Items, ", "))
	}

	b.WriteString("\n[Projects]\n")
	for i, pr := range p.Projects {
		fmt.Fprintf(&b, "%d. %s\n", i+1, pr.Title)
		fmt.Fprintf(&b, "   Description: %s\n", pr.Description)
		if len(pr.Technologies) > 0 {
			fmt.Fprintf(&b, "   Technologies: %s\n", strings.Join(pr.Technologies, ", "))
		}
		if pr.Status != "" {
			fmt.Fprintf(&b, "   Status: %s\n", pr.Status)
		}
		if pr.GitHub != "" {
			fmt.Fprintf(&b, "   GitHub: %s\n", pr.GitHub)
		}
		if pr.Demo != "" {
			fmt.Fprintf(&b, "   Live demo: %s\n", pr.Demo)
		}
	}

	b.WriteString("\n[Research Papers]\n")
	for i, pa := range p.Papers {
		fmt.Fprintf(&b, "%d. %s\n", i+1, pa.Title)
		fmt.Fprintf(&b, "   Authors: %s\n", strings.Join(pa.Authors, ", "))
		fmt.Fprintf(&b, "   Venue: %s\n", pa.Venue)
		fmt.Fprintf(&b, "   Status: %s\n", pa.Status)
		if pa.Year != 0 {
			fmt.Fprintf(&b, "   Year: %d\n", pa.Year)
		}
		if len(pa.Keywords) > 0 {
			fmt.Fprintf(&b, "   Keywords: %s\n", strings.Join(pa.Keywords, ", "))
		}
		if pa.URL != "" {
			fmt.Fprintf(&b, "   Link: %s\n", pa.URL)
		}
	}

	b.WriteString("\n[Contact]\n")
	writeLink(&b, "Email", p.Contact.Email)
	writeLink(&b, "GitHub", p.Contact.GitHub)
	writeLink(&b, "LinkedIn", p.Contact.LinkedIn)
	writeLink(&b, "Website", p.Contact.Website)
	if p.ResumePath != "" {
		fmt.Fprintf(&b, "- Resume: downloadable from the website at %s\n", p.ResumePath)
	}

	b.WriteString("\n")
	b.WriteString(instructions)
	return b.String()
}

func writeLink(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "- %s: %s\n", label, value)
	}
}
