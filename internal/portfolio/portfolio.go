// Package portfolio holds the site owner's static data and turns it into
// the context text the chat model answers from.
package portfolio

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var embedded []byte

type Owner struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title"`
	Location string `yaml:"location"`
	Summary  string `yaml:"summary"`
}

type SkillCategory struct {
	Category string   `yaml:"category"`
	Items    []string `yaml:"items"`
}

type Project struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	Status       string   `yaml:"status"`
	GitHub       string   `yaml:"github"`
	Demo         string   `yaml:"demo"`
}

type Paper struct {
	Title    string   `yaml:"title"`
	Authors  []string `yaml:"authors"`
	Venue    string   `yaml:"venue"`
	Status   string   `yaml:"status"`
	Year     int      `yaml:"year"`
	Keywords []string `yaml:"keywords"`
	URL      string   `yaml:"url"`
}

type Contact struct {
	Email    string `yaml:"email"`
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
	Website  string `yaml:"website"`
}

type Portfolio struct {
	Owner      Owner           `yaml:"owner"`
	ResumePath string          `yaml:"resume_path"`
	Skills     []SkillCategory `yaml:"skills"`
	Projects   []Project       `yaml:"projects"`
	Papers     []Paper         `yaml:"papers"`
	Contact    Contact         `yaml:"contact"`
}

var (
	defaultOnce sync.Once
	defaultData *Portfolio
)

// Default returns the portfolio compiled into the binary.
func Default() *Portfolio {
	defaultOnce.Do(func() {
		p, err := Parse(embedded)
		if err != nil {
			panic(fmt.Sprintf("portfolio: embedded data is invalid: %v", err))
		}
		defaultData = p
	})
	return defaultData
}

// Parse decodes portfolio YAML.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio data: %w", err)
	}
	if p.Owner.Name == "" {
		return nil, fmt.Errorf("failed to parse portfolio data: owner.name is required")
	}
	return &p, nil
}

// Load reads and parses a portfolio YAML file.
func Load(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio data: %w", err)
	}
	return Parse(data)
}
