package prompt

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

var (
	//go:embed template/beginner.txt
	beginnerRaw string

	//go:embed template/intermediate.txt
	intermediateRaw string

	//go:embed template/advanced.txt
	advancedRaw string
)

// TemplateSet holds one parsed explanation template per learner level.
type TemplateSet struct {
	byLevel map[contractx.Level]*template.Template
}

type templateData struct {
	Query   string
	Context map[string]any
}

// LoadTemplateSet parses the embedded templates. The result is read-only and
// safe for concurrent use.
func LoadTemplateSet() (*TemplateSet, error) {
	raw := map[contractx.Level]string{
		contractx.LevelBeginner:     beginnerRaw,
		contractx.LevelIntermediate: intermediateRaw,
		contractx.LevelAdvanced:     advancedRaw,
	}

	set := &TemplateSet{byLevel: make(map[contractx.Level]*template.Template, len(raw))}
	for level, body := range raw {
		body = strings.TrimSpace(body)
		if body == "" {
			return nil, fmt.Errorf("%w: empty template for level=%s", contractx.ErrValidation, level)
		}
		tmpl, err := template.New(string(level)).Option("missingkey=zero").Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse template level=%s: %w", level, err)
		}
		set.byLevel[level] = tmpl
	}
	return set, nil
}

// MustLoadTemplateSet panics when the embedded templates are broken.
func MustLoadTemplateSet() *TemplateSet {
	set, err := LoadTemplateSet()
	if err != nil {
		panic(err)
	}
	return set
}

// Render interpolates the query into the template of the given level.
// Unknown levels fall back to the beginner template.
func (s *TemplateSet) Render(level contractx.Level, query string, ctx map[string]any) (string, error) {
	tmpl, ok := s.byLevel[level]
	if !ok {
		tmpl = s.byLevel[contractx.LevelBeginner]
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, templateData{Query: strings.TrimSpace(query), Context: ctx}); err != nil {
		return "", fmt.Errorf("render template level=%s: %w", level, err)
	}
	return b.String(), nil
}
