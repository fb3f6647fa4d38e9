// Package prompts holds the mentoring prompt templates. Templates live in mentor.json, embedded
// at build time, and use {{.Name}} placeholders.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Name identifies a mentoring template
type Name string

// Mentoring templates
const (
	// Advise answers a student's question about a career report. Needs Context and Question.
	Advise Name = "advise"
	// Posting explains a posting assessment. Needs Context and Posting.
	Posting Name = "posting"
)

//go:embed mentor.json
var mentorJSON []byte

var placeholder = regexp.MustCompile(`\{\{\.([A-Za-z][A-Za-z0-9_]*)\}\}`)

// template is a parsed prompt and the placeholders it expects, sorted
type template struct {
	text   string
	fields []string
}

var loadTemplates = sync.OnceValues(func() (map[Name]template, error) {
	return parse(mentorJSON)
})

func parse(data []byte) (map[Name]template, error) {
	var raw map[Name]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse mentor prompts: %w", err)
	}
	out := make(map[Name]template, len(raw))
	for name, text := range raw {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("mentor prompt %q is empty", name)
		}
		var fields []string
		for _, m := range placeholder.FindAllStringSubmatch(text, -1) {
			fields = append(fields, m[1])
		}
		slices.Sort(fields)
		out[name] = template{text: text, fields: slices.Compact(fields)}
	}
	return out, nil
}

// Render fills a template. Every placeholder the template uses must have a value; extra
// values are ignored and substituted values are never expanded again.
func Render(name Name, values map[string]string) (string, error) {
	templates, err := loadTemplates()
	if err != nil {
		return "", err
	}
	return render(templates, name, values)
}

func render(templates map[Name]template, name Name, values map[string]string) (string, error) {
	tmpl, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("unknown mentor prompt %q", name)
	}

	pairs := make([]string, 0, 2*len(tmpl.fields))
	var missing []string
	for _, field := range tmpl.fields {
		value, ok := values[field]
		if !ok {
			missing = append(missing, field)
			continue
		}
		pairs = append(pairs, "{{."+field+"}}", value)
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("mentor prompt %q is missing values for %s", name, strings.Join(missing, ", "))
	}
	return strings.NewReplacer(pairs...).Replace(tmpl.text), nil
}

// Fields returns the placeholders a template expects.
func Fields(name Name) ([]string, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	tmpl, ok := templates[name]
	if !ok {
		return nil, fmt.Errorf("unknown mentor prompt %q", name)
	}
	return slices.Clone(tmpl.fields), nil
}

// Names lists the embedded templates.
func Names() ([]Name, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	names := make([]Name, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
