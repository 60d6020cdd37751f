// Package template declares audit form templates: named widget lists that
// say which questions a given audit type renders, and in what order. A
// template is the render-time source of the tagged-variant plan the
// decoder dispatches on.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/storeops/auditpad/internal/form"
)

// Widget is one question declaration in a template.
type Widget struct {
	Kind  form.Kind `yaml:"kind"`
	Label string    `yaml:"label"`
}

// Template is a named, reusable audit form.
type Template struct {
	Name        string   `yaml:"name"`
	AuditType   string   `yaml:"audit_type"`
	Description string   `yaml:"description"`
	Widgets     []Widget `yaml:"widgets"`
}

// Load loads a template by name. Checks built-in templates first, then
// falls back to ~/.auditpad/templates/<name>.yaml.
func Load(name string) (*Template, error) {
	if data, ok := builtinTemplates[name]; ok {
		return parse(name, data)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("template %q not found (no built-in, cannot determine home dir)", name)
	}

	path := filepath.Join(home, ".auditpad", "templates", name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("template %q not found", name)
	}

	return parse(name, data)
}

func parse(name string, data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template %q: %w", name, err)
	}
	return &t, nil
}

// Validate checks the template's widget declarations.
func (t *Template) Validate() error {
	if len(t.Widgets) == 0 {
		return fmt.Errorf("template declares no widgets")
	}
	for i, w := range t.Widgets {
		switch w.Kind {
		case form.KindYesNo, form.KindNotes, form.KindYesNoNA:
			if w.Label == "" {
				return fmt.Errorf("widget %d (%s) has no label", i, w.Kind)
			}
		case form.KindTriOuts:
			// Fixed labels; a declared label is ignored.
		default:
			return fmt.Errorf("widget %d has unknown kind %q", i, w.Kind)
		}
	}
	return nil
}

// Plan renders the template into a form plan, minting a fresh instance key
// per widget. Each call is one render: plans are never reused.
func (t *Template) Plan() form.Plan {
	plan := make(form.Plan, 0, len(t.Widgets))
	for _, w := range t.Widgets {
		plan = append(plan, form.NewWidget(w.Kind, w.Label))
	}
	return plan
}

// List returns sorted names of all available templates (built-in + user).
func List() []string {
	seen := make(map[string]bool)
	for name := range builtinTemplates {
		seen[name] = true
	}

	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".auditpad", "templates")
		if entries, err := os.ReadDir(dir); err == nil {
			for _, e := range entries {
				if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
					continue
				}
				seen[strings.TrimSuffix(e.Name(), ".yaml")] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
