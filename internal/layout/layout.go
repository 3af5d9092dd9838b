// Package layout is the template store: named layout templates that wrap
// rendered post content. The store only supports lookup by name; loading and
// parsing happen up front.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
)

// Store resolves a layout template by name.
type Store interface {
	// Lookup returns the named template, or an error when the name is not
	// registered. Callers classify a failed lookup as an unknown-layout
	// condition; the store itself stays transport-agnostic.
	Lookup(name string) (*template.Template, error)
	// Names returns the registered layout names, sorted.
	Names() []string
}

type store struct {
	templates map[string]*template.Template
}

func (s *store) Lookup(name string) (*template.Template, error) {
	tpl, ok := s.templates[name]
	if !ok {
		return nil, fmt.Errorf("layout %q is not registered", name)
	}
	return tpl, nil
}

func (s *store) Names() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewFromMap builds a store from layout name to template text. Used by tests
// and by callers that embed their layouts.
func NewFromMap(sources map[string]string) (Store, error) {
	templates := make(map[string]*template.Template, len(sources))
	for name, text := range sources {
		tpl, err := parseLayout(name, text)
		if err != nil {
			return nil, err
		}
		templates[name] = tpl
	}
	return &store{templates: templates}, nil
}

// LoadDir builds a store from every .html and .tmpl file directly inside dir.
// The layout name is the file name without extension.
func LoadDir(dir string) (Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read layouts directory: %w", err)
	}

	templates := make(map[string]*template.Template)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".html" && ext != ".tmpl" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)

		text, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read layout %s: %w", entry.Name(), err)
		}
		tpl, err := parseLayout(name, string(text))
		if err != nil {
			return nil, err
		}
		templates[name] = tpl
	}
	return &store{templates: templates}, nil
}

func parseLayout(name, text string) (*template.Template, error) {
	tpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", name, err)
	}
	return tpl, nil
}
