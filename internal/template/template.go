// Package template implements the placeholder substitution engine node
// code templates are written in. A template is plain source text with
// named markers of the form @[name]@.
//
// Templates are compiled once and are immutable; every Render call takes
// its own binding set, so one compiled template can be rendered
// concurrently with different bindings and no cross-contamination.
package template

import (
	"fmt"
	"sort"
	"strings"
)

const (
	openMarker  = "@["
	closeMarker = "]@"
)

// Template is the compiled, immutable form of a template string.
type Template struct {
	segments     []segment
	placeholders map[string]struct{}
}

// segment is either literal text or a placeholder reference.
type segment struct {
	text        string
	placeholder bool
}

// New compiles template content. It fails on an unterminated @[ marker.
func New(content string) (*Template, error) {
	t := &Template{placeholders: make(map[string]struct{})}

	rest := content
	for {
		start := strings.Index(rest, openMarker)
		if start < 0 {
			break
		}
		end := strings.Index(rest[start+len(openMarker):], closeMarker)
		if end < 0 {
			return nil, fmt.Errorf("unterminated placeholder marker at offset %d", len(content)-len(rest)+start)
		}

		if start > 0 {
			t.segments = append(t.segments, segment{text: rest[:start]})
		}
		name := rest[start+len(openMarker) : start+len(openMarker)+end]
		t.segments = append(t.segments, segment{text: name, placeholder: true})
		t.placeholders[name] = struct{}{}

		rest = rest[start+len(openMarker)+end+len(closeMarker):]
	}
	if rest != "" {
		t.segments = append(t.segments, segment{text: rest})
	}

	return t, nil
}

// Names returns the distinct placeholder names, sorted.
func (t *Template) Names() []string {
	names := make([]string, 0, len(t.placeholders))
	for name := range t.placeholders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the template references the named placeholder.
func (t *Template) Has(name string) bool {
	_, ok := t.placeholders[name]
	return ok
}

// Render substitutes every placeholder with its binding and returns the
// resulting text. A placeholder with no binding is an error; bindings that
// match no placeholder are ignored.
func (t *Template) Render(bindings map[string]string) (string, error) {
	var out strings.Builder
	for _, seg := range t.segments {
		if !seg.placeholder {
			out.WriteString(seg.text)
			continue
		}
		value, ok := bindings[seg.text]
		if !ok {
			return "", fmt.Errorf("unresolved placeholder %q", seg.text)
		}
		out.WriteString(value)
	}
	return out.String(), nil
}
