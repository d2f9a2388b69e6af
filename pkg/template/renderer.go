// Package template renders example templates used in labeling prompts.
//
// Example templates reference dataset columns with single-brace placeholders,
// e.g. "Input: {text}\nOutput: {label}". Doubled braces ("{{" and "}}") produce
// literal braces. The package supports:
//   - Extraction of referenced column names
//   - Rendering a dataset row into a template
//   - Detection of placeholders with no matching column
package template

import (
	"fmt"
	"strings"
)

// Renderer substitutes dataset row values into example templates.
type Renderer struct{}

// NewRenderer creates a new template renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// segment is either literal text or a placeholder reference.
type segment struct {
	text        string
	placeholder bool
}

// parse splits a template into literal and placeholder segments.
func parse(tmpl string) ([]segment, error) {
	var (
		segments []segment
		literal  strings.Builder
	)

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, segment{text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch {
		case c == '{' && i+1 < len(tmpl) && tmpl[i+1] == '{':
			literal.WriteByte('{')
			i++
		case c == '}' && i+1 < len(tmpl) && tmpl[i+1] == '}':
			literal.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end == -1 {
				return nil, fmt.Errorf("unclosed placeholder at offset %d", i)
			}
			name := fieldName(tmpl[i+1 : i+1+end])
			if name == "" {
				return nil, fmt.Errorf("empty placeholder at offset %d", i)
			}
			flush()
			segments = append(segments, segment{text: name, placeholder: true})
			i += end + 1
		case c == '}':
			return nil, fmt.Errorf("single '}' at offset %d", i)
		default:
			literal.WriteByte(c)
		}
	}
	flush()

	return segments, nil
}

// fieldName strips conversion and format specs ("{score:.2f}", "{text!r}").
func fieldName(raw string) string {
	if idx := strings.IndexAny(raw, ":!"); idx != -1 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw)
}

// Placeholders returns the distinct column names referenced by tmpl in order
// of first appearance.
func Placeholders(tmpl string) ([]string, error) {
	segments, err := parse(tmpl)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, s := range segments {
		if s.placeholder && !seen[s.text] {
			seen[s.text] = true
			names = append(names, s.text)
		}
	}
	return names, nil
}

// Render substitutes row values into tmpl. Every placeholder must have a
// value in row; missing columns are reported together.
func (r *Renderer) Render(tmpl string, row map[string]string) (string, error) {
	segments, err := parse(tmpl)
	if err != nil {
		return "", err
	}

	var (
		out     strings.Builder
		missing []string
	)
	for _, s := range segments {
		if !s.placeholder {
			out.WriteString(s.text)
			continue
		}
		value, ok := row[s.text]
		if !ok {
			missing = append(missing, s.text)
			continue
		}
		out.WriteString(value)
	}

	if len(missing) > 0 {
		return "", fmt.Errorf("missing values for template columns: %v", missing)
	}
	return out.String(), nil
}

// UnknownColumns returns placeholders in tmpl that are not among columns.
func UnknownColumns(tmpl string, columns []string) ([]string, error) {
	names, err := Placeholders(tmpl)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	var unknown []string
	for _, n := range names {
		if !known[n] {
			unknown = append(unknown, n)
		}
	}
	return unknown, nil
}
