package config

import "github.com/invopop/jsonschema"

// DefaultMaxSelectedLabels applies when an attribute enables label selection
// without a numeric limit.
// TODO: confirm upstream whether this fallback is intended or should be an error.
const DefaultMaxSelectedLabels = 10

// Attribute is one entry of the prompt's attribute list.
type Attribute struct {
	Name        string
	Description string
	Options     []string
	TaskType    string
	// LabelSelection is the raw flag: a boolean or a label count.
	LabelSelection any
	// LabelSelectionCount is the raw label_selection_count value. It does not
	// affect MaxSelectedLabels.
	LabelSelectionCount any
	// Fields holds every key of the entry, including the ones above.
	Fields map[string]any
}

// LabelSelectionEnabled reports whether the attribute's flag is truthy.
func (a Attribute) LabelSelectionEnabled() bool {
	return truthy(a.LabelSelection)
}

// MaxSelectedLabels returns the label limit for an attribute with label
// selection enabled: the flag itself when numeric, else
// DefaultMaxSelectedLabels.
func (a Attribute) MaxSelectedLabels() int {
	if _, isBool := a.LabelSelection.(bool); !isBool {
		if n, ok := toInt(a.LabelSelection); ok {
			return n
		}
	}
	return DefaultMaxSelectedLabels
}

func decodeAttributes(m *Mapping) []Attribute {
	v, ok := lookup(m, "attributes")
	if !ok {
		return []Attribute{}
	}
	items, ok := v.([]any)
	if !ok {
		return []Attribute{}
	}

	attrs := make([]Attribute, 0, len(items))
	for _, item := range items {
		entry, ok := item.(*Mapping)
		if !ok {
			continue
		}
		flag, _ := lookup(entry, "label_selection")
		count, _ := lookup(entry, "label_selection_count")
		attrs = append(attrs, Attribute{
			Name:                stringOr(entry, "name", ""),
			Description:         stringOr(entry, "description", ""),
			Options:             stringList(entry, "options"),
			TaskType:            stringOr(entry, "task_type", ""),
			LabelSelection:      plain(flag),
			LabelSelectionCount: plain(count),
			Fields:              plainMapping(entry),
		})
	}
	return attrs
}

// firstLabelSelection scans in declared order and returns the index of the
// first attribute with a truthy label selection flag, or -1.
func firstLabelSelection(attrs []Attribute) int {
	for i, a := range attrs {
		if a.LabelSelectionEnabled() {
			return i
		}
	}
	return -1
}

// ExampleSet is the few-shot example source: a path to an example file or
// inline rows.
type ExampleSet struct {
	Path string
	Rows []map[string]any
}

// IsEmpty reports whether neither a path nor rows are configured.
func (e ExampleSet) IsEmpty() bool {
	return e.Path == "" && len(e.Rows) == 0
}

// JSONSchema accepts a file path or a list of example objects.
func (ExampleSet) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "Few-shot examples as a path to an example file or a list of rows",
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Type: "object"}},
		},
	}
}

func decodeExampleSet(m *Mapping) ExampleSet {
	v, ok := lookup(m, "few_shot_examples")
	if !ok {
		return ExampleSet{Rows: []map[string]any{}}
	}
	if path, ok := v.(string); ok {
		return ExampleSet{Path: path, Rows: []map[string]any{}}
	}
	return ExampleSet{Rows: mappingList(m, "few_shot_examples")}
}

// labelSelectionFlag only exists to describe the flag's schema.
type labelSelectionFlag struct{}

// JSONSchema accepts a boolean switch or a positive label count.
func (labelSelectionFlag) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "Enables label selection; an integer also sets the number of labels kept",
		OneOf: []*jsonschema.Schema{
			{Type: "boolean"},
			{Type: "integer"},
		},
	}
}
