package config

import (
	"sort"

	"github.com/invopop/jsonschema"
)

// LabelsKind tags the two label representations.
type LabelsKind int

const (
	// LabelsPlain is a sequence of label names.
	LabelsPlain LabelsKind = iota
	// LabelsDescribed maps each label name to a description.
	LabelsDescribed
)

// String returns the kind name.
func (k LabelsKind) String() string {
	if k == LabelsDescribed {
		return "described"
	}
	return "plain"
}

// Labels is the prompt's label set: either plain names or names with
// descriptions. The zero value is an empty plain set.
type Labels struct {
	kind         LabelsKind
	names        []string
	descriptions map[string]string
}

// PlainLabels returns a plain label set.
func PlainLabels(names ...string) Labels {
	return Labels{kind: LabelsPlain, names: append([]string(nil), names...)}
}

// DescribedLabels returns a described label set. Names keep the given order;
// descriptions for names not in the map are empty.
func DescribedLabels(names []string, descriptions map[string]string) Labels {
	l := Labels{
		kind:         LabelsDescribed,
		names:        append([]string(nil), names...),
		descriptions: make(map[string]string, len(names)),
	}
	for _, n := range names {
		l.descriptions[n] = descriptions[n]
	}
	return l
}

// Kind reports which representation the set uses.
func (l Labels) Kind() LabelsKind { return l.kind }

// Names returns the label names. For described labels this is the mapping's
// keys in document order.
func (l Labels) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Descriptions returns the name to description mapping, or nil for plain labels.
func (l Labels) Descriptions() map[string]string {
	if l.kind != LabelsDescribed {
		return nil
	}
	out := make(map[string]string, len(l.descriptions))
	for k, v := range l.descriptions {
		out[k] = v
	}
	return out
}

// Len returns the number of labels.
func (l Labels) Len() int { return len(l.names) }

// JSONSchema describes the accepted shapes: an array of strings or a
// string to string object.
func (Labels) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "Valid labels as a list of names or a mapping of name to description",
		OneOf: []*jsonschema.Schema{
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			{Type: "object", AdditionalProperties: &jsonschema.Schema{Type: "string"}},
		},
	}
}

// decodeLabels inspects the shape of the labels value once. Anything that is
// not a mapping is treated as a sequence.
func decodeLabels(v any) Labels {
	switch x := v.(type) {
	case *Mapping:
		names := make([]string, 0, x.Len())
		descriptions := make(map[string]string, x.Len())
		for pair := x.Oldest(); pair != nil; pair = pair.Next() {
			names = append(names, pair.Key)
			descriptions[pair.Key] = toString(pair.Value)
		}
		return Labels{kind: LabelsDescribed, names: names, descriptions: descriptions}
	case map[string]any:
		return decodeLabels(mappingFromMap(x))
	case map[string]string:
		names := make([]string, 0, len(x))
		for k := range x {
			names = append(names, k)
		}
		sort.Strings(names)
		return DescribedLabels(names, x)
	case []any:
		names := make([]string, 0, len(x))
		for _, item := range x {
			names = append(names, toString(item))
		}
		return Labels{kind: LabelsPlain, names: names}
	case []string:
		return PlainLabels(x...)
	}
	return Labels{kind: LabelsPlain}
}
