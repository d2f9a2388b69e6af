package config

import (
	"encoding/json"
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Mapping is an order-preserving string-keyed mapping inside a Document.
type Mapping = orderedmap.OrderedMap[string, any]

// Document is an immutable configuration tree. Mappings are *Mapping and keep
// the key order of their source, sequences are []any, and scalars are
// string, bool, int, float64 or nil.
type Document struct {
	root *Mapping
}

// ParseDocument parses JSON or YAML bytes into a Document, preserving key order.
func ParseDocument(data []byte) (*Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if node.Kind == 0 || (node.Kind == yaml.DocumentNode && len(node.Content) == 0) {
		return nil, fmt.Errorf("failed to parse document: document is empty")
	}

	value, err := fromNode(&node)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	root, ok := value.(*Mapping)
	if !ok {
		return nil, fmt.Errorf("failed to parse document: root must be a mapping, got %T", value)
	}
	return &Document{root: root}, nil
}

// NewDocument builds a Document from plain Go values. Go maps carry no key
// order, so keys are sorted lexicographically. The input is deep-copied.
func NewDocument(m map[string]any) *Document {
	return &Document{root: mappingFromMap(m)}
}

// Get returns a deep, plain-Go copy of a top-level value.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.root.Get(key)
	if !ok {
		return nil, false
	}
	return plain(v), true
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	return mappingKeys(d.root)
}

// Len returns the number of top-level keys.
func (d *Document) Len() int {
	return d.root.Len()
}

// ToMap returns a deep, plain-Go copy of the whole document.
func (d *Document) ToMap() map[string]any {
	return plainMapping(d.root)
}

// MarshalJSON encodes the document with keys in document order.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.root.MarshalJSON()
}

// MarshalYAML encodes the document with keys in document order.
func (d *Document) MarshalYAML() (interface{}, error) {
	return toNode(d.root)
}

func (d *Document) lookup(key string) (any, bool) {
	v, ok := d.root.Get(key)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (d *Document) mapping(key string) (*Mapping, bool) {
	v, ok := d.lookup(key)
	if !ok {
		return nil, false
	}
	m, ok := v.(*Mapping)
	return m, ok
}

func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		m := newMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
			}
			value, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, value)
		}
		return m, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			value, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
}

func toNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case *Mapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for pair := x.Oldest(); pair != nil; pair = pair.Next() {
			valueNode, err := toNode(pair.Value)
			if err != nil {
				return nil, err
			}
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key}
			n.Content = append(n.Content, keyNode, valueNode)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range x {
			itemNode, err := toNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, itemNode)
		}
		return n, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(x); err != nil {
			return nil, err
		}
		return n, nil
	}
}

// normalize converts plain Go containers into Document containers.
func normalize(v any) any {
	switch x := v.(type) {
	case *Mapping:
		return cloneMapping(x)
	case map[string]any:
		return mappingFromMap(x)
	case map[string]string:
		m := make(map[string]any, len(x))
		for k, s := range x {
			m[k] = s
		}
		return mappingFromMap(m)
	case []any:
		items := make([]any, len(x))
		for i, item := range x {
			items[i] = normalize(item)
		}
		return items
	case []string:
		items := make([]any, len(x))
		for i, s := range x {
			items[i] = s
		}
		return items
	case []map[string]any:
		items := make([]any, len(x))
		for i, item := range x {
			items[i] = mappingFromMap(item)
		}
		return items
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i)
		}
		f, _ := x.Float64()
		return f
	}
	return v
}

func mappingFromMap(m map[string]any) *Mapping {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := newMapping()
	for _, k := range keys {
		out.Set(k, normalize(m[k]))
	}
	return out
}

func cloneMapping(m *Mapping) *Mapping {
	out := newMapping()
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, normalize(pair.Value))
	}
	return out
}

func newMapping() *Mapping {
	return orderedmap.New[string, any]()
}

func mappingKeys(m *Mapping) []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// plain converts Document containers back into fresh plain Go values.
func plain(v any) any {
	switch x := v.(type) {
	case *Mapping:
		return plainMapping(x)
	case []any:
		items := make([]any, len(x))
		for i, item := range x {
			items[i] = plain(item)
		}
		return items
	}
	return v
}

// copyValue deep-copies plain Go containers.
func copyValue(v any) any {
	return plain(normalize(v))
}

func plainMapping(m *Mapping) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = plain(pair.Value)
	}
	return out
}
