package config

import (
	"fmt"
	"reflect"
)

// Typed lookups over a section mapping. A nil section behaves as empty and an
// explicit null behaves as absent.

func lookup(m *Mapping, key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.Get(key)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func stringOr(m *Mapping, key, def string) string {
	if v, ok := lookup(m, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func boolOr(m *Mapping, key string, def bool) bool {
	if v, ok := lookup(m, key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

func intOr(m *Mapping, key string, def int) int {
	if v, ok := lookup(m, key); ok {
		if i, ok := toInt(v); ok {
			return i
		}
	}
	return def
}

func stringList(m *Mapping, key string) []string {
	v, ok := lookup(m, key)
	if !ok {
		return []string{}
	}
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, toString(item))
	}
	return out
}

func mapOr(m *Mapping, key string) map[string]any {
	if v, ok := lookup(m, key); ok {
		if sub, ok := v.(*Mapping); ok {
			return plainMapping(sub)
		}
	}
	return map[string]any{}
}

func mappingList(m *Mapping, key string) []map[string]any {
	v, ok := lookup(m, key)
	if !ok {
		return []map[string]any{}
	}
	items, ok := v.([]any)
	if !ok {
		return []map[string]any{}
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if sub, ok := item.(*Mapping); ok {
			out = append(out, plainMapping(sub))
		}
	}
	return out
}

// toInt accepts integer and floating point numbers; floats are truncated.
// Booleans are not numbers here.
func toInt(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return int(rv.Float()), true
	}
	return 0, false
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	}
	return fmt.Sprint(v)
}

// truthy follows the labeling pipeline's notion of an enabled flag: nil,
// false, zero numbers, empty strings and empty collections are false.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case *Mapping:
		return x != nil && x.Len() > 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map:
		return rv.Len() > 0
	}
	return true
}
