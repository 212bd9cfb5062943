package core

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Map is a string-keyed map that remembers insertion order.
// The zero value is an empty map ready to use.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap builds a Map from alternating key/value arguments.
// A trailing key without a value is stored with a nil value.
func NewMap(kv ...any) Map {
	var m Map
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		var val any
		if i+1 < len(kv) {
			val = kv[i+1]
		}
		m.Set(key, val)
	}
	return m
}

// Set stores val under key. Overwriting a key keeps its original position.
func (m *Map) Set(key string, val any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = val
}

// Get returns the value stored under key.
func (m Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of entries.
func (m Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m Map) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Range calls fn for every entry in insertion order until fn returns false.
func (m Map) Range(fn func(key string, val any) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Clone returns a shallow copy that shares no storage with m.
func (m Map) Clone() Map {
	var c Map
	m.Range(func(k string, v any) bool {
		c.Set(k, v)
		return true
	})
	return c
}

// UnmarshalYAML decodes a mapping node, keeping the document's key order.
// Nested mappings become Maps as well. A top-level sequence is stored
// with its indexes as keys, so an empty JSON array decodes to an empty Map.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	v, err := nodeValue(node)
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case Map:
		*m = v
	case []any:
		var seq Map
		for i, item := range v {
			seq.Set(strconv.Itoa(i), item)
		}
		*m = seq
	case nil:
		*m = Map{}
	default:
		return fmt.Errorf("line %d: expected a mapping, got %T", node.Line, v)
	}
	return nil
}

func nodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return nodeValue(node.Content[0])
	case yaml.AliasNode:
		return nodeValue(node.Alias)
	case yaml.MappingNode:
		var m Map
		for i := 0; i+1 < len(node.Content); i += 2 {
			val, err := nodeValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(node.Content[i].Value, val)
		}
		return m, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, n := range node.Content {
			val, err := nodeValue(n)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		return list, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
