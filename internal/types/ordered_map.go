package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// ErrNotObject is returned when decoding a non-mapping document into an OrderedMap.
var ErrNotObject = errors.New("value is not an object")

// OrderedMap is a string-keyed map that remembers insertion order.
// Generated objects and keyed maps are represented with it so that
// field declaration order survives serialization.
// The zero value is not usable, use NewOrderedMap.
type OrderedMap struct {
	pairs *orderedmap.OrderedMap[string, any]
}

// NewOrderedMap creates an empty OrderedMap with room for size keys.
func NewOrderedMap(size int) *OrderedMap {
	return &OrderedMap{
		pairs: orderedmap.New[string, any](size),
	}
}

// OrderedMapFrom converts a plain map into an OrderedMap.
// Keys are sorted because Go maps have no order of their own.
// Nested plain maps are converted as well.
func OrderedMapFrom(m map[string]any) *OrderedMap {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	res := NewOrderedMap(len(keys))
	for _, k := range keys {
		res.Set(k, Normalize(m[k]))
	}
	return res
}

// Normalize deep-copies a value tree, replacing every map[string]any with *OrderedMap.
func Normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return OrderedMapFrom(v)
	case *OrderedMap:
		return v.Clone()
	case []any:
		res := make([]any, len(v))
		for i, item := range v {
			res[i] = Normalize(item)
		}
		return res
	default:
		return v
	}
}

// Set stores the value under key. Existing keys keep their position.
func (m *OrderedMap) Set(key string, value any) {
	m.pairs.Set(key, value)
}

// Get returns the value stored under key.
func (m *OrderedMap) Get(key string) (any, bool) {
	return m.pairs.Get(key)
}

// Has reports whether key is present.
func (m *OrderedMap) Has(key string) bool {
	_, ok := m.pairs.Get(key)
	return ok
}

// Delete removes key, preserving the order of the remaining keys.
func (m *OrderedMap) Delete(key string) {
	m.pairs.Delete(key)
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	res := make([]string, 0, m.pairs.Len())
	for pair := m.pairs.Oldest(); pair != nil; pair = pair.Next() {
		res = append(res, pair.Key)
	}
	return res
}

// Len returns the number of keys.
func (m *OrderedMap) Len() int {
	return m.pairs.Len()
}

// Clone returns a deep copy.
func (m *OrderedMap) Clone() *OrderedMap {
	res := NewOrderedMap(m.Len())
	for pair := m.pairs.Oldest(); pair != nil; pair = pair.Next() {
		res.Set(pair.Key, Normalize(pair.Value))
	}
	return res
}

// ToMap converts the tree into plain maps and slices, dropping order.
func (m *OrderedMap) ToMap() map[string]any {
	res := make(map[string]any, m.Len())
	for pair := m.pairs.Oldest(); pair != nil; pair = pair.Next() {
		res[pair.Key] = Plain(pair.Value)
	}
	return res
}

// Plain is the inverse of Normalize.
func Plain(value any) any {
	switch v := value.(type) {
	case *OrderedMap:
		return v.ToMap()
	case []any:
		res := make([]any, len(v))
		for i, item := range v {
			res[i] = Plain(item)
		}
		return res
	default:
		return v
	}
}

// MarshalJSON writes keys in insertion order.
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	return m.pairs.MarshalJSON()
}

// UnmarshalJSON reads a JSON object keeping the document key order, nested objects included.
// Numbers are decoded as float64.
func (m *OrderedMap) UnmarshalJSON(data []byte) error {
	raw := orderedmap.New[string, json.RawMessage]()
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}

	res := NewOrderedMap(raw.Len())
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		value, err := decodeJSONValue(pair.Value)
		if err != nil {
			return err
		}
		res.Set(pair.Key, value)
	}
	*m = *res
	return nil
}

func decodeJSONValue(raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 {
		switch raw[0] {
		case '{':
			res := &OrderedMap{}
			if err := res.UnmarshalJSON(raw); err != nil {
				return nil, err
			}
			return res, nil
		case '[':
			var items []json.RawMessage
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, err
			}
			res := make([]any, len(items))
			for i, item := range items {
				value, err := decodeJSONValue(item)
				if err != nil {
					return nil, err
				}
				res[i] = value
			}
			return res, nil
		}
	}

	var res any
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// MarshalYAML emits a mapping node with keys in insertion order.
func (m *OrderedMap) MarshalYAML() (any, error) {
	return m.pairs.MarshalYAML()
}

// UnmarshalYAML reads a YAML mapping keeping the document key order, nested mappings included.
// As YAML is a superset of JSON, this also reads JSON documents with integral numbers as int.
func (m *OrderedMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode {
		value = value.Alias
	}
	if value.Kind != yaml.MappingNode {
		return ErrNotObject
	}

	raw := orderedmap.New[string, yaml.Node]()
	if err := value.Decode(raw); err != nil {
		return err
	}

	res := NewOrderedMap(raw.Len())
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		node := pair.Value
		item, err := decodeYAMLValue(&node)
		if err != nil {
			return err
		}
		res.Set(pair.Key, item)
	}
	*m = *res
	return nil
}

func decodeYAMLValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return decodeYAMLValue(node.Alias)
	case yaml.MappingNode:
		res := &OrderedMap{}
		if err := res.UnmarshalYAML(node); err != nil {
			return nil, err
		}
		return res, nil
	case yaml.SequenceNode:
		res := make([]any, len(node.Content))
		for i, item := range node.Content {
			value, err := decodeYAMLValue(item)
			if err != nil {
				return nil, err
			}
			res[i] = value
		}
		return res, nil
	}

	var res any
	if err := node.Decode(&res); err != nil {
		return nil, err
	}
	return res, nil
}
