package types

import (
	"fmt"
	"strings"
)

// IsMap checks if the value is a mapping-like value: a plain map or an OrderedMap.
// nil maps do not count.
func IsMap(value any) bool {
	switch v := value.(type) {
	case *OrderedMap:
		return v != nil
	case map[string]any:
		return v != nil
	}
	return false
}

// GetValueByDottedPath returns the value at the dotted path, or nil when any segment is missing.
func GetValueByDottedPath(data any, path string) any {
	value, _ := LookupDottedPath(data, path)
	return value
}

// LookupDottedPath is like GetValueByDottedPath but also reports whether the final key exists.
// It distinguishes a present nil from a missing key.
func LookupDottedPath(data any, path string) (any, bool) {
	current := data
	for _, key := range strings.Split(path, ".") {
		switch m := current.(type) {
		case *OrderedMap:
			v, ok := m.Get(key)
			if !ok {
				return nil, false
			}
			current = v
		case map[string]any:
			v, ok := m[key]
			if !ok {
				return nil, false
			}
			current = v
		default:
			return nil, false
		}
	}
	return current, true
}

// SetValueByDottedPath sets the value at the dotted path, creating intermediate maps as needed.
func SetValueByDottedPath(data *OrderedMap, path string, value any) error {
	keys := strings.Split(path, ".")
	current := data

	for i, key := range keys {
		if i == len(keys)-1 {
			current.Set(key, value)
			break
		}

		existing, ok := current.Get(key)
		if !ok {
			next := NewOrderedMap(1)
			current.Set(key, next)
			current = next
			continue
		}

		next, isMap := existing.(*OrderedMap)
		if !isMap {
			return fmt.Errorf("invalid path %q: %q is not an object", path, key)
		}
		current = next
	}
	return nil
}
