package mocker

import (
	"github.com/cubahno/schemock/internal/types"
)

type absent struct{}

func (absent) String() string { return "<absent>" }

// MarshalJSON keeps an uncleaned Absent serializable.
func (absent) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Absent marks a value that should not appear in the output at all.
// Objects drop members holding it, arrays turn it into null.
var Absent any = absent{}

// IsAbsent reports whether the value is the Absent marker.
func IsAbsent(value any) bool {
	_, ok := value.(absent)
	return ok
}

// Merge deep-merges the overlay into the generated value and returns the result.
//
// When both sides are maps, overlay keys are merged recursively and new keys are appended.
// Absent overlay values keep whatever was generated. Any other overlay value,
// arrays included, replaces the generated one. The overlay is copied, never aliased.
func Merge(generated, overlay any) any {
	if IsAbsent(overlay) {
		return generated
	}
	if !types.IsMap(generated) || !types.IsMap(overlay) {
		return types.Normalize(overlay)
	}

	res := asOrderedMap(generated)
	src := asOrderedMap(overlay)

	for _, key := range src.Keys() {
		value, _ := src.Get(key)
		if IsAbsent(value) {
			continue
		}

		if current, exists := res.Get(key); exists && types.IsMap(current) && types.IsMap(value) {
			res.Set(key, Merge(current, value))
			continue
		}
		res.Set(key, types.Normalize(value))
	}

	return res
}

func asOrderedMap(value any) *types.OrderedMap {
	switch v := value.(type) {
	case *types.OrderedMap:
		return v
	case map[string]any:
		return types.OrderedMapFrom(v)
	}
	return types.NewOrderedMap(0)
}

// Clean removes Absent members from objects at any depth and turns Absent array items into nil.
// A top-level Absent becomes nil. Maps are modified in place.
func Clean(value any) any {
	switch v := value.(type) {
	case *types.OrderedMap:
		for _, key := range v.Keys() {
			item, _ := v.Get(key)
			if IsAbsent(item) {
				v.Delete(key)
				continue
			}
			v.Set(key, Clean(item))
		}
		return v
	case map[string]any:
		for key, item := range v {
			if IsAbsent(item) {
				delete(v, key)
				continue
			}
			v[key] = Clean(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = Clean(item)
		}
		return v
	}

	if IsAbsent(value) {
		return nil
	}
	return value
}
