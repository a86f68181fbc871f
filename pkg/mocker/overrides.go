package mocker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cubahno/schemock/pkg/schema"
)

// Overrides lists dotted field paths whose optional/nullable handling is forced.
type Overrides struct {
	Nulls     []string `json:"nulls,omitempty" koanf:"nulls"`
	NotNulls  []string `json:"notNulls,omitempty" koanf:"notNulls"`
	Undefined []string `json:"undefined,omitempty" koanf:"undefined"`
	Defined   []string `json:"defined,omitempty" koanf:"defined"`
}

// OverrideKind names one of the four override sets.
type OverrideKind int

const (
	OverrideNull OverrideKind = iota
	OverrideNotNull
	OverrideUndefined
	OverrideDefined
)

func (k OverrideKind) String() string {
	switch k {
	case OverrideNull:
		return "null"
	case OverrideNotNull:
		return "not null"
	case OverrideUndefined:
		return "undefined"
	case OverrideDefined:
		return "defined"
	}
	return fmt.Sprintf("override(%d)", int(k))
}

// overrideConflicts lists, per set, the sets it may not share a path with.
var overrideConflicts = map[OverrideKind][]OverrideKind{
	OverrideNull:      {OverrideNotNull, OverrideUndefined},
	OverrideNotNull:   {OverrideNull, OverrideUndefined},
	OverrideUndefined: {OverrideNull, OverrideNotNull, OverrideDefined},
	OverrideDefined:   {OverrideUndefined},
}

// PathConflictError is returned when a path would end up in two incompatible override sets.
type PathConflictError struct {
	Kind     OverrideKind
	Conflict OverrideKind
	Paths    []string
}

func (e *PathConflictError) Error() string {
	return fmt.Sprintf("cannot set %s for fields [%s]: already set to %s",
		e.Kind, strings.Join(e.Paths, ", "), e.Conflict)
}

func (e *PathConflictError) Unwrap() error {
	return ErrPathConflict
}

// PathSet is a set of dotted field paths.
type PathSet map[string]struct{}

func NewPathSet(paths ...string) PathSet {
	res := make(PathSet, len(paths))
	for _, p := range paths {
		res[p] = struct{}{}
	}
	return res
}

func (s PathSet) Has(path string) bool {
	_, ok := s[path]
	return ok
}

// Paths returns the set members, sorted.
func (s PathSet) Paths() []string {
	res := make([]string, 0, len(s))
	for p := range s {
		res = append(res, p)
	}
	sort.Strings(res)
	return res
}

// Intersect returns the paths present in both sets, sorted.
func (s PathSet) Intersect(other PathSet) []string {
	var res []string
	for p := range s {
		if other.Has(p) {
			res = append(res, p)
		}
	}
	sort.Strings(res)
	return res
}

type overrideSets [4]PathSet

func newOverrideSets() overrideSets {
	return overrideSets{NewPathSet(), NewPathSet(), NewPathSet(), NewPathSet()}
}

func (o overrideSets) get(kind OverrideKind) PathSet {
	return o[kind]
}

// check verifies that the set of the given kind does not collide with the others.
func (o overrideSets) check(kind OverrideKind) error {
	for _, other := range overrideConflicts[kind] {
		if common := o[kind].Intersect(o[other]); len(common) > 0 {
			return &PathConflictError{Kind: kind, Conflict: other, Paths: common}
		}
	}
	return nil
}

func (o overrideSets) toOverrides() Overrides {
	return Overrides{
		Nulls:     o[OverrideNull].Paths(),
		NotNulls:  o[OverrideNotNull].Paths(),
		Undefined: o[OverrideUndefined].Paths(),
		Defined:   o[OverrideDefined].Paths(),
	}
}

// SetNulls replaces the set of paths forced to null.
func (m *Mocker) SetNulls(paths ...string) (*Mocker, error) {
	return m.setOverride(OverrideNull, paths)
}

// SetNotNulls replaces the set of paths that never resolve to null.
func (m *Mocker) SetNotNulls(paths ...string) (*Mocker, error) {
	return m.setOverride(OverrideNotNull, paths)
}

// SetUndefined replaces the set of paths forced to be absent.
func (m *Mocker) SetUndefined(paths ...string) (*Mocker, error) {
	return m.setOverride(OverrideUndefined, paths)
}

// SetDefined replaces the set of paths that are always present.
func (m *Mocker) SetDefined(paths ...string) (*Mocker, error) {
	return m.setOverride(OverrideDefined, paths)
}

func (m *Mocker) setOverride(kind OverrideKind, paths []string) (*Mocker, error) {
	next := m.overrides
	next[kind] = NewPathSet(paths...)
	if err := next.check(kind); err != nil {
		return m, err
	}
	m.overrides = next
	return m, nil
}

// Apply replaces all four override sets at once.
// Nothing changes when any pair of sets conflicts.
func (m *Mocker) Apply(o Overrides) (*Mocker, error) {
	next := overrideSets{
		NewPathSet(o.Nulls...),
		NewPathSet(o.NotNulls...),
		NewPathSet(o.Undefined...),
		NewPathSet(o.Defined...),
	}
	for _, kind := range []OverrideKind{OverrideNull, OverrideNotNull, OverrideUndefined, OverrideDefined} {
		if err := next.check(kind); err != nil {
			return m, err
		}
	}
	m.overrides = next
	return m, nil
}

// Overrides returns the active override sets.
func (m *Mocker) Overrides() Overrides {
	return m.overrides.toOverrides()
}

// generateField resolves an object member, honoring the override sets.
// Precedence: null, not null, undefined, defined.
func (m *Mocker) generateField(node *schema.Node, state *GenerateState) (any, error) {
	path := state.Path()

	switch {
	case m.overrides.get(OverrideNull).Has(path):
		return nil, nil
	case m.overrides.get(OverrideNotNull).Has(path):
		return m.generate(node.Without(schema.KindNullable), state)
	case m.overrides.get(OverrideUndefined).Has(path):
		return Absent, nil
	case m.overrides.get(OverrideDefined).Has(path):
		return m.generate(node.Without(schema.KindOptional), state)
	}

	return m.generate(node, state)
}
