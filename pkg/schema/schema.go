package schema

import (
	"fmt"
	"sort"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBoolean
	KindDateTime
	KindEmail
	KindURL
	KindUUID
	KindArray
	KindObject
	KindMap
	KindEnum
	KindLiteral
	KindUnion
	KindOptional
	KindNullable
	KindDefault
	KindReadOnly
	KindBinary
)

var kindNames = map[Kind]string{
	KindAny:      "any",
	KindString:   "string",
	KindInteger:  "integer",
	KindFloat:    "float",
	KindBoolean:  "boolean",
	KindDateTime: "date-time",
	KindEmail:    "email",
	KindURL:      "url",
	KindUUID:     "uuid",
	KindArray:    "array",
	KindObject:   "object",
	KindMap:      "map",
	KindEnum:     "enum",
	KindLiteral:  "literal",
	KindUnion:    "union",
	KindOptional: "optional",
	KindNullable: "nullable",
	KindDefault:  "default",
	KindReadOnly: "readonly",
	KindBinary:   "binary",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsWrapper reports whether the kind wraps exactly one inner node.
func (k Kind) IsWrapper() bool {
	switch k {
	case KindOptional, KindNullable, KindDefault, KindReadOnly:
		return true
	}
	return false
}

// Field is a named object member. Objects keep their fields in declaration order.
type Field struct {
	Name string
	Node *Node
}

// F is a shorthand for building a Field.
func F(name string, node *Node) Field {
	return Field{Name: name, Node: node}
}

// Node describes the shape and constraints of an expected value.
// Nodes are immutable: every modifier returns a new Node.
// A schema graph must be finite and acyclic.
type Node struct {
	kind Kind
	tag  string

	minLength *int
	maxLength *int
	minimum   *float64
	maximum   *float64

	elem     *Node
	fields   []Field
	key      *Node
	value    *Node
	options  []any
	literal  any
	variants []*Node

	inner        *Node
	defaultValue any
}

func newNode(kind Kind) *Node {
	return &Node{kind: kind}
}

func String() *Node   { return newNode(KindString) }
func Int() *Node      { return newNode(KindInteger) }
func Float() *Node    { return newNode(KindFloat) }
func Bool() *Node     { return newNode(KindBoolean) }
func DateTime() *Node { return newNode(KindDateTime) }
func Email() *Node    { return newNode(KindEmail) }
func URL() *Node      { return newNode(KindURL) }
func UUID() *Node     { return newNode(KindUUID) }
func Any() *Node      { return newNode(KindAny) }
func Binary() *Node   { return newNode(KindBinary) }

// Array describes a list of elem values.
func Array(elem *Node) *Node {
	n := newNode(KindArray)
	n.elem = elem
	return n
}

// Object describes a record with the given fields, in the given order.
func Object(fields ...Field) *Node {
	n := newNode(KindObject)
	n.fields = append([]Field(nil), fields...)
	return n
}

// Map describes a dictionary with keys of kind key and values of kind value.
func Map(key, value *Node) *Node {
	n := newNode(KindMap)
	n.key = key
	n.value = value
	return n
}

// Enum describes one of the given scalar options.
func Enum(options ...any) *Node {
	n := newNode(KindEnum)
	n.options = append([]any(nil), options...)
	return n
}

// Literal describes exactly one value.
func Literal(value any) *Node {
	n := newNode(KindLiteral)
	n.literal = value
	return n
}

// Union describes a value matching any of the variants.
func Union(variants ...*Node) *Node {
	n := newNode(KindUnion)
	n.variants = append([]*Node(nil), variants...)
	return n
}

func (n *Node) wrap(kind Kind) *Node {
	w := newNode(kind)
	w.inner = n
	return w
}

// Optional wraps n so that the value may be absent.
func (n *Node) Optional() *Node { return n.wrap(KindOptional) }

// Nullable wraps n so that the value may be null.
func (n *Node) Nullable() *Node { return n.wrap(KindNullable) }

// ReadOnly wraps n. It does not change the generated value.
func (n *Node) ReadOnly() *Node { return n.wrap(KindReadOnly) }

// Default wraps n with a fallback value.
func (n *Node) Default(value any) *Node {
	w := n.wrap(KindDefault)
	w.defaultValue = value
	return w
}

func (n *Node) clone() *Node {
	c := *n
	return &c
}

// Meta attaches a custom generator tag.
func (n *Node) Meta(tag string) *Node {
	c := n.clone()
	c.tag = tag
	return c
}

// Min sets the lower bound: length for strings, value for numbers.
// On a wrapper the bound goes to the wrapped node.
func (n *Node) Min(v float64) *Node {
	c := n.clone()
	if c.kind.IsWrapper() {
		c.inner = n.inner.Min(v)
		return c
	}
	if c.kind == KindString {
		l := int(v)
		c.minLength = &l
	} else {
		c.minimum = &v
	}
	return c
}

// Max sets the upper bound: length for strings, value for numbers.
// On a wrapper the bound goes to the wrapped node.
func (n *Node) Max(v float64) *Node {
	c := n.clone()
	if c.kind.IsWrapper() {
		c.inner = n.inner.Max(v)
		return c
	}
	if c.kind == KindString {
		l := int(v)
		c.maxLength = &l
	} else {
		c.maximum = &v
	}
	return c
}

// Len sets both string length bounds.
func (n *Node) Len(v int) *Node {
	return n.Min(float64(v)).Max(float64(v))
}

func (n *Node) Kind() Kind          { return n.kind }
func (n *Node) Tag() string         { return n.tag }
func (n *Node) MinLength() *int     { return n.minLength }
func (n *Node) MaxLength() *int     { return n.maxLength }
func (n *Node) Minimum() *float64   { return n.minimum }
func (n *Node) Maximum() *float64   { return n.maximum }
func (n *Node) Elem() *Node         { return n.elem }
func (n *Node) Fields() []Field     { return n.fields }
func (n *Node) Key() *Node          { return n.key }
func (n *Node) Value() *Node        { return n.value }
func (n *Node) Options() []any      { return n.options }
func (n *Node) Literal() any        { return n.literal }
func (n *Node) Variants() []*Node   { return n.variants }
func (n *Node) Unwrap() *Node       { return n.inner }
func (n *Node) DefaultValue() any   { return n.defaultValue }
func (n *Node) IsOptional() bool    { return n.kind == KindOptional }
func (n *Node) IsNullable() bool    { return n.kind == KindNullable }

// Without removes the outermost wrapper layer of the given kind from the chain of
// leading wrappers, keeping the others in place. Tagged wrappers are left untouched.
func (n *Node) Without(kind Kind) *Node {
	if n == nil || !n.kind.IsWrapper() || n.tag != "" {
		return n
	}
	if n.kind == kind {
		return n.inner
	}
	c := n.clone()
	c.inner = n.inner.Without(kind)
	return c
}

// Field returns the member node by name.
func (n *Node) Field(name string) (*Node, bool) {
	for _, f := range n.fields {
		if f.Name == name {
			return f.Node, true
		}
	}
	return nil, false
}

// Tags returns all custom generator tags referenced anywhere in the graph, sorted.
func (n *Node) Tags() []string {
	seen := make(map[string]bool)
	n.Walk(func(node *Node) {
		if node.tag != "" {
			seen[node.tag] = true
		}
	})

	res := make([]string, 0, len(seen))
	for tag := range seen {
		res = append(res, tag)
	}
	sort.Strings(res)
	return res
}

// Walk calls fn for n and every node reachable from it, depth first.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)

	n.elem.Walk(fn)
	for _, f := range n.fields {
		f.Node.Walk(fn)
	}
	n.key.Walk(fn)
	n.value.Walk(fn)
	for _, v := range n.variants {
		v.Walk(fn)
	}
	n.inner.Walk(fn)
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.kind {
	case KindArray:
		return fmt.Sprintf("array(%s)", n.elem)
	case KindMap:
		return fmt.Sprintf("map(%s, %s)", n.key, n.value)
	case KindObject:
		return fmt.Sprintf("object(%d fields)", len(n.fields))
	case KindUnion:
		return fmt.Sprintf("union(%d variants)", len(n.variants))
	}
	if n.kind.IsWrapper() {
		return fmt.Sprintf("%s(%s)", n.kind, n.inner)
	}
	return n.kind.String()
}
