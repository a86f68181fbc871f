package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// GeneratorExtension names the OpenAPI vendor extension holding a custom generator tag.
const GeneratorExtension = "x-generator"

var ErrUnsupportedSchema = errors.New("unsupported openapi schema")

// FromOpenAPI converts a kin-openapi schema into a Node.
// Properties are ordered by name since OpenAPI property maps carry no order.
func FromOpenAPI(src *openapi3.Schema) (*Node, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrUnsupportedSchema)
	}

	node, err := fromOpenAPIBase(src)
	if err != nil {
		return nil, err
	}

	if tag := extensionString(src.Extensions, GeneratorExtension); tag != "" {
		node = node.Meta(tag)
	}
	if src.Nullable {
		node = node.Nullable()
	}
	if src.Default != nil {
		node = node.Default(src.Default)
	}
	if src.ReadOnly {
		node = node.ReadOnly()
	}
	return node, nil
}

func fromOpenAPIBase(src *openapi3.Schema) (*Node, error) {
	if variants := firstNonEmptyRefs(src.OneOf, src.AnyOf); len(variants) > 0 {
		nodes := make([]*Node, 0, len(variants))
		for _, ref := range variants {
			if ref == nil || ref.Value == nil {
				continue
			}
			n, err := FromOpenAPI(ref.Value)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		}
		return Union(nodes...), nil
	}

	if len(src.Enum) == 1 {
		return Literal(src.Enum[0]), nil
	}
	if len(src.Enum) > 1 {
		return Enum(src.Enum...), nil
	}

	switch src.Type {
	case openapi3.TypeString:
		return fromOpenAPIString(src), nil
	case openapi3.TypeInteger:
		return withBounds(Int(), src), nil
	case openapi3.TypeNumber:
		return withBounds(Float(), src), nil
	case openapi3.TypeBoolean:
		return Bool(), nil
	case openapi3.TypeArray:
		if src.Items == nil || src.Items.Value == nil {
			return Array(Any()), nil
		}
		elem, err := FromOpenAPI(src.Items.Value)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		return Array(elem), nil
	case openapi3.TypeObject, "":
		if src.Type == "" && len(src.Properties) == 0 && src.AdditionalProperties.Schema == nil {
			return Any(), nil
		}
		return fromOpenAPIObject(src)
	}

	return nil, fmt.Errorf("%w: type %q", ErrUnsupportedSchema, src.Type)
}

func fromOpenAPIString(src *openapi3.Schema) *Node {
	switch src.Format {
	case "date-time", "datetime":
		return DateTime()
	case "email":
		return Email()
	case "uri", "url":
		return URL()
	case "uuid":
		return UUID()
	case "binary":
		return Binary()
	}

	n := String()
	if src.MinLength > 0 {
		l := int(src.MinLength)
		n.minLength = &l
	}
	if src.MaxLength != nil {
		l := int(*src.MaxLength)
		n.maxLength = &l
	}
	return n
}

func withBounds(n *Node, src *openapi3.Schema) *Node {
	n.minimum = src.Min
	n.maximum = src.Max
	return n
}

func fromOpenAPIObject(src *openapi3.Schema) (*Node, error) {
	if len(src.Properties) == 0 && src.AdditionalProperties.Schema != nil && src.AdditionalProperties.Schema.Value != nil {
		value, err := FromOpenAPI(src.AdditionalProperties.Schema.Value)
		if err != nil {
			return nil, fmt.Errorf("additionalProperties: %w", err)
		}
		return Map(String(), value), nil
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		ref := src.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		n, err := FromOpenAPI(ref.Value)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}
		if !required[name] {
			n = n.Optional()
		}
		fields = append(fields, F(name, n))
	}
	return Object(fields...), nil
}

func firstNonEmptyRefs(refs ...openapi3.SchemaRefs) openapi3.SchemaRefs {
	for _, r := range refs {
		if len(r) > 0 {
			return r
		}
	}
	return nil
}

func extensionString(extensions map[string]any, name string) string {
	raw, ok := extensions[name]
	if !ok {
		return ""
	}

	switch v := raw.(type) {
	case string:
		return v
	case json.RawMessage:
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	return ""
}

// OpenAPI converts the node into a kin-openapi schema used for validation.
// Custom generator tags are kept under the x-generator extension.
func (n *Node) OpenAPI() *openapi3.Schema {
	return n.toOpenAPI(false)
}

func (n *Node) toOpenAPI(nullable bool) *openapi3.Schema {
	s := n.toOpenAPIBase(nullable)
	if n.tag != "" {
		if s.Extensions == nil {
			s.Extensions = make(map[string]any)
		}
		s.Extensions[GeneratorExtension] = n.tag
	}
	return s
}

func (n *Node) toOpenAPIBase(nullable bool) *openapi3.Schema {
	s := openapi3.NewSchema()
	s.Nullable = nullable

	switch n.kind {
	case KindReadOnly:
		s = n.inner.toOpenAPI(nullable)
		s.ReadOnly = true
	case KindOptional:
		// Outside object fields an absent value is emitted as null.
		s = n.inner.toOpenAPI(true)
	case KindNullable:
		s = n.inner.toOpenAPI(true)
	case KindDefault:
		s = n.inner.toOpenAPI(nullable)
		s.Default = jsonValue(n.defaultValue)
		if n.defaultValue == nil {
			s.Nullable = true
		}

	case KindString:
		s.Type = openapi3.TypeString
		if n.minLength != nil && *n.minLength > 0 {
			s.MinLength = uint64(*n.minLength)
		}
		if n.maxLength != nil && *n.maxLength >= 0 {
			l := uint64(*n.maxLength)
			s.MaxLength = &l
		}
	case KindInteger:
		s.Type = openapi3.TypeInteger
		s.Min, s.Max = n.minimum, n.maximum
	case KindFloat:
		s.Type = openapi3.TypeNumber
		s.Min, s.Max = n.minimum, n.maximum
	case KindBoolean:
		s.Type = openapi3.TypeBoolean
	case KindDateTime:
		s.Type, s.Format = openapi3.TypeString, "date-time"
	case KindEmail:
		s.Type, s.Format = openapi3.TypeString, "email"
	case KindURL:
		s.Type, s.Format = openapi3.TypeString, "uri"
	case KindUUID:
		s.Type, s.Format = openapi3.TypeString, "uuid"
	case KindBinary:
		s.Type, s.Format = openapi3.TypeString, "binary"

	case KindEnum:
		s.Enum = jsonValues(n.options)
		if nullable {
			s.Enum = append(s.Enum, nil)
		}
	case KindLiteral:
		s.Enum = jsonValues([]any{n.literal})
		if nullable {
			s.Enum = append(s.Enum, nil)
		}

	case KindArray:
		s.Type = openapi3.TypeArray
		if n.elem != nil {
			s.Items = openapi3.NewSchemaRef("", n.elem.toOpenAPI(false))
		}
	case KindObject:
		s.Type = openapi3.TypeObject
		s.Properties = make(openapi3.Schemas, len(n.fields))
		for _, f := range n.fields {
			s.Properties[f.Name] = openapi3.NewSchemaRef("", f.Node.Without(KindOptional).toOpenAPI(false))
			if isRequired(f.Node) {
				s.Required = append(s.Required, f.Name)
			}
		}
	case KindMap:
		s.Type = openapi3.TypeObject
		if n.value != nil {
			s.AdditionalProperties = openapi3.AdditionalProperties{
				Schema: openapi3.NewSchemaRef("", n.value.toOpenAPI(false)),
			}
		}
	case KindUnion:
		// anyOf rather than oneOf: structurally similar variants may both match.
		// null never reaches anyOf, so a nullable variant makes the union nullable.
		for _, v := range n.variants {
			variant := v.toOpenAPI(nullable)
			s.Nullable = s.Nullable || variant.Nullable
			s.AnyOf = append(s.AnyOf, openapi3.NewSchemaRef("", variant))
		}
	}
	return s
}

// isRequired reports whether an object field must be present in a valid value.
func isRequired(n *Node) bool {
	for n != nil {
		switch n.kind {
		case KindOptional, KindDefault:
			return false
		case KindReadOnly, KindNullable:
			n = n.inner
		case KindUnion:
			for _, v := range n.variants {
				if !isRequired(v) {
					return false
				}
			}
			return true
		default:
			return true
		}
	}
	return true
}

// Validate checks value against the node using the kin-openapi validator.
// The validator error is returned as is.
func (n *Node) Validate(value any) error {
	return n.OpenAPI().VisitJSON(jsonValue(value), openapi3.MultiErrors())
}

// jsonValue normalizes a value tree to what encoding/json produces,
// which is the shape the validator understands.
func jsonValue(value any) any {
	switch v := value.(type) {
	case nil, string, bool, float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	}

	bts, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var res any
	if err := json.Unmarshal(bts, &res); err != nil {
		return value
	}
	return res
}

func jsonValues(values []any) []any {
	res := make([]any, len(values))
	for i, v := range values {
		res[i] = jsonValue(v)
	}
	return res
}
