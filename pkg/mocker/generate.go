package mocker

import (
	"fmt"

	"github.com/cubahno/schemock/pkg/schema"
)

// generate produces a value for the node.
// Custom generator tags take precedence over the node kind.
func (m *Mocker) generate(node *schema.Node, state *GenerateState) (any, error) {
	if node == nil {
		return nil, nil
	}

	if tag := node.Tag(); tag != "" {
		fn, ok := m.generators.Get(tag)
		if !ok {
			return nil, fmt.Errorf("%w: %q at %q", ErrUnknownGenerator, tag, state.Path())
		}
		m.logger.Debug("using custom generator", "generator", tag, "path", state.Path())
		return fn(m.faker), nil
	}

	switch node.Kind() {
	case schema.KindString:
		return m.generateString(node), nil
	case schema.KindInteger:
		return m.generateInteger(node), nil
	case schema.KindFloat:
		return m.generateFloat(node), nil
	case schema.KindBoolean:
		return m.faker.Rand.Intn(2) == 1, nil
	case schema.KindDateTime:
		return m.generateDateTime(), nil
	case schema.KindEmail:
		return m.faker.Email(), nil
	case schema.KindURL:
		return m.faker.URL(), nil
	case schema.KindUUID:
		return m.generateUUID()
	case schema.KindEnum:
		return m.generateEnum(node), nil
	case schema.KindLiteral:
		return node.Literal(), nil

	case schema.KindArray:
		return m.generateArray(node, state)
	case schema.KindObject:
		return m.generateObject(node, state)
	case schema.KindMap:
		return m.generateMap(node, state)
	case schema.KindUnion:
		return m.generateUnion(node, state)

	case schema.KindOptional, schema.KindNullable, schema.KindDefault, schema.KindReadOnly:
		return m.generateModifier(node, state)
	}

	m.logger.Warn("unsupported schema kind", "kind", node.Kind().String(), "path", state.Path())
	return nil, nil
}
