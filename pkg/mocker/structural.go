package mocker

import (
	"strconv"

	"github.com/cubahno/schemock/internal/types"
	"github.com/cubahno/schemock/pkg/schema"
)

// generateArray fills an array with elements generated at the array's own path.
func (m *Mocker) generateArray(node *schema.Node, state *GenerateState) (any, error) {
	length := m.containerLength(m.cfg.Lengths.Array)

	res := make([]any, 0, length)
	for i := 0; i < length; i++ {
		item, err := m.generate(node.Elem(), state)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}

// generateObject builds the members in declaration order.
// Absent members are kept as Absent until the final cleanup.
func (m *Mocker) generateObject(node *schema.Node, state *GenerateState) (any, error) {
	fields := node.Fields()

	res := types.NewOrderedMap(len(fields))
	for _, field := range fields {
		fieldState := state.NewFrom().WithOptions(WithName(field.Name))

		value, err := m.generateField(field.Node, fieldState)
		if err != nil {
			return nil, err
		}
		res.Set(field.Name, value)
	}
	return res, nil
}

// generateMap produces one entry per option for enum keys.
// Other keys are random: alphanumeric for string keys, non-negative integers otherwise.
func (m *Mocker) generateMap(node *schema.Node, state *GenerateState) (any, error) {
	keyNode := node.Key()
	for keyNode != nil && keyNode.Kind() == schema.KindReadOnly {
		keyNode = keyNode.Unwrap()
	}

	var keys []string
	if keyNode != nil && keyNode.Kind() == schema.KindEnum {
		for _, option := range keyNode.Options() {
			keys = append(keys, types.ToString(option))
		}
	} else {
		count := m.containerLength(m.cfg.Lengths.Map)
		for i := 0; i < count; i++ {
			keys = append(keys, m.generateMapKey(keyNode))
		}
	}

	res := types.NewOrderedMap(len(keys))
	for _, key := range keys {
		value, err := m.generate(node.Value(), state)
		if err != nil {
			return nil, err
		}
		res.Set(key, value)
	}
	return res, nil
}

func (m *Mocker) generateMapKey(keyNode *schema.Node) string {
	if keyNode == nil || keyNode.Kind() == schema.KindString {
		return alphanumeric(m.faker, m.containerLength(m.cfg.Lengths.String))
	}
	return strconv.FormatInt(intBetween(m.faker, 0, maxSafeInteger), 10)
}

// generateUnion picks one variant uniformly and generates it at the union's path.
func (m *Mocker) generateUnion(node *schema.Node, state *GenerateState) (any, error) {
	variants := node.Variants()
	if len(variants) == 0 {
		return nil, nil
	}
	return m.generate(variants[m.faker.Rand.Intn(len(variants))], state)
}

func (m *Mocker) containerLength(r Range) int {
	return int(intBetween(m.faker, int64(r.Min), int64(r.Max)))
}
