package mocker

import (
	"github.com/cubahno/schemock/internal/types"
	"github.com/cubahno/schemock/pkg/schema"
)

// generateModifier resolves wrapper nodes.
// Optional may yield Absent, nullable may yield nil and default may yield its default value,
// each with the configured probability. Otherwise the inner node is generated.
func (m *Mocker) generateModifier(node *schema.Node, state *GenerateState) (any, error) {
	switch node.Kind() {
	case schema.KindOptional:
		if m.chance(m.cfg.UndefinedChance) {
			return Absent, nil
		}
	case schema.KindNullable:
		if m.chance(m.cfg.NullChance) {
			return nil, nil
		}
	case schema.KindDefault:
		if m.chance(m.cfg.DefaultChance) {
			return types.Normalize(node.DefaultValue()), nil
		}
	}

	return m.generate(node.Unwrap(), state)
}
