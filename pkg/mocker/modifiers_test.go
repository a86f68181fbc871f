package mocker

import (
	"testing"

	"github.com/cubahno/schemock/internal/types"
	"github.com/cubahno/schemock/pkg/schema"
	assert2 "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateModifiers(t *testing.T) {
	node := schema.Object(
		schema.F("opt", schema.Int().Optional()),
		schema.F("null", schema.Int().Nullable()),
		schema.F("def", schema.Int().Default(-1)),
		schema.F("ro", schema.Int().ReadOnly()),
	)

	t.Run("probability one", func(t *testing.T) {
		assert := assert2.New(t)
		m := newTestMocker(t, node, withChances(1, 1, 1))

		for i := 0; i < 50; i++ {
			obj := mustObject(t, mustMock(t, m))
			assert.False(obj.Has("opt"))
			assert.Nil(field(t, obj, "null"))
			assert.Equal(-1, field(t, obj, "def"))
			assert.IsType(0, field(t, obj, "ro"))
		}
	})

	t.Run("probability zero", func(t *testing.T) {
		assert := assert2.New(t)
		m := newTestMocker(t, node, withChances(0, 0, 0))

		for i := 0; i < 50; i++ {
			obj := mustObject(t, mustMock(t, m))
			assert.IsType(0, field(t, obj, "opt"))
			assert.IsType(0, field(t, obj, "null"))
			assert.GreaterOrEqual(field(t, obj, "def"), 0)
		}
	})

	t.Run("mixed outcomes with default chances", func(t *testing.T) {
		assert := assert2.New(t)
		m := newTestMocker(t, node)

		var absent, present int
		for i := 0; i < 200; i++ {
			if mustObject(t, mustMock(t, m)).Has("opt") {
				present++
			} else {
				absent++
			}
		}
		assert.Positive(absent)
		assert.Positive(present)
	})

	t.Run("default values are copied", func(t *testing.T) {
		assert := assert2.New(t)
		def := map[string]any{"k": "v"}
		m := newTestMocker(t, schema.Map(schema.String(), schema.Int()).Default(def), withChances(0, 0, 1))

		first := mustObject(t, mustMock(t, m))
		first.Set("k", "changed")
		second := mustObject(t, mustMock(t, m))

		assert.Equal("v", field(t, second, "k"))
		assert.Equal(map[string]any{"k": "v"}, def)
		assert.IsType(&types.OrderedMap{}, second)
	})

	t.Run("optional root becomes nil when absent", func(t *testing.T) {
		m := newTestMocker(t, schema.String().Optional(), withChances(0, 1, 0))
		assert2.Nil(t, mustMock(t, m))

		value, err := m.MockAndValidate()
		assert2.NoError(t, err)
		assert2.Nil(t, value)
	})

	t.Run("absent array items stay valid", func(t *testing.T) {
		node := schema.Object(
			schema.F("tags", schema.Array(schema.String().Optional())),
			schema.F("picks", schema.Array(schema.Union(schema.Int().Optional(), schema.Bool()))),
		)
		m := newTestMocker(t, node, withChances(0, 0.5, 0), func(cfg *Config) {
			cfg.Lengths.Array = Range{Min: 5, Max: 5}
		})

		nulls := 0
		for i := 0; i < 20; i++ {
			value, err := m.MockAndValidate()
			require.NoError(t, err)

			for _, item := range field(t, mustObject(t, value), "tags").([]any) {
				if item == nil {
					nulls++
				}
			}
		}
		assert2.Positive(t, nulls)
	})

	t.Run("absent union variant on a field", func(t *testing.T) {
		node := schema.Object(schema.F("pick", schema.Union(schema.Int().Optional(), schema.Int().Optional())))
		m := newTestMocker(t, node, withChances(0, 1, 0))

		value, err := m.MockAndValidate()
		require.NoError(t, err)
		assert2.False(t, mustObject(t, value).Has("pick"))
	})
}
