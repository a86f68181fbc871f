package mocker

import (
	"encoding/json"
	"testing"

	"github.com/cubahno/schemock/internal/types"
	"github.com/google/go-cmp/cmp"
	assert2 "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	assert := assert2.New(t)

	generated := func() *types.OrderedMap {
		res := types.NewOrderedMap(3)
		res.Set("name", "gen")
		nested := types.NewOrderedMap(2)
		nested.Set("a", 1)
		nested.Set("b", "x")
		res.Set("nested", nested)
		res.Set("list", []any{1, 2, 3})
		return res
	}

	t.Run("nested maps merge", func(t *testing.T) {
		res := Merge(generated(), map[string]any{
			"nested": map[string]any{"a": 7, "c": true},
			"extra":  "new",
		})

		expected := map[string]any{
			"name":   "gen",
			"nested": map[string]any{"a": 7, "b": "x", "c": true},
			"list":   []any{1, 2, 3},
			"extra":  "new",
		}
		if diff := cmp.Diff(expected, types.Plain(res)); diff != "" {
			t.Errorf("unexpected merge result (-want +got):\n%s", diff)
		}

		obj := mustObject(t, res)
		assert.Equal([]string{"name", "nested", "list", "extra"}, obj.Keys())
		assert.Equal([]string{"a", "b", "c"}, mustObject(t, field(t, obj, "nested")).Keys())
	})

	t.Run("arrays and scalars replace", func(t *testing.T) {
		res := mustObject(t, Merge(generated(), map[string]any{
			"list":   []any{"only"},
			"nested": "flat",
		}))
		assert.Equal([]any{"only"}, field(t, res, "list"))
		assert.Equal("flat", field(t, res, "nested"))
	})

	t.Run("absent overlay keeps generated", func(t *testing.T) {
		res := mustObject(t, Merge(generated(), map[string]any{
			"name":    Absent,
			"missing": Absent,
		}))
		assert.Equal("gen", field(t, res, "name"))
		assert.False(res.Has("missing"))
	})

	t.Run("null overlay replaces", func(t *testing.T) {
		res := mustObject(t, Merge(generated(), map[string]any{"name": nil}))
		assert.Nil(field(t, res, "name"))
	})

	t.Run("overlay is not aliased", func(t *testing.T) {
		overlay := map[string]any{"nested": map[string]any{"deep": map[string]any{"k": 1}}}
		first := mustObject(t, Merge(generated(), overlay))
		deep := mustObject(t, field(t, mustObject(t, field(t, first, "nested")), "deep"))
		deep.Set("k", 2)

		assert.Equal(map[string]any{"k": 1}, overlay["nested"].(map[string]any)["deep"])
	})

	t.Run("non map generated", func(t *testing.T) {
		assert.Equal("overlay", Merge("generated", "overlay"))
		assert.Equal("generated", Merge("generated", Absent))

		res := Merge([]any{1}, map[string]any{"a": 1})
		assert.Equal(map[string]any{"a": 1}, types.Plain(res))
	})

	t.Run("ordered overlay keeps its order", func(t *testing.T) {
		overlay := types.NewOrderedMap(2)
		overlay.Set("y", 1)
		overlay.Set("x", 2)

		res := mustObject(t, Merge(types.NewOrderedMap(0), overlay))
		assert.Equal([]string{"y", "x"}, res.Keys())
	})
}

func TestClean(t *testing.T) {
	assert := assert2.New(t)

	t.Run("nested absent members", func(t *testing.T) {
		inner := types.NewOrderedMap(2)
		inner.Set("gone", Absent)
		inner.Set("kept", 1)

		plain := map[string]any{"gone": Absent, "kept": "x"}

		root := types.NewOrderedMap(4)
		root.Set("a", Absent)
		root.Set("inner", inner)
		root.Set("list", []any{Absent, inner, 2})
		root.Set("plain", plain)

		res := mustObject(t, Clean(root))

		bts, err := json.Marshal(res)
		require.NoError(t, err)
		assert.JSONEq(`{"inner":{"kept":1},"list":[null,{"kept":1},2],"plain":{"kept":"x"}}`, string(bts))
		assert.Equal([]string{"inner", "list", "plain"}, res.Keys())
	})

	t.Run("top level absent", func(t *testing.T) {
		assert.Nil(Clean(Absent))
	})

	t.Run("scalars pass through", func(t *testing.T) {
		assert.Equal(5, Clean(5))
		assert.Nil(Clean(nil))
	})
}

func TestAbsent(t *testing.T) {
	assert := assert2.New(t)

	assert.True(IsAbsent(Absent))
	assert.False(IsAbsent(nil))
	assert.False(IsAbsent(struct{}{}))
	assert.Equal("<absent>", Absent.(interface{ String() string }).String())

	bts, err := json.Marshal(Absent)
	assert.NoError(err)
	assert.Equal("null", string(bts))
}
