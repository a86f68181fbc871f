package mocker

import (
	"errors"
	"testing"

	"github.com/cubahno/schemock/pkg/schema"
	assert2 "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overridesSchema() *schema.Node {
	return schema.Object(
		schema.F("name", schema.String()),
		schema.F("nick", schema.String().Nullable().Optional()),
		schema.F("age", schema.Int().Nullable()),
		schema.F("address", schema.Object(
			schema.F("city", schema.String().Optional()),
			schema.F("zip", schema.String().Nullable()),
		)),
	)
}

func TestOverrideConflicts(t *testing.T) {
	type setter func(m *Mocker, paths ...string) (*Mocker, error)

	setters := map[OverrideKind]setter{
		OverrideNull:      (*Mocker).SetNulls,
		OverrideNotNull:   (*Mocker).SetNotNulls,
		OverrideUndefined: (*Mocker).SetUndefined,
		OverrideDefined:   (*Mocker).SetDefined,
	}

	tests := []struct {
		first, second OverrideKind
		conflict      bool
	}{
		{OverrideNull, OverrideNotNull, true},
		{OverrideNotNull, OverrideNull, true},
		{OverrideNull, OverrideUndefined, true},
		{OverrideUndefined, OverrideNull, true},
		{OverrideNotNull, OverrideUndefined, true},
		{OverrideUndefined, OverrideNotNull, true},
		{OverrideDefined, OverrideUndefined, true},
		{OverrideUndefined, OverrideDefined, true},
		{OverrideNull, OverrideDefined, false},
		{OverrideDefined, OverrideNull, false},
		{OverrideNotNull, OverrideDefined, false},
		{OverrideDefined, OverrideNotNull, false},
	}

	for _, tc := range tests {
		t.Run(tc.first.String()+" then "+tc.second.String(), func(t *testing.T) {
			assert := assert2.New(t)
			m := newTestMocker(t, overridesSchema())

			_, err := setters[tc.first](m, "age", "name")
			require.NoError(t, err)

			res, err := setters[tc.second](m, "age", "nick")
			assert.Same(m, res)

			if !tc.conflict {
				assert.NoError(err)
				return
			}

			assert.ErrorIs(err, ErrPathConflict)
			var conflictErr *PathConflictError
			require.True(t, errors.As(err, &conflictErr))
			assert.Equal(tc.second, conflictErr.Kind)
			assert.Equal(tc.first, conflictErr.Conflict)
			assert.Equal([]string{"age"}, conflictErr.Paths)

			// failed call leaves the previous state
			current := m.Overrides()
			assert.Equal([]string{"age", "name"}, pathsOf(current, tc.first))
			assert.Empty(pathsOf(current, tc.second))
		})
	}
}

func pathsOf(o Overrides, kind OverrideKind) []string {
	switch kind {
	case OverrideNull:
		return o.Nulls
	case OverrideNotNull:
		return o.NotNulls
	case OverrideUndefined:
		return o.Undefined
	}
	return o.Defined
}

func TestOverrideSetters(t *testing.T) {
	assert := assert2.New(t)

	t.Run("setting replaces the whole set", func(t *testing.T) {
		m := newTestMocker(t, overridesSchema())
		_, err := m.SetNulls("age", "nick")
		require.NoError(t, err)
		_, err = m.SetNulls("address.zip")
		require.NoError(t, err)

		assert.Equal([]string{"address.zip"}, m.Overrides().Nulls)
	})

	t.Run("replaced set no longer conflicts", func(t *testing.T) {
		m := newTestMocker(t, overridesSchema())
		_, err := m.SetNulls("age")
		require.NoError(t, err)
		_, err = m.SetNulls()
		require.NoError(t, err)
		_, err = m.SetNotNulls("age")
		assert.NoError(err)
	})

	t.Run("error message names the fields", func(t *testing.T) {
		m := newTestMocker(t, overridesSchema())
		_, err := m.SetUndefined("nick", "age")
		require.NoError(t, err)
		_, err = m.SetNulls("age", "nick")
		assert.EqualError(err, "cannot set null for fields [age, nick]: already set to undefined")
	})

	t.Run("apply is all or nothing", func(t *testing.T) {
		m := newTestMocker(t, overridesSchema())
		_, err := m.SetNulls("age")
		require.NoError(t, err)

		_, err = m.Apply(Overrides{Undefined: []string{"nick"}, Defined: []string{"nick"}})
		assert.ErrorIs(err, ErrPathConflict)
		assert.Equal([]string{"age"}, m.Overrides().Nulls)

		_, err = m.Apply(Overrides{NotNulls: []string{"age"}, Defined: []string{"nick"}})
		require.NoError(t, err)
		assert.Empty(m.Overrides().Nulls)
		assert.Equal([]string{"age"}, m.Overrides().NotNulls)
	})
}

func TestOverrideGeneration(t *testing.T) {
	assert := assert2.New(t)

	t.Run("forced null on non nullable field", func(t *testing.T) {
		m := newTestMocker(t, overridesSchema(), withChances(0, 0, 0))
		_, err := m.SetNulls("name", "address.zip")
		require.NoError(t, err)

		for i := 0; i < 20; i++ {
			obj := mustObject(t, mustMock(t, m))
			name, ok := obj.Get("name")
			assert.True(ok)
			assert.Nil(name)

			address := mustObject(t, field(t, obj, "address"))
			zip, ok := address.Get("zip")
			assert.True(ok)
			assert.Nil(zip)
		}
	})

	t.Run("forced not null beats null chance", func(t *testing.T) {
		m := newTestMocker(t, overridesSchema(), withChances(1, 1, 0))
		_, err := m.SetNotNulls("age", "nick")
		require.NoError(t, err)

		for i := 0; i < 20; i++ {
			obj := mustObject(t, mustMock(t, m))
			age, _ := obj.Get("age")
			assert.IsType(0, age)

			// nick stays optional, so it is absent rather than null
			assert.False(obj.Has("nick"))
		}
	})

	t.Run("forced undefined removes the key", func(t *testing.T) {
		m := newTestMocker(t, overridesSchema(), withChances(0, 0, 0))
		_, err := m.SetUndefined("name", "address.city")
		require.NoError(t, err)

		for i := 0; i < 20; i++ {
			obj := mustObject(t, mustMock(t, m))
			assert.False(obj.Has("name"))
			assert.True(obj.Has("nick"))
			assert.False(mustObject(t, field(t, obj, "address")).Has("city"))
		}
	})

	t.Run("forced defined keeps the key", func(t *testing.T) {
		m := newTestMocker(t, overridesSchema(), withChances(0, 1, 0))
		_, err := m.SetDefined("nick", "address.city")
		require.NoError(t, err)

		for i := 0; i < 20; i++ {
			obj := mustObject(t, mustMock(t, m))
			assert.True(obj.Has("nick"))
			assert.True(mustObject(t, field(t, obj, "address")).Has("city"))
		}
	})

	t.Run("null takes precedence over defined", func(t *testing.T) {
		m := newTestMocker(t, overridesSchema(), withChances(0, 1, 0))
		_, err := m.Apply(Overrides{Nulls: []string{"nick"}, Defined: []string{"nick"}})
		require.NoError(t, err)

		obj := mustObject(t, mustMock(t, m))
		nick, ok := obj.Get("nick")
		assert.True(ok)
		assert.Nil(nick)
	})

	t.Run("not null and defined together", func(t *testing.T) {
		m := newTestMocker(t, overridesSchema(), withChances(1, 1, 0))
		_, err := m.Apply(Overrides{NotNulls: []string{"nick"}, Defined: []string{"nick"}})
		require.NoError(t, err)

		for i := 0; i < 20; i++ {
			obj := mustObject(t, mustMock(t, m))
			nick, ok := obj.Get("nick")
			assert.True(ok)
			assert.IsType("", nick)
		}
	})

	t.Run("paths apply to every array element", func(t *testing.T) {
		node := schema.Object(
			schema.F("items", schema.Array(schema.Object(
				schema.F("id", schema.Int()),
				schema.F("label", schema.String()),
			))),
		)
		m := newTestMocker(t, node)
		_, err := m.SetNulls("items.label")
		require.NoError(t, err)

		items := field(t, mustObject(t, mustMock(t, m)), "items").([]any)
		require.NotEmpty(t, items)
		for _, item := range items {
			label, ok := mustObject(t, item).Get("label")
			assert.True(ok)
			assert.Nil(label)
		}
	})
}
