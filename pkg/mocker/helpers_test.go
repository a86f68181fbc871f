package mocker

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cubahno/schemock/internal/types"
	"github.com/cubahno/schemock/pkg/schema"
	"github.com/stretchr/testify/require"
)

var testReferenceTime = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

// newTestMocker creates a seeded mocker with default settings adjusted by opts.
func newTestMocker(t *testing.T, node *schema.Node, opts ...func(*Config)) *Mocker {
	t.Helper()

	cfg := DefaultConfig().WithSeed(42)
	cfg.ReferenceTime = testReferenceTime
	cfg.Generators = DefaultGenerators()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, opt := range opts {
		opt(&cfg)
	}

	m, err := New(node, cfg)
	require.NoError(t, err)
	return m
}

func withChances(null, undefined, def float64) func(*Config) {
	return func(cfg *Config) {
		cfg.NullChance = null
		cfg.UndefinedChance = undefined
		cfg.DefaultChance = def
	}
}

func mustMock(t *testing.T, m *Mocker) any {
	t.Helper()
	res, err := m.Mock()
	require.NoError(t, err)
	return res
}

func mustObject(t *testing.T, value any) *types.OrderedMap {
	t.Helper()
	res, ok := value.(*types.OrderedMap)
	require.True(t, ok, "expected object, got %T", value)
	return res
}

func field(t *testing.T, obj *types.OrderedMap, key string) any {
	t.Helper()
	value, ok := obj.Get(key)
	require.True(t, ok, "missing key %q", key)
	return value
}
