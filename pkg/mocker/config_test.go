package mocker

import (
	"math"
	"testing"

	assert2 "github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	assert := assert2.New(t)

	cfg := DefaultConfig()
	assert.Nil(cfg.Seed)
	assert.Equal(0.3, cfg.NullChance)
	assert.Equal(0.3, cfg.UndefinedChance)
	assert.Equal(0.3, cfg.DefaultChance)
	assert.Equal(Range{Min: 5, Max: 20}, cfg.Lengths.String)
	assert.Equal(Range{Min: 1, Max: 5}, cfg.Lengths.Array)
	assert.Equal(Range{Min: 1, Max: 5}, cfg.Lengths.Map)
	assert.NoError(cfg.Validate())

	seeded := cfg.WithSeed(7)
	assert.Equal(int64(7), *seeded.Seed)
	assert.Nil(cfg.Seed)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"null chance above one", func(c *Config) { c.NullChance = 1.5 }},
		{"undefined chance negative", func(c *Config) { c.UndefinedChance = -0.1 }},
		{"default chance NaN", func(c *Config) { c.DefaultChance = math.NaN() }},
		{"negative min", func(c *Config) { c.Lengths.String.Min = -1 }},
		{"crossed array range", func(c *Config) { c.Lengths.Array = Range{Min: 3, Max: 2} }},
		{"crossed map range", func(c *Config) { c.Lengths.Map = Range{Min: 10, Max: 1} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			assert2.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	t.Run("boundaries are valid", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.NullChance = 0
		cfg.UndefinedChance = 1
		cfg.Lengths.String = Range{Min: 0, Max: 0}
		assert2.NoError(t, cfg.Validate())
	})

	t.Run("zero config is valid", func(t *testing.T) {
		assert2.NoError(t, Config{}.Validate())
	})
}
