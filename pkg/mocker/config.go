package mocker

import (
	"fmt"
	"log/slog"
	"time"
)

// Range is an inclusive length range.
type Range struct {
	Min int `json:"min" koanf:"min"`
	Max int `json:"max" koanf:"max"`
}

// Lengths holds the default length ranges per container kind.
// String is also used for keys of non-enum maps.
type Lengths struct {
	String Range `json:"string" koanf:"string"`
	Array  Range `json:"array" koanf:"array"`
	Map    Range `json:"map" koanf:"map"`
}

// Config configures a Mocker.
//
// Seed makes generation reproducible; without it an ambient random stream is used.
// NullChance, UndefinedChance and DefaultChance are the probabilities, in [0, 1],
// that a nullable, optional or defaulted node resolves to null, absent or its default.
// Generators resolves custom generator tags attached to schema nodes.
// ReferenceTime anchors generated timestamps; zero means today at midnight UTC.
// Logger defaults to slog.Default().
//
// A zero Config is valid but generates empty strings and containers,
// start from DefaultConfig instead.
type Config struct {
	Seed            *int64
	NullChance      float64
	UndefinedChance float64
	DefaultChance   float64
	Lengths         Lengths
	Generators      *Registry
	ReferenceTime   time.Time
	Logger          *slog.Logger
}

// DefaultConfig returns the configuration used when nothing else is specified.
func DefaultConfig() Config {
	return Config{
		NullChance:      0.3,
		UndefinedChance: 0.3,
		DefaultChance:   0.3,
		Lengths: Lengths{
			String: Range{Min: 5, Max: 20},
			Array:  Range{Min: 1, Max: 5},
			Map:    Range{Min: 1, Max: 5},
		},
	}
}

// WithSeed returns a copy of the config with the seed set.
func (c Config) WithSeed(seed int64) Config {
	c.Seed = &seed
	return c
}

// Validate checks the probabilities and length ranges.
func (c Config) Validate() error {
	chances := []struct {
		name  string
		value float64
	}{
		{"nullChance", c.NullChance},
		{"undefinedChance", c.UndefinedChance},
		{"defaultChance", c.DefaultChance},
	}
	for _, chance := range chances {
		// written as a negation so NaN fails too
		if !(chance.value >= 0 && chance.value <= 1) {
			return fmt.Errorf("%w: %s must be a number between 0 and 1, got %v", ErrInvalidConfig, chance.name, chance.value)
		}
	}

	ranges := []struct {
		name  string
		value Range
	}{
		{"lengths.string", c.Lengths.String},
		{"lengths.array", c.Lengths.Array},
		{"lengths.map", c.Lengths.Map},
	}
	for _, r := range ranges {
		if r.value.Min < 0 {
			return fmt.Errorf("%w: %s.min must not be negative, got %d", ErrInvalidConfig, r.name, r.value.Min)
		}
		if r.value.Min > r.value.Max {
			return fmt.Errorf("%w: %s.min %d is greater than max %d", ErrInvalidConfig, r.name, r.value.Min, r.value.Max)
		}
	}

	return nil
}
