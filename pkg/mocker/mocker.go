// Package mocker generates random values that satisfy a schema.
//
// A Mocker holds a root schema, generation settings, a seeded random stream,
// field path overrides and an optional overlay merged into every result.
// Objects are produced as *types.OrderedMap so field order follows the schema.
// A Mocker is not safe for concurrent use.
package mocker

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/cubahno/schemock/internal/types"
	"github.com/cubahno/schemock/pkg/schema"
)

type Mocker struct {
	root       *schema.Node
	cfg        Config
	faker      *gofakeit.Faker
	generators *Registry
	logger     *slog.Logger
	refTime    time.Time
	overrides  overrideSets
	supplied   any
}

// New creates a Mocker for the root schema.
// Every custom generator tag used by the schema must be registered in cfg.Generators.
func New(root *schema.Node, cfg Config) (*Mocker, error) {
	if root == nil {
		return nil, ErrNilSchema
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	generators := cfg.Generators
	if generators == nil {
		generators = NewRegistry()
	}

	var missing []string
	for _, tag := range root.Tags() {
		if !generators.Has(tag) {
			missing = append(missing, tag)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGenerator, strings.Join(missing, ", "))
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	refTime := cfg.ReferenceTime
	if refTime.IsZero() {
		refTime = startOfDay(time.Now())
	}

	return &Mocker{
		root:       root,
		cfg:        cfg,
		faker:      newFaker(cfg.Seed),
		generators: generators,
		logger:     logger,
		refTime:    refTime.UTC(),
		overrides:  newOverrideSets(),
	}, nil
}

// newFaker returns a seeded random handle, or one seeded from the ambient source when seed is nil.
func newFaker(seed *int64) *gofakeit.Faker {
	if seed == nil {
		return gofakeit.New(0)
	}
	return gofakeit.NewCustom(rand.NewSource(*seed).(rand.Source64))
}

// Reseed restarts the random stream from the seed.
func (m *Mocker) Reseed(seed int64) *Mocker {
	m.faker = newFaker(&seed)
	return m
}

// Supply sets the overlay merged into every generated value. Nil removes it.
// Maps may be map[string]any or *types.OrderedMap; the overlay is copied.
func (m *Mocker) Supply(overlay any) *Mocker {
	m.supplied = types.Normalize(overlay)
	return m
}

// Schema returns the root schema.
func (m *Mocker) Schema() *schema.Node {
	return m.root
}

// Mock generates one value.
func (m *Mocker) Mock() (any, error) {
	res, err := m.generate(m.root, NewGenerateState())
	if err != nil {
		return nil, err
	}

	if m.supplied != nil {
		res = Merge(res, m.supplied)
	}

	return Clean(res), nil
}

// MockMany generates n independent values from the same stream.
func (m *Mocker) MockMany(n int) ([]any, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}

	res := make([]any, 0, n)
	for i := 0; i < n; i++ {
		value, err := m.Mock()
		if err != nil {
			return nil, err
		}
		res = append(res, value)
	}

	m.logger.Debug("generated values", "count", n, "schema", m.root.String())
	return res, nil
}

// MockAndValidate generates one value and checks it against the schema.
// The validation error is returned as is, together with the offending value.
func (m *Mocker) MockAndValidate() (any, error) {
	value, err := m.Mock()
	if err != nil {
		return nil, err
	}
	if err := m.root.Validate(value); err != nil {
		return value, err
	}
	return value, nil
}

// MockInto generates one value and decodes it into dst through JSON.
func (m *Mocker) MockInto(dst any) error {
	value, err := m.Mock()
	if err != nil {
		return err
	}

	bts, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding value: %w", err)
	}
	if err := json.Unmarshal(bts, dst); err != nil {
		return fmt.Errorf("decoding value: %w", err)
	}
	return nil
}
