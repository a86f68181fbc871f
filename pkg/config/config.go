// Package config loads schemock settings from YAML with environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cubahno/schemock/internal/logging"
	"github.com/cubahno/schemock/internal/types"
	"github.com/cubahno/schemock/pkg/mocker"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
)

// EnvPrefix prefixes environment variables that override config keys.
// mock.nullChance is overridden by SCHEMOCK_MOCK_NULL_CHANCE.
const EnvPrefix = "SCHEMOCK_"

// Config is the main configuration struct.
// Mock holds generation settings.
// Overrides lists forced null / not null / undefined / defined field paths.
// Supply is merged into every generated value.
// App configures the HTTP service and Log the logger.
type Config struct {
	Mock      *MockConfig      `koanf:"mock" yaml:"mock"`
	Overrides mocker.Overrides `koanf:"overrides" yaml:"overrides"`
	Supply    map[string]any   `koanf:"supply" yaml:"supply"`
	App       *AppConfig       `koanf:"app" yaml:"app"`
	Log       *LogConfig       `koanf:"log" yaml:"log"`
}

// MockConfig mirrors mocker.Config in file form.
// Chances accept fractions (0.3) or percentages ("30%").
// ReferenceTime is an RFC 3339 timestamp.
type MockConfig struct {
	Seed            *int64         `koanf:"seed" yaml:"seed"`
	NullChance      float64        `koanf:"nullChance" yaml:"nullChance"`
	UndefinedChance float64        `koanf:"undefinedChance" yaml:"undefinedChance"`
	DefaultChance   float64        `koanf:"defaultChance" yaml:"defaultChance"`
	Lengths         mocker.Lengths `koanf:"lengths" yaml:"lengths"`
	ReferenceTime   string         `koanf:"referenceTime" yaml:"referenceTime"`
}

// optionalKeys have no default but can still be set from the environment.
var optionalKeys = []string{"mock.seed", "mock.referenceTime"}

// NewDefaultConfig creates the config used when no file is given.
func NewDefaultConfig() *Config {
	d := mocker.DefaultConfig()
	return &Config{
		Mock: &MockConfig{
			NullChance:      d.NullChance,
			UndefinedChance: d.UndefinedChance,
			DefaultChance:   d.DefaultChance,
			Lengths:         d.Lengths,
		},
		App: NewDefaultAppConfig(),
		Log: &LogConfig{Level: "info", Format: "text"},
	}
}

// defaultValues flattens the default config into koanf keys.
func defaultValues() map[string]any {
	cfg := NewDefaultConfig()
	return map[string]any{
		"mock.nullChance":         cfg.Mock.NullChance,
		"mock.undefinedChance":    cfg.Mock.UndefinedChance,
		"mock.defaultChance":      cfg.Mock.DefaultChance,
		"mock.lengths.string.min": cfg.Mock.Lengths.String.Min,
		"mock.lengths.string.max": cfg.Mock.Lengths.String.Max,
		"mock.lengths.array.min":  cfg.Mock.Lengths.Array.Min,
		"mock.lengths.array.max":  cfg.Mock.Lengths.Array.Max,
		"mock.lengths.map.min":    cfg.Mock.Lengths.Map.Min,
		"mock.lengths.map.max":    cfg.Mock.Lengths.Map.Max,
		"app.title":               cfg.App.Title,
		"app.port":                cfg.App.Port,
		"app.maxCount":            cfg.App.MaxCount,
		"app.readTimeout":         cfg.App.ReadTimeout,
		"app.writeTimeout":        cfg.App.WriteTimeout,
		"log.level":               cfg.Log.Level,
		"log.format":              cfg.Log.Format,
	}
}

// NewConfigFromFile reads a YAML config file.
func NewConfigFromFile(filePath string) (*Config, error) {
	return load(file.Provider(filePath))
}

// NewConfigFromContent reads YAML config content.
func NewConfigFromContent(content []byte) (*Config, error) {
	return load(rawbytes.Provider(content))
}

func load(provider koanf.Provider) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		return nil, err
	}
	if err := k.Load(provider, yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	transformed, err := transformConfig(k)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := transformed.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	slog.Debug("config loaded", "keys", len(transformed.Keys()))
	return cfg, nil
}

// transformConfig applies environment overrides and converts percent chances to fractions.
func transformConfig(k *koanf.Koanf) (*koanf.Koanf, error) {
	values := k.All()
	for _, key := range optionalKeys {
		if _, exists := values[key]; !exists {
			values[key] = nil
		}
	}

	// Nested keys go first so that a scalar colliding with a section is reported
	// instead of silently replacing it.
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	transformed := koanf.NewWithConf(koanf.Conf{Delim: ".", StrictMerge: true})
	for _, key := range keys {
		finalValue := values[key]
		if envValue, exists := os.LookupEnv(envKey(key)); exists {
			finalValue = envValue
		}
		if finalValue == nil {
			continue
		}

		if v, isString := finalValue.(string); isString && strings.HasSuffix(key, "Chance") {
			chance, err := parseChance(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			finalValue = chance
		}

		if err := transformed.Set(key, finalValue); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
	}
	return transformed, nil
}

func envKey(key string) string {
	return EnvPrefix + strings.ToUpper(types.ToSnakeCase(key))
}

// parseChance reads "30%" as 0.3 and "0.3" as 0.3.
func parseChance(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if percent, found := strings.CutSuffix(value, "%"); found {
		n, err := strconv.ParseFloat(strings.TrimSpace(percent), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid percentage %q", value)
		}
		return n / 100, nil
	}

	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chance %q", value)
	}
	return n, nil
}

// ToMockerConfig converts the mock section into a validated mocker.Config.
func (c *Config) ToMockerConfig() (mocker.Config, error) {
	m := c.Mock
	if m == nil {
		m = NewDefaultConfig().Mock
	}

	res := mocker.Config{
		Seed:            m.Seed,
		NullChance:      m.NullChance,
		UndefinedChance: m.UndefinedChance,
		DefaultChance:   m.DefaultChance,
		Lengths:         m.Lengths,
		Generators:      mocker.DefaultGenerators(),
		Logger:          c.Logger(),
	}

	if m.ReferenceTime != "" {
		refTime, err := time.Parse(time.RFC3339, m.ReferenceTime)
		if err != nil {
			return mocker.Config{}, fmt.Errorf("%w: referenceTime: %v", mocker.ErrInvalidConfig, err)
		}
		res.ReferenceTime = refTime
	}

	if err := res.Validate(); err != nil {
		return mocker.Config{}, err
	}
	return res, nil
}

// Logger builds the logger described by the log section.
func (c *Config) Logger() *slog.Logger {
	l := c.Log
	if l == nil {
		l = NewDefaultConfig().Log
	}
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(l.Level),
		Format: logging.ParseFormat(l.Format),
	})
}
