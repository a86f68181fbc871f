package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cubahno/schemock/internal/types"
	"github.com/cubahno/schemock/pkg/mocker"
	"github.com/cubahno/schemock/pkg/schema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type generateOptions struct {
	schemaPath string
	configPath string
	supplyPath string
	count      int
	seed       int64
	seedSet    bool
	overrides  mocker.Overrides
	validate   bool
	format     string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate values for a schema file",
		Example: `  schemock generate --schema user.yaml --count 3 --seed 42
  schemock generate --schema user.yaml --null address.zip --undefined nickname --format yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.seedSet = cmd.Flags().Changed("seed")
			return runGenerate(opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.schemaPath, "schema", "s", "", "OpenAPI schema file, JSON or YAML")
	f.StringVarP(&opts.configPath, "config", "c", "", "config file")
	f.StringVar(&opts.supplyPath, "supply", "", "file with values merged into every result, JSON or YAML")
	f.IntVarP(&opts.count, "count", "n", 1, "number of values to generate")
	f.Int64Var(&opts.seed, "seed", 0, "seed for reproducible output")
	f.StringSliceVar(&opts.overrides.Nulls, "null", nil, "field paths forced to null")
	f.StringSliceVar(&opts.overrides.NotNulls, "not-null", nil, "field paths that are never null")
	f.StringSliceVar(&opts.overrides.Undefined, "undefined", nil, "field paths that are always absent")
	f.StringSliceVar(&opts.overrides.Defined, "defined", nil, "field paths that are always present")
	f.BoolVar(&opts.validate, "validate", false, "validate every value against the schema")
	f.StringVarP(&opts.format, "format", "f", "json", "output format: json or yaml")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runGenerate(opts *generateOptions, out io.Writer) error {
	if opts.format != "json" && opts.format != "yaml" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	mockCfg, err := cfg.ToMockerConfig()
	if err != nil {
		return err
	}
	if opts.seedSet {
		mockCfg = mockCfg.WithSeed(opts.seed)
	}

	node, err := schema.LoadFile(opts.schemaPath)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	m, err := mocker.New(node, mockCfg)
	if err != nil {
		return err
	}

	overrides := cfg.Overrides
	if hasOverrides(opts.overrides) {
		overrides = opts.overrides
	}
	if _, err := m.Apply(overrides); err != nil {
		return err
	}

	switch {
	case opts.supplyPath != "":
		overlay, err := readSupply(opts.supplyPath)
		if err != nil {
			return err
		}
		m.Supply(overlay)
	case len(cfg.Supply) > 0:
		m.Supply(cfg.Supply)
	}

	values, err := generateValues(m, opts.count, opts.validate)
	if err != nil {
		return err
	}

	var res any = values
	if opts.count == 1 {
		res = values[0]
	}
	return write(out, res, opts.format)
}

func generateValues(m *mocker.Mocker, count int, validate bool) ([]any, error) {
	if !validate {
		return m.MockMany(count)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", mocker.ErrInvalidCount, count)
	}

	res := make([]any, 0, count)
	for i := 0; i < count; i++ {
		value, err := m.MockAndValidate()
		if err != nil {
			return nil, err
		}
		res = append(res, value)
	}
	return res, nil
}

func hasOverrides(o mocker.Overrides) bool {
	return len(o.Nulls) > 0 || len(o.NotNulls) > 0 || len(o.Undefined) > 0 || len(o.Defined) > 0
}

// readSupply reads a JSON or YAML overlay, keeping its key order.
func readSupply(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	res := types.NewOrderedMap(0)
	if err := yaml.Unmarshal(data, res); err != nil {
		if errors.Is(err, types.ErrNotObject) {
			return nil, fmt.Errorf("decoding supply: %s is not an object", path)
		}
		return nil, fmt.Errorf("decoding supply: %w", err)
	}
	return res, nil
}

func write(out io.Writer, value any, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
