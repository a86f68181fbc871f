package main

import (
	"github.com/cubahno/schemock/pkg/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "schemock",
		Short:        "Generate random data that satisfies a schema",
		Version:      Version,
		SilenceUsage: true,
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newGeneratorsCmd())

	return root
}

// loadConfig reads the config file, or returns the defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.NewDefaultConfig(), nil
	}
	return config.NewConfigFromFile(path)
}
