package main

import (
	"fmt"

	"github.com/cubahno/schemock/pkg/mocker"
	"github.com/spf13/cobra"
)

func newGeneratorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generators",
		Short: "List the custom generators available to x-generator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range mocker.DefaultGenerators().Names() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
