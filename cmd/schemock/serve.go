package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cubahno/schemock/pkg/api"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP generation service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.App.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			router := api.NewRouter(
				api.WithConfigOption(cfg),
				api.WithLoggerOption(cfg.Logger()),
			)
			return router.Serve(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file")
	cmd.Flags().IntVarP(&port, "port", "p", 2200, "port to listen on")

	return cmd
}
