package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goran-ethernal/ChainActivity/internal/common"
	"github.com/goran-ethernal/ChainActivity/internal/config"
	"github.com/goran-ethernal/ChainActivity/internal/logger"
	"github.com/goran-ethernal/ChainActivity/pkg/api"
	pkgconfig "github.com/goran-ethernal/ChainActivity/pkg/config"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the query API over the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFromFile(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !cfg.DB.IsDurable() {
				return errors.New("serve requires a durable db driver (sqlite or postgres)")
			}
			if cfg.API == nil {
				cfg.API = &pkgconfig.APIConfig{}
				cfg.API.ApplyDefaults()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := logger.NewComponentLoggerFromConfig(common.ComponentAPI, cfg.Logging)

			durable, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer durable.close(log)

			return api.NewServer(cfg.API, durable.store, log).Start(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
	return cmd
}
