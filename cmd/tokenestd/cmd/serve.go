package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TokeNest/TokeNest-SmartContract/api"
	"github.com/TokeNest/TokeNest-SmartContract/api/telemetry"
	"github.com/TokeNest/TokeNest-SmartContract/x/dex/keeper"
)

const (
	flagChainID = "chain-id"
	flagHost    = "host"
	flagPort    = "port"
)

// ServeCmd starts a seeded in-memory sandbox and serves its query API.
func ServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a seeded in-memory sandbox and serve the dex query API",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			for key, flag := range map[string]string{
				"chain_id": flagChainID,
				"api.host": flagHost,
				"api.port": flagPort,
			} {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return fmt.Errorf("failed to bind --%s: %w", flag, err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(v)
			if err != nil {
				return err
			}
			logger, err := newLogger(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			sb, err := NewSandbox(cfg, logger, time.Now().UTC())
			if err != nil {
				return err
			}
			provider, err := telemetry.NewProvider(cfg.Telemetry)
			if err != nil {
				return err
			}
			defer func() {
				if err := provider.Shutdown(context.Background()); err != nil {
					logger.Error("failed to shut down telemetry", "err", err)
				}
			}()

			server, err := api.NewServer(cfg.API, keeper.NewQuerier(sb.App.DexKeeper), func() context.Context { return sb.Ctx }, logger, api.WithTelemetry(provider))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Start(ctx)
		},
	}

	cmd.Flags().String(flagChainID, "", "chain id of the sandbox")
	cmd.Flags().String(flagHost, "", "API listen host")
	cmd.Flags().String(flagPort, "", "API listen port")
	return cmd
}
