package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MatBureau/devops-health/handlers"
	"github.com/MatBureau/devops-health/internal/config"
	"github.com/MatBureau/devops-health/internal/logging"
	"github.com/MatBureau/devops-health/internal/server"
	"github.com/MatBureau/devops-health/internal/system"
	"github.com/MatBureau/devops-health/internal/version"
)

var rootCmd = &cobra.Command{
	Use:          version.AppName,
	Short:        "Welcome and host health endpoints over HTTP",
	Version:      version.Detailed(),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		logger := logging.New(os.Stdout, cfg.Level)
		slog.SetDefault(logger)

		if cfg.Path != "" {
			slog.Info("config loaded", "path", cfg.Path)
		}

		collector := system.NewCollector(
			system.WithSampleInterval(cfg.CPUSampleInterval),
			system.WithDiskPath(cfg.DiskPath),
		)
		h := handlers.New(collector, handlers.WithEnvVar(cfg.EnvVar))
		srv := server.New(cfg, handlers.NewRouter(h, logger))

		slog.Info("starting", "version", version.Short(), "cpu_interval", cfg.CPUSampleInterval, "disk_path", cfg.DiskPath)
		defer slog.Info("Bye!")
		return srv.Start(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	config.BindFlags(rootCmd.Flags())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
