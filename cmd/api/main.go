// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/articlehub/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "articlehub",
		Short:         "Article Hub content service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(
		&opts.configPath,
		"config",
		"config.yaml",
		"path to config file",
	)

	cmd.AddCommand(
		newServeCmd(opts),
		newSeedCmd(opts),
		newSchemaCmd(opts),
		newKeysCmd(opts),
		newRoutesCmd(),
	)

	return cmd
}

// loadConfig reads configuration and installs the process logger.
func (o *rootOptions) loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	return cfg, logger, nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
