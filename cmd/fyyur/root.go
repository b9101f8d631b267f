package main

import (
    "log/slog"
    "os"

    "github.com/spf13/cobra"

    "github.com/iliyamo/fyyur/internal/config"
)

func newRootCmd() *cobra.Command {
    var configFile string
    root := &cobra.Command{
        Use:           "fyyur",
        Short:         "Fyyur lists venues and artists and books shows between them",
        SilenceUsage:  true,
        SilenceErrors: true,
    }
    root.PersistentFlags().StringVar(&configFile, "config", "", "optional config file (yaml, toml or json)")

    load := func() (config.Config, error) {
        v, err := config.NewViper(configFile)
        if err != nil {
            return config.Config{}, err
        }
        cfg, err := config.Load(v)
        if err != nil {
            return config.Config{}, err
        }
        setupLogger(cfg)
        return cfg, nil
    }
    root.AddCommand(newServeCmd(load), newMigrateCmd(load), newConsumeCmd(load))
    return root
}

// setupLogger installs the default slog logger: JSON in production, text
// everywhere else.
func setupLogger(cfg config.Config) {
    var h slog.Handler
    if cfg.IsProd() {
        h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
    } else {
        h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
    }
    slog.SetDefault(slog.New(h).With("env", cfg.Env))
}
