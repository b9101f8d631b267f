package main

import (
    "context"
    "errors"
    "os/signal"
    "syscall"

    "github.com/spf13/cobra"

    "github.com/iliyamo/fyyur/internal/config"
    "github.com/iliyamo/fyyur/internal/queue"
)

func newConsumeCmd(load func() (config.Config, error)) *cobra.Command {
    return &cobra.Command{
        Use:   "consume",
        Short: "Append show.booked events to the booking log",
        RunE: func(cmd *cobra.Command, _ []string) error {
            cfg, err := load()
            if err != nil {
                return err
            }
            ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
            defer stop()
            c := &queue.Consumer{URL: cfg.RabbitMQURL, LogDir: cfg.BookingLogDir}
            if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
                return err
            }
            return nil
        },
    }
}
