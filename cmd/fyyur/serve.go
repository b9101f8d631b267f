package main

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "log/slog"
    "net/http"
    "os/signal"
    "syscall"
    "time"

    "github.com/spf13/cobra"

    "github.com/iliyamo/fyyur/internal/config"
    "github.com/iliyamo/fyyur/internal/database"
    "github.com/iliyamo/fyyur/internal/router"
    "github.com/iliyamo/fyyur/internal/service"
)

func newServeCmd(load func() (config.Config, error)) *cobra.Command {
    return &cobra.Command{
        Use:   "serve",
        Short: "Run the web server",
        RunE: func(cmd *cobra.Command, _ []string) error {
            cfg, err := load()
            if err != nil {
                return err
            }
            return serve(cmd.Context(), cfg)
        },
    }
}

func openDB(ctx context.Context, cfg config.Config, migrate bool) (*sql.DB, error) {
    db, err := database.Open(cfg.DBDriver, cfg.DSN())
    if err != nil {
        return nil, err
    }
    if migrate {
        if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
            _ = db.Close()
            return nil, err
        }
    }
    return db, nil
}

func serve(parent context.Context, cfg config.Config) error {
    ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    db, err := openDB(ctx, cfg, cfg.AutoMigrate)
    if err != nil {
        return err
    }
    defer db.Close()

    rdb := config.NewRedisClient(cfg.Redis)
    if rdb != nil {
        defer rdb.Close()
    }

    var pub service.Publisher = service.NopPublisher{}
    if cfg.EventsEnabled {
        async := service.NewAsyncPublisher(service.NewAMQPPublisher(cfg.RabbitMQURL), 256)
        // Runs after the server has shut down, so no handler publishes
        // into the closed queue.
        defer async.Close()
        pub = async
    }

    e, err := router.New(router.Deps{
        DB:            db,
        Redis:         rdb,
        Cache:         cfg.Cache,
        RateLimit:     cfg.RateLimit,
        FlashSecret:   cfg.FlashSecret,
        SecureCookies: cfg.IsProd(),
        Publisher:     pub,
        Now:           time.Now,
    })
    if err != nil {
        return err
    }

    addr := ":" + cfg.Port
    errc := make(chan error, 1)
    go func() {
        slog.Info("listening", "addr", addr, "driver", cfg.DBDriver, "redis", rdb != nil, "events", cfg.EventsEnabled)
        errc <- e.Start(addr)
    }()

    select {
    case err := <-errc:
        if !errors.Is(err, http.ErrServerClosed) {
            return fmt.Errorf("server: %w", err)
        }
        return nil
    case <-ctx.Done():
    }

    slog.Info("shutting down")
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    return e.Shutdown(shutdownCtx)
}
