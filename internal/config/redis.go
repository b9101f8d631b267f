package config

// Redis backs the response cache and the form rate limiter.  If the server
// cannot be reached at startup, NewRedisClient returns nil and callers
// degrade gracefully by disabling both.

import (
    "context"
    "crypto/tls"
    "time"

    "github.com/redis/go-redis/v9"
    "github.com/spf13/viper"
)

// RedisConfig holds connection settings.  REDIS_HOST and REDIS_PORT take
// precedence over REDIS_ADDR when both are set.
type RedisConfig struct {
    Enabled  bool
    Addr     string
    Password string
    DB       int
    TLS      bool
}

func setRedisDefaults(v *viper.Viper) {
    v.SetDefault("redis_enabled", true)
    v.SetDefault("redis_addr", "localhost:6379")
    v.SetDefault("redis_db", 0)
    v.SetDefault("redis_tls", false)
}

// LoadRedisConfig reads the REDIS_* settings.
func LoadRedisConfig(v *viper.Viper) RedisConfig {
    addr := v.GetString("redis_addr")
    if host, port := v.GetString("redis_host"), v.GetString("redis_port"); host != "" && port != "" {
        addr = host + ":" + port
    }
    return RedisConfig{
        Enabled:  v.GetBool("redis_enabled"),
        Addr:     addr,
        Password: v.GetString("redis_password"),
        DB:       v.GetInt("redis_db"),
        TLS:      v.GetBool("redis_tls"),
    }
}

// NewRedisClient instantiates a Redis client and pings it with a short
// timeout.  The returned client is nil when Redis is disabled or a
// connection cannot be established.
func NewRedisClient(cfg RedisConfig) *redis.Client {
    if !cfg.Enabled {
        return nil
    }
    var tlsConf *tls.Config
    if cfg.TLS {
        tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
    }
    client := redis.NewClient(&redis.Options{
        Addr:      cfg.Addr,
        Password:  cfg.Password,
        DB:        cfg.DB,
        TLSConfig: tlsConf,
    })
    // Ping the server with a short timeout.  Return nil on failure.
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        _ = client.Close()
        return nil
    }
    return client
}
