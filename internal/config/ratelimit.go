package config

import (
    "time"

    "github.com/spf13/viper"
)

// RateLimitConfig configures the token bucket guarding form submissions.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
    Debug          bool
}

func setRateLimitDefaults(v *viper.Viper) {
    v.SetDefault("rate_limit_enabled", true)
    v.SetDefault("rate_limit_capacity", 30)
    v.SetDefault("rate_limit_refill_tokens", 1)
    v.SetDefault("rate_limit_refill_interval", "2s")
    v.SetDefault("rate_limit_ttl", "10m")
    v.SetDefault("rate_limit_key_strategy", "ip_route")
    v.SetDefault("rate_limit_prefix", "fyyur:rl")
    v.SetDefault("rate_limit_debug", false)
}

// LoadRateLimitConfig reads the RATE_LIMIT_* settings and clamps them to
// usable values.  RATE_LIMIT_BURST overrides the capacity and
// RATE_LIMIT_REFILL_EVERY sets a one-token-per-interval refill.
func LoadRateLimitConfig(v *viper.Viper) RateLimitConfig {
    def := RateLimitConfig{
        Enabled:        v.GetBool("rate_limit_enabled"),
        Capacity:       v.GetInt("rate_limit_capacity"),
        RefillTokens:   v.GetInt("rate_limit_refill_tokens"),
        RefillInterval: v.GetDuration("rate_limit_refill_interval"),
        TTL:            v.GetDuration("rate_limit_ttl"),
        KeyStrategy:    v.GetString("rate_limit_key_strategy"),
        Prefix:         v.GetString("rate_limit_prefix"),
        Debug:          v.GetBool("rate_limit_debug"),
    }
    if b := v.GetInt("rate_limit_burst"); b > 0 { def.Capacity = b }
    if every := v.GetDuration("rate_limit_refill_every"); every > 0 {
        def.RefillTokens = 1
        def.RefillInterval = every
    }
    if def.Capacity < 1 { def.Capacity = 1 }
    if def.RefillTokens < 1 { def.RefillTokens = 1 }
    if def.RefillInterval <= 0 { def.RefillInterval = time.Second }
    minTTL := 5 * def.RefillInterval
    if def.TTL < minTTL { def.TTL = minTTL }
    return def
}
