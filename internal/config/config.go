package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// AppConfig holds policy knobs; infrastructure endpoints stay in the
// environment.
type AppConfig struct {
	Checkout CheckoutConfig `toml:"checkout"`
	Cart     CartConfig     `toml:"cart"`
	Throttle ThrottleConfig `toml:"throttle"`
}

// CheckoutConfig controls order placement policy.
type CheckoutConfig struct {
	// AllowEmptyCart keeps the legacy behavior of creating a zero-total
	// order from an empty cart. Flip to false to reject those with a 400.
	AllowEmptyCart bool `toml:"allow_empty_cart"`
}

// CartConfig controls the abandoned-cart purge job.
type CartConfig struct {
	TTLHours             int `toml:"ttl_hours"`
	PurgeIntervalMinutes int `toml:"purge_interval_minutes"`
}

// ThrottleConfig sets request-per-minute ceilings.
type ThrottleConfig struct {
	UserPerMinute int `toml:"user_per_minute"`
	AnonPerMinute int `toml:"anon_per_minute"`
}

// Default returns the configuration used when no file is present.
func Default() *AppConfig {
	return &AppConfig{
		Checkout: CheckoutConfig{AllowEmptyCart: true},
		Cart:     CartConfig{TTLHours: 72, PurgeIntervalMinutes: 60},
		Throttle: ThrottleConfig{UserPerMinute: 60, AnonPerMinute: 20},
	}
}

// Load reads a TOML config file, falling back to defaults when the path is
// empty or the file does not exist.
func Load(filename string) (*AppConfig, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(filename, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return cfg, nil
}
