package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Host            string        `mapstructure:"host"`
		Port            int           `mapstructure:"port"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
		AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	} `mapstructure:"server"`
	Store struct {
		// Driver selects the drink store backend: "redis" or "memory".
		Driver string `mapstructure:"driver"`
	} `mapstructure:"store"`
	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Pricing struct {
		// Window defines "recent" for the decay sweep and is also the
		// sweep period.
		Window time.Duration `mapstructure:"window"`
	} `mapstructure:"pricing"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Ticker struct {
		// Interval between websocket price pushes.
		Interval time.Duration `mapstructure:"interval"`
	} `mapstructure:"ticker"`
}

// LoadConfig loads the application configuration from defaults, an
// optional config file (config.yaml in the working directory or
// MOCKTAIL_CONFIG), and MOCKTAIL_* environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("store.driver", "redis")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("pricing.window", 3600*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("ticker.interval", 2*time.Second)

	v.SetEnvPrefix("MOCKTAIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Pricing.Window <= 0 {
		return nil, fmt.Errorf("pricing window must be positive, got %s", cfg.Pricing.Window)
	}
	if cfg.Store.Driver != "redis" && cfg.Store.Driver != "memory" {
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	return cfg, nil
}
