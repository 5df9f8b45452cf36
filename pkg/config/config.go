// Package config loads service configuration from defaults and
// TEAMDESK_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	env "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "TEAMDESK_"

type ServerConfig struct {
	Host string `koanf:"host" validate:"required"`
	Port int    `koanf:"port" validate:"gte=1,lte=65535"`
}

type DatabaseConfig struct {
	URI  string `koanf:"uri"  validate:"required"`
	Name string `koanf:"name" validate:"required"`
	// Transactions toggles multi-step atomicity. When false every
	// session operation is a no-op and writes are independently
	// durable.
	Transactions   bool          `koanf:"transactions"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON   bool   `koanf:"json"`
	Source bool   `koanf:"source"`
}

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
}

// Default returns the built-in configuration values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			URI:            "mongodb://localhost:27017",
			Name:           "teamdesk",
			Transactions:   true,
			ConnectTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults overlaid with
// environment variables, e.g. TEAMDESK_DATABASE_URI maps to
// database.uri.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// envTransform maps TEAMDESK_SECTION_FIELD_NAME to section.field_name:
// the first underscore separates the section, the rest stay literal.
func envTransform(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	if i := strings.Index(key, "_"); i > 0 {
		key = key[:i] + "." + key[i+1:]
	}
	return key, value
}
