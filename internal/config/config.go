package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"

	DefaultStorePath = "data/dns.txt"
)

type Config struct {
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Store: StoreConfig{Driver: DriverFile, Path: DefaultStorePath},
		Log:   LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// DNSDIR_* environment overrides. An empty path or a missing file leaves
// the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.UnmarshalStrict(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.Store.Driver = envOrDefault("DNSDIR_STORE_DRIVER", cfg.Store.Driver)
	cfg.Store.Path = envOrDefault("DNSDIR_STORE_PATH", cfg.Store.Path)
	cfg.Store.DSN = envOrDefault("DNSDIR_STORE_DSN", cfg.Store.DSN)
	cfg.Log.Level = envOrDefault("DNSDIR_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envOrDefault("DNSDIR_LOG_FORMAT", cfg.Log.Format)

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverFile:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the %s driver", DriverFile)
		}
	case DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
