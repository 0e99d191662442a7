package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig selects the backing store. Driver is "sqlite" (default,
// single-file) or "postgres"; Path applies to sqlite, the remaining fields
// to postgres.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// SQLDriver returns the database/sql driver name for the configured backend.
func (d DatabaseConfig) SQLDriver() string {
	if d.Driver == "postgres" {
		return "pgx"
	}
	return "sqlite"
}

// DSN returns the database/sql connection string.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "postgres" {
		return d.postgresURL()
	}
	return d.Path
}

// MigrateDSN returns the connection URL golang-migrate expects.
func (d DatabaseConfig) MigrateDSN() string {
	if d.Driver == "postgres" {
		return d.postgresURL()
	}
	return "sqlite://" + d.Path
}

func (d DatabaseConfig) postgresURL() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix GKMANAGER_ and underscore-separated
// paths:
//
//	GKMANAGER_SERVER_HOST, GKMANAGER_SERVER_PORT,
//	GKMANAGER_DB_DRIVER, GKMANAGER_DB_PATH,
//	GKMANAGER_DB_HOST, GKMANAGER_DB_PORT, GKMANAGER_DB_NAME,
//	GKMANAGER_DB_USER, GKMANAGER_DB_PASSWORD, GKMANAGER_DB_SSLMODE
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GKMANAGER_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("GKMANAGER_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GKMANAGER_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("GKMANAGER_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("GKMANAGER_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("GKMANAGER_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("GKMANAGER_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("GKMANAGER_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("GKMANAGER_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("GKMANAGER_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	switch c.Database.Driver {
	case "", "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for sqlite")
		}
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required")
		}
		if c.Database.Port == 0 {
			return fmt.Errorf("database.port is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required")
		}
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	return nil
}
