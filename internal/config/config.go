// Package config loads the counsel settings file and its environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// SessionBackend selects where planning-session state lives.
type SessionBackend string

const (
	SessionMemory SessionBackend = "memory"
	SessionRedis  SessionBackend = "redis"
)

type Config struct {
	DatabasePath string        `yaml:"database_path"`
	HTTP         HTTPConfig    `yaml:"http"`
	Sessions     SessionConfig `yaml:"sessions"`
	Redis        RedisConfig   `yaml:"redis"`
	LogLevel     string        `yaml:"log_level"`
	// SeedDemo loads the embedded demo roster into an empty database.
	SeedDemo bool `yaml:"seed_demo"`
}

type HTTPConfig struct {
	Addr            string `yaml:"addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

type SessionConfig struct {
	Backend SessionBackend `yaml:"backend"`
	TTL     string         `yaml:"ttl"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DefaultPath returns ~/.counsel/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".counsel", "config.yaml"), nil
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *Config {
	dbPath := "counsel.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".counsel", "counsel.db")
	}
	return &Config{
		DatabasePath: dbPath,
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: "10s",
		},
		Sessions: SessionConfig{
			Backend: SessionMemory,
			TTL:     "2h",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		LogLevel: "info",
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("COUNSEL_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("COUNSEL_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("COUNSEL_SESSION_BACKEND"); v != "" {
		c.Sessions.Backend = SessionBackend(v)
	}
	if v := os.Getenv("COUNSEL_SESSION_TTL"); v != "" {
		c.Sessions.TTL = v
	}
	if v := os.Getenv("COUNSEL_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("COUNSEL_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("COUNSEL_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = n
		}
	}
	if v := os.Getenv("COUNSEL_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("COUNSEL_SEED_DEMO"); v != "" {
		c.SeedDemo, _ = strconv.ParseBool(v)
	}
}

// Validate rejects settings the rest of the program cannot act on.
func (c *Config) Validate() error {
	switch c.Sessions.Backend {
	case SessionMemory, SessionRedis:
	default:
		return fmt.Errorf("sessions.backend: unknown backend %q", c.Sessions.Backend)
	}
	if _, err := time.ParseDuration(c.Sessions.TTL); err != nil {
		return fmt.Errorf("sessions.ttl: %w", err)
	}
	if _, err := time.ParseDuration(c.HTTP.ShutdownTimeout); err != nil {
		return fmt.Errorf("http.shutdown_timeout: %w", err)
	}
	return nil
}

// SessionTTL returns how long an idle planning session survives.
func (c *Config) SessionTTL() time.Duration {
	d, err := time.ParseDuration(c.Sessions.TTL)
	if err != nil {
		return 2 * time.Hour
	}
	return d
}

// ShutdownTimeout bounds the graceful HTTP shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.HTTP.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
