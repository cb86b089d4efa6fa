package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath    = "CONFIG_PATH"
	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
)

const (
	defaultPort        = 8318
	defaultRedisPrefix = "restcore"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port             int    `yaml:"port"`
	DocumentationURL string `yaml:"documentation-url"`
}

// ThrottleConfig holds the throttle scope configuration. Rates maps scope
// names to rate descriptors such as "100/hour"; descriptors are kept as
// strings here and parsed at scope-building time so a malformed entry
// degrades to a skipped scope instead of a startup failure.
type ThrottleConfig struct {
	DefaultScopes []string          `yaml:"default-scopes"`
	Rates         map[string]string `yaml:"rates"`
}

// RedisConfig holds the shared-cache connection settings.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Config is the full application configuration, loaded once at startup and
// read-only afterwards.
type Config struct {
	Server    ServerConfig   `yaml:"server"`
	Throttles ThrottleConfig `yaml:"throttles"`
	Redis     RedisConfig    `yaml:"redis"`
}

// ResolveConfigPath normalizes the config path and applies defaults.
func ResolveConfigPath(p string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = "./config.yaml"
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

// Load reads the YAML config file and applies environment overrides. A
// missing file yields the defaults; a file that exists but fails to parse is
// an error.
func Load(configPath string) (Config, error) {
	cfg := defaults()

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
			return Config{}, fmt.Errorf("parse config file: %w", errUnmarshal)
		}
	} else if !os.IsNotExist(errRead) {
		return Config{}, fmt.Errorf("read config file: %w", errRead)
	}

	if addr := strings.TrimSpace(os.Getenv(EnvRedisAddr)); addr != "" {
		cfg.Redis.Addr = addr
		cfg.Redis.Enabled = true
	}
	if password := strings.TrimSpace(os.Getenv(EnvRedisPassword)); password != "" {
		cfg.Redis.Password = password
	}

	normalize(&cfg)
	return cfg, nil
}

func defaults() Config {
	return Config{
		Server: ServerConfig{Port: defaultPort},
		Throttles: ThrottleConfig{
			DefaultScopes: []string{"anon", "user"},
			Rates:         map[string]string{},
		},
		Redis: RedisConfig{Prefix: defaultRedisPrefix},
	}
}

func normalize(cfg *Config) {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		cfg.Server.Port = defaultPort
	}
	cfg.Redis.Addr = strings.TrimSpace(cfg.Redis.Addr)
	cfg.Redis.Password = strings.TrimSpace(cfg.Redis.Password)
	cfg.Redis.Prefix = strings.TrimSpace(cfg.Redis.Prefix)
	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = defaultRedisPrefix
	}
	if cfg.Redis.DB < 0 {
		cfg.Redis.DB = 0
	}
	if cfg.Throttles.Rates == nil {
		cfg.Throttles.Rates = map[string]string{}
	}
}
