// Package config loads the service configuration from a YAML file with
// environment variable overrides, or from the environment alone when no file
// is present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aetherius-rpg/questboard/internal/ratelimit"
)

// Config holds the configuration settings.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	JWT           JWTConfig           `yaml:"jwt"`
	Quest         QuestConfig         `yaml:"quest"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// JWTConfig holds the decision token signing configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// QuestConfig holds quest module tunables.
type QuestConfig struct {
	// ApplicationLimit caps applications per user per quest in the window.
	ApplicationLimit  int           `yaml:"application_limit"`
	ApplicationWindow time.Duration `yaml:"application_window"`
	// GuildRatePerSecond and GuildBurst bound interaction throughput per guild.
	GuildRatePerSecond float64 `yaml:"guild_rate_per_second"`
	GuildBurst         int     `yaml:"guild_burst"`
}

// ObservabilityConfig holds configuration for observability components.
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
}

// LoadConfig loads the configuration from a YAML file, falling back to the
// environment when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadConfigFromEnv() (*Config, error) {
	var cfg Config
	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("DECISION_TOKEN_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("DECISION_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.JWT.DefaultTTL = d
		}
	}
	if v := os.Getenv("APPLICATION_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Quest.ApplicationLimit = n
		}
	}
	if v := os.Getenv("APPLICATION_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Quest.ApplicationWindow = d
		}
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Quest.ApplicationLimit == 0 {
		cfg.Quest.ApplicationLimit = ratelimit.DefaultApplicationLimit
	}
	if cfg.Quest.ApplicationWindow == 0 {
		cfg.Quest.ApplicationWindow = ratelimit.DefaultApplicationWindow
	}
	if cfg.Quest.GuildRatePerSecond == 0 {
		cfg.Quest.GuildRatePerSecond = 5
	}
	if cfg.Quest.GuildBurst == 0 {
		cfg.Quest.GuildBurst = 10
	}
	if cfg.JWT.DefaultTTL == 0 {
		cfg.JWT.DefaultTTL = 14 * 24 * time.Hour
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "development"
	}
}

func validate(cfg *Config) error {
	if cfg.Postgres.DSN == "" {
		return fmt.Errorf("postgres DSN not set (DATABASE_URL)")
	}
	if cfg.NATS.URL == "" {
		return fmt.Errorf("NATS URL not set (NATS_URL)")
	}
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("decision token secret not set (DECISION_TOKEN_SECRET)")
	}
	return nil
}
