// internal/config/config.go
//
// Runtime configuration for the solver service and CLI.
//
// Load order (later wins):
//   1. Built-in defaults.
//   2. `.env` in the working directory (godotenv; missing file is fine).
//   3. Optional YAML file named by SOLVER_CONFIG.
//   4. Environment variables.
//
// Environment variables:
//   PORT, LOG_LEVEL, WORDS_FILE, WORDS_DB, DAILY_SALT,
//   JWT_SECRET, SESSION_TTL_HOURS, ADMIN_KEY_HASH, SOLVER_WORKERS,
//   MAX_ROUNDS, CLIENT_ORIGIN, REQUEST_TIMEOUT_SECONDS

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the service.
type Config struct {
	Port           string `yaml:"port"`
	LogLevel       string `yaml:"log_level"`
	WordsFile      string `yaml:"words_file"`
	WordsDB        string `yaml:"words_db"`
	DailySalt      string `yaml:"daily_salt"`
	JWTSecret      string `yaml:"jwt_secret"`
	SessionTTL     int    `yaml:"session_ttl_hours"`
	AdminKeyHash   string `yaml:"admin_key_hash"`
	Workers        int    `yaml:"workers"`
	MaxRounds      int    `yaml:"max_rounds"`
	ClientOrigin   string `yaml:"client_origin"`
	RequestTimeout int    `yaml:"request_timeout_seconds"`
}

// Default returns the development defaults.
func Default() Config {
	return Config{
		Port:           "5175",
		LogLevel:       "info",
		DailySalt:      "local_dev_salt",
		JWTSecret:      "dev_secret_change_me",
		SessionTTL:     24,
		MaxRounds:      6,
		ClientOrigin:   "http://localhost:5173",
		RequestTimeout: 10,
	}
}

// Load builds the configuration from defaults, .env, SOLVER_CONFIG and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("SOLVER_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// mergeFile overlays fields present in a YAML file.
func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// mergeEnv overlays non-empty environment variables.
func (c *Config) mergeEnv() error {
	str := func(k string, dst *string) {
		if v := os.Getenv(k); v != "" {
			*dst = v
		}
	}
	num := func(k string, dst *int) error {
		v := os.Getenv(k)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		*dst = n
		return nil
	}

	str("PORT", &c.Port)
	str("LOG_LEVEL", &c.LogLevel)
	str("WORDS_FILE", &c.WordsFile)
	str("WORDS_DB", &c.WordsDB)
	str("DAILY_SALT", &c.DailySalt)
	str("JWT_SECRET", &c.JWTSecret)
	str("ADMIN_KEY_HASH", &c.AdminKeyHash)
	str("CLIENT_ORIGIN", &c.ClientOrigin)
	for k, dst := range map[string]*int{
		"SESSION_TTL_HOURS":       &c.SessionTTL,
		"SOLVER_WORKERS":          &c.Workers,
		"MAX_ROUNDS":              &c.MaxRounds,
		"REQUEST_TIMEOUT_SECONDS": &c.RequestTimeout,
	} {
		if err := num(k, dst); err != nil {
			return err
		}
	}
	return nil
}

// SessionTTLDuration is SessionTTL as a duration.
func (c Config) SessionTTLDuration() time.Duration {
	return time.Duration(c.SessionTTL) * time.Hour
}

// RequestTimeoutDuration is RequestTimeout as a duration.
func (c Config) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}
