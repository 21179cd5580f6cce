package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	defaultAPIPort          = "3001"
	defaultStatsAPIBaseURL  = "https://leetcodeapi-v1.vercel.app"
	defaultRefreshSchedule  = "@every 1h"
	defaultFetchTimeoutSecs = 15
	defaultLockTTLSeconds   = 2 * 60 * 60
)

type Config struct {
	APIPort string `yaml:"api_port"`

	RollsPath    string `yaml:"roster_rolls_path"`
	NamesPath    string `yaml:"roster_names_path"`
	URLsPath     string `yaml:"roster_urls_path"`
	SectionsPath string `yaml:"roster_sections_path"`
	SnapshotPath string `yaml:"snapshot_path"`

	StatsAPIBaseURL     string `yaml:"stats_api_base_url"`
	FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds"`
	RefreshSchedule     string `yaml:"refresh_schedule"`
	RosterWatch         bool   `yaml:"roster_watch"`

	RedisAddr      string `yaml:"redis_addr"`
	RedisPassword  string `yaml:"redis_password"`
	RedisDB        int    `yaml:"redis_db"`
	RefreshLockKey string `yaml:"refresh_lock_key"`
	LockTTLSeconds int    `yaml:"refresh_lock_ttl_seconds"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// FetchTimeout is the per-call bound on a stats API request.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

func (c *Config) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}

// RedisConfigured reports whether refreshes should be guarded by a Redis lock.
func (c *Config) RedisConfigured() bool {
	return c.RedisAddr != ""
}

// Load builds the configuration. Values come from, lowest precedence first:
// built-in defaults, the YAML file at CONFIG_PATH (default config.yaml, optional),
// a .env file (optional), and the process environment.
func Load() (*Config, error) {
	cfg := &Config{}

	// .env comes first so it can set CONFIG_PATH. godotenv never overrides
	// variables already present in the environment.
	_ = godotenv.Load()

	configPath := getEnv("CONFIG_PATH", "config.yaml")
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", configPath, err)
	}

	cfg.APIPort = getEnv("API_PORT", orDefault(cfg.APIPort, defaultAPIPort))
	cfg.RollsPath = getEnv("ROSTER_ROLLS_PATH", orDefault(cfg.RollsPath, "roll.txt"))
	cfg.NamesPath = getEnv("ROSTER_NAMES_PATH", orDefault(cfg.NamesPath, "name.txt"))
	cfg.URLsPath = getEnv("ROSTER_URLS_PATH", orDefault(cfg.URLsPath, "urls.txt"))
	cfg.SectionsPath = getEnv("ROSTER_SECTIONS_PATH", orDefault(cfg.SectionsPath, "sections.txt"))
	cfg.SnapshotPath = getEnv("SNAPSHOT_PATH", orDefault(cfg.SnapshotPath, "data.json"))

	cfg.StatsAPIBaseURL = strings.TrimRight(getEnv("STATS_API_BASE_URL", orDefault(cfg.StatsAPIBaseURL, defaultStatsAPIBaseURL)), "/")
	cfg.FetchTimeoutSeconds = getEnvAsInt("FETCH_TIMEOUT_SECONDS", orDefaultInt(cfg.FetchTimeoutSeconds, defaultFetchTimeoutSecs))
	cfg.RefreshSchedule = getEnv("REFRESH_SCHEDULE", orDefault(cfg.RefreshSchedule, defaultRefreshSchedule))
	cfg.RosterWatch = getEnvAsBool("ROSTER_WATCH", cfg.RosterWatch)

	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getEnvAsInt("REDIS_DB", cfg.RedisDB)
	cfg.RefreshLockKey = getEnv("REFRESH_LOCK_KEY", orDefault(cfg.RefreshLockKey, "leetboard:refresh_lock"))
	cfg.LockTTLSeconds = getEnvAsInt("REFRESH_LOCK_TTL_SECONDS", orDefaultInt(cfg.LockTTLSeconds, defaultLockTTLSeconds))

	cfg.LogLevel = getEnv("LOG_LEVEL", orDefault(cfg.LogLevel, "info"))
	cfg.LogFormat = getEnv("LOG_FORMAT", orDefault(cfg.LogFormat, "json"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	required := map[string]string{
		"roster_rolls_path":    c.RollsPath,
		"roster_names_path":    c.NamesPath,
		"roster_urls_path":     c.URLsPath,
		"roster_sections_path": c.SectionsPath,
		"snapshot_path":        c.SnapshotPath,
		"stats_api_base_url":   c.StatsAPIBaseURL,
	}
	for name, val := range required {
		if strings.TrimSpace(val) == "" {
			return fmt.Errorf("required config '%s' is empty", name)
		}
	}
	if c.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid fetch_timeout_seconds '%d': must be > 0", c.FetchTimeoutSeconds)
	}
	if c.LockTTLSeconds <= 0 {
		return fmt.Errorf("invalid refresh_lock_ttl_seconds '%d': must be > 0", c.LockTTLSeconds)
	}
	if _, err := cron.ParseStandard(c.RefreshSchedule); err != nil {
		return fmt.Errorf("invalid refresh_schedule '%s': %w", c.RefreshSchedule, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
