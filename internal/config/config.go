package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath            string `yaml:"db_path"`
	Port              string `yaml:"port"`
	Timezone          string `yaml:"timezone"`
	LogLevel          string `yaml:"log_level"`
	Environment       string `yaml:"environment"`
	WarmupCron        string `yaml:"warmup_cron"`
	WarmupHorizonDays int    `yaml:"warmup_horizon_days"`
	MaxRangeDays      int    `yaml:"max_range_days"`

	Location *time.Location `yaml:"-"`
}

func Default() *Config {
	return &Config{
		DBPath:            filepath.Join("data", "rhythm.db"),
		Port:              "8080",
		Timezone:          "UTC",
		LogLevel:          "info",
		Environment:       "development",
		WarmupCron:        "5 0 * * *",
		WarmupHorizonDays: 7,
		MaxRangeDays:      93,
	}
}

// Load reads .env (never overriding the real environment), then the YAML
// file named by CONFIG_FILE, then environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the values present in a YAML file onto cfg.
func (cfg *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (cfg *Config) ApplyEnv(lookup func(key string) (string, bool)) error {
	setString := func(key string, target *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	setInt := func(key string, target *int) error {
		value, ok := lookup(key)
		if !ok || strings.TrimSpace(value) == "" {
			return nil
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*target = parsed
		return nil
	}

	setString("DB_PATH", &cfg.DBPath)
	setString("PORT", &cfg.Port)
	setString("TZ", &cfg.Timezone)
	setString("LOG_LEVEL", &cfg.LogLevel)
	setString("ENVIRONMENT", &cfg.Environment)

	// An explicitly empty WARMUP_CRON disables the warm-up job.
	if value, ok := lookup("WARMUP_CRON"); ok {
		cfg.WarmupCron = strings.TrimSpace(value)
	}

	if err := setInt("WARMUP_HORIZON_DAYS", &cfg.WarmupHorizonDays); err != nil {
		return err
	}
	return setInt("MAX_RANGE_DAYS", &cfg.MaxRangeDays)
}

func (cfg *Config) Validate() error {
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Environment = strings.ToLower(cfg.Environment)

	if strings.TrimSpace(cfg.DBPath) == "" {
		return errors.New("DB_PATH is empty")
	}
	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", cfg.Port)
	}
	if cfg.WarmupHorizonDays <= 0 {
		return fmt.Errorf("WARMUP_HORIZON_DAYS must be positive, got %d", cfg.WarmupHorizonDays)
	}
	if cfg.MaxRangeDays <= 0 {
		return fmt.Errorf("MAX_RANGE_DAYS must be positive, got %d", cfg.MaxRangeDays)
	}
	if cfg.WarmupCron != "" {
		if _, err := cron.ParseStandard(cfg.WarmupCron); err != nil {
			return fmt.Errorf("invalid WARMUP_CRON %q: %w", cfg.WarmupCron, err)
		}
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid TZ %q: %w", cfg.Timezone, err)
	}
	cfg.Location = location
	return nil
}
