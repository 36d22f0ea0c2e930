// Package config loads application configuration from an optional YAML file
// overlaid by environment variables. All variables use the STUDYHUB_ prefix;
// environment values win over file values.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Source   SourceConfig   `yaml:"source"`
	Quiz     QuizConfig     `yaml:"quiz"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL means the
// review store runs in memory.
type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// CacheConfig holds Redis/Dragonfly settings for the entity-graph snapshot
// cache. An empty URL disables caching.
type CacheConfig struct {
	URL        string `yaml:"url"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

// SourceConfig holds curriculum source settings.
type SourceConfig struct {
	// Root is the directory holding the backing layouts.
	Root string `yaml:"root"`
	// MasterWorkbook is the master workbook file name under Root.
	MasterWorkbook string `yaml:"master_workbook"`
}

// QuizConfig holds quiz session settings.
type QuizConfig struct {
	TargetCount int `yaml:"target_count"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const defaultConfigFile = "studyhub.yaml"

// Load reads configuration: built-in defaults, then the config file named by
// STUDYHUB_CONFIG_FILE (or ./studyhub.yaml when present), then environment
// overrides.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Database: DatabaseConfig{
			MaxConns: 25,
			MinConns: 5,
		},
		Cache: CacheConfig{
			TTLMinutes: 60,
		},
		Source: SourceConfig{
			Root:           "./data",
			MasterWorkbook: "StudyHub_Master.xlsx",
		},
		Quiz: QuizConfig{
			TargetCount: 5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}

	file := envStr("STUDYHUB_CONFIG_FILE", defaultConfigFile)
	if err := cfg.loadFile(file, file != defaultConfigFile); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	return cfg, nil
}

// loadFile overlays values from a YAML file. A missing file is only an error
// when it was named explicitly.
func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = envInt("STUDYHUB_SERVER_PORT", c.Server.Port)
	c.Server.Host = envStr("STUDYHUB_SERVER_HOST", c.Server.Host)

	c.Database.URL = envStr("STUDYHUB_DATABASE_URL", c.Database.URL)
	c.Database.MaxConns = envInt("STUDYHUB_DATABASE_MAX_CONNS", c.Database.MaxConns)
	c.Database.MinConns = envInt("STUDYHUB_DATABASE_MIN_CONNS", c.Database.MinConns)

	c.Cache.URL = envStr("STUDYHUB_CACHE_URL", c.Cache.URL)
	c.Cache.TTLMinutes = envInt("STUDYHUB_CACHE_TTL_MINUTES", c.Cache.TTLMinutes)

	c.Source.Root = envStr("STUDYHUB_SOURCE_ROOT", c.Source.Root)
	c.Source.MasterWorkbook = envStr("STUDYHUB_SOURCE_MASTER_WORKBOOK", c.Source.MasterWorkbook)

	c.Quiz.TargetCount = envInt("STUDYHUB_QUIZ_TARGET_COUNT", c.Quiz.TargetCount)

	c.Log.Level = envStr("STUDYHUB_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envStr("STUDYHUB_LOG_FORMAT", c.Log.Format)
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Source.Root == "" {
		return fmt.Errorf("STUDYHUB_SOURCE_ROOT is required")
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("STUDYHUB_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}
	if c.Quiz.TargetCount <= 0 {
		return fmt.Errorf("STUDYHUB_QUIZ_TARGET_COUNT must be positive, got %d", c.Quiz.TargetCount)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
