package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/pocket-sync/pkg/pocket"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName        string `mapstructure:"app_name"`
	Env            string `mapstructure:"app_env"`
	LogLevel       string `mapstructure:"log_level"`
	SourcesFile    string `mapstructure:"sources_file"`
	PublishersFile string `mapstructure:"publishers_file"`
	AudioDir       string `mapstructure:"audio_dir"`

	SyncIntervalSeconds int64         `mapstructure:"sync_interval"`
	SyncInterval        time.Duration `mapstructure:"-"`

	PocketAPIKey         string        `mapstructure:"pocket_api_key"`
	PocketBaseURL        string        `mapstructure:"pocket_base_url"`
	PocketAPIVersion     string        `mapstructure:"pocket_api_version"`
	PocketTimeoutSeconds int64         `mapstructure:"pocket_timeout"`
	PocketRetryTimes     int           `mapstructure:"pocket_retry_times"`
	PocketRetrySleepMS   int64         `mapstructure:"pocket_retry_sleep"`
	PocketTimeout        time.Duration `mapstructure:"-"`
	PocketRetrySleep     time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "pocket-sync")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("sources_file", "./configs/sources.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("audio_dir", "./data/audio")
	v.SetDefault("sync_interval", 600) // seconds

	v.SetDefault("pocket_api_key", "")
	v.SetDefault("pocket_base_url", "")
	v.SetDefault("pocket_api_version", pocket.DefaultAPIVersion)
	v.SetDefault("pocket_timeout", int64(pocket.DefaultTimeout/time.Second))
	v.SetDefault("pocket_retry_times", pocket.DefaultRetryTimes)
	v.SetDefault("pocket_retry_sleep", int64(pocket.DefaultRetrySleep/time.Millisecond)) // milliseconds

	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/ledger.db")
	v.SetDefault("storage_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.PocketAPIKey = strings.TrimSpace(cfg.PocketAPIKey)
	cfg.PocketBaseURL = strings.TrimSpace(cfg.PocketBaseURL)
	if cfg.PocketAPIKey == "" {
		return nil, fmt.Errorf("pocket_api_key is required")
	}
	if cfg.PocketBaseURL == "" {
		return nil, fmt.Errorf("pocket_base_url is required")
	}
	if cfg.PocketTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid pocket_timeout (must be positive seconds)")
	}
	if cfg.PocketRetryTimes < 0 {
		return nil, fmt.Errorf("invalid pocket_retry_times (must not be negative)")
	}
	if cfg.PocketRetrySleepMS < 0 {
		return nil, fmt.Errorf("invalid pocket_retry_sleep (must not be negative milliseconds)")
	}
	cfg.PocketTimeout = time.Duration(cfg.PocketTimeoutSeconds) * time.Second
	cfg.PocketRetrySleep = time.Duration(cfg.PocketRetrySleepMS) * time.Millisecond

	if cfg.SyncIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid sync_interval (must be positive seconds)")
	}
	cfg.SyncInterval = time.Duration(cfg.SyncIntervalSeconds) * time.Second

	if cfg.StorageTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}

// Pocket converts the loaded settings into an SDK config.
func (c *Config) Pocket() pocket.Config {
	return pocket.Config{
		APIKey:     c.PocketAPIKey,
		BaseURL:    c.PocketBaseURL,
		APIVersion: c.PocketAPIVersion,
		Timeout:    c.PocketTimeout,
		RetryTimes: c.PocketRetryTimes,
		RetrySleep: c.PocketRetrySleep,
	}
}

// LogFields returns the settings safe to log; the API key is masked.
func (c *Config) LogFields() map[string]any {
	key := ""
	if c.PocketAPIKey != "" {
		key = "****"
		if n := len(c.PocketAPIKey); n > 8 {
			key += c.PocketAPIKey[n-4:]
		}
	}
	return map[string]any{
		"app_name":        c.AppName,
		"app_env":         c.Env,
		"log_level":       c.LogLevel,
		"sources_file":    c.SourcesFile,
		"publishers_file": c.PublishersFile,
		"audio_dir":       c.AudioDir,
		"sync_interval":   c.SyncInterval.String(),
		"pocket_api_key":  key,
		"pocket_base_url": c.PocketBaseURL,
		"pocket_version":  c.PocketAPIVersion,
		"pocket_timeout":  c.PocketTimeout.String(),
		"pocket_retries":  c.PocketRetryTimes,
		"storage_type":    c.StorageType,
		"bbolt_path":      c.BBoltPath,
	}
}
