package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Catalogue CatalogueConfig `mapstructure:"catalogue"`
	Session   SessionConfig   `mapstructure:"session"`
	UI        UIConfig        `mapstructure:"ui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// CatalogueConfig holds movie metadata API configuration
type CatalogueConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`        // Shared access credential
	ImageBaseURL string        `mapstructure:"image_base_url"` // Prefix for poster/profile paths
	Placeholder  string        `mapstructure:"placeholder"`    // Returned for missing images
	Timeout      time.Duration `mapstructure:"timeout"`
	RateLimit    float64       `mapstructure:"rate_limit"` // Requests per second, 0 = unlimited
	RateBurst    int           `mapstructure:"rate_burst"`
}

// SessionConfig holds local session configuration
type SessionConfig struct {
	DataDir    string        `mapstructure:"data_dir"`    // Directory for session.db, empty = memory only
	LoginDelay time.Duration `mapstructure:"login_delay"` // Simulated credential check latency
}

// UIConfig holds UI configuration
type UIConfig struct {
	CastLimit int `mapstructure:"cast_limit"` // Cast members shown on the detail screen
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalogue: CatalogueConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			APIKey:       "",
			ImageBaseURL: "https://image.tmdb.org/t/p/w500",
			Placeholder:  "assets/placeholder.png",
			Timeout:      15 * time.Second,
			RateLimit:    0,
			RateBurst:    1,
		},
		Session: SessionConfig{
			DataDir:    defaultDataPath(),
			LoginDelay: 500 * time.Millisecond,
		},
		UI: UIConfig{
			CastLimit: 10,
		},
		Logging: LoggingConfig{
			File:   filepath.Join(defaultDataPath(), "marquee.log"),
			Level:  "INFO",
			Format: "json",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// setDefaults registers every default so environment overrides apply to
// keys that are absent from the config file
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("catalogue.base_url", cfg.Catalogue.BaseURL)
	v.SetDefault("catalogue.api_key", cfg.Catalogue.APIKey)
	v.SetDefault("catalogue.image_base_url", cfg.Catalogue.ImageBaseURL)
	v.SetDefault("catalogue.placeholder", cfg.Catalogue.Placeholder)
	v.SetDefault("catalogue.timeout", cfg.Catalogue.Timeout)
	v.SetDefault("catalogue.rate_limit", cfg.Catalogue.RateLimit)
	v.SetDefault("catalogue.rate_burst", cfg.Catalogue.RateBurst)
	v.SetDefault("session.data_dir", cfg.Session.DataDir)
	v.SetDefault("session.login_delay", cfg.Session.LoginDelay)
	v.SetDefault("ui.cast_limit", cfg.UI.CastLimit)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile loads configuration from path (or the default locations
// when path is empty) and MARQUEE_* environment variables
func LoadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. MARQUEE_CATALOGUE_API_KEY
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to the default config location
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return SaveConfigFile(cfg, filepath.Join(configPath, "config.yaml"))
}

// SaveConfigFile writes cfg as YAML to path
func SaveConfigFile(cfg *Config, path string) error {
	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("catalogue.base_url", cfg.Catalogue.BaseURL)
	v.Set("catalogue.api_key", cfg.Catalogue.APIKey)
	v.Set("catalogue.image_base_url", cfg.Catalogue.ImageBaseURL)
	v.Set("catalogue.placeholder", cfg.Catalogue.Placeholder)
	v.Set("catalogue.timeout", cfg.Catalogue.Timeout.String())
	v.Set("catalogue.rate_limit", cfg.Catalogue.RateLimit)
	v.Set("catalogue.rate_burst", cfg.Catalogue.RateBurst)

	v.Set("session.data_dir", cfg.Session.DataDir)
	v.Set("session.login_delay", cfg.Session.LoginDelay.String())

	v.Set("ui.cast_limit", cfg.UI.CastLimit)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.format", cfg.Logging.Format)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if the catalogue endpoint and credential are set
func (c *Config) IsConfigured() bool {
	return c.Catalogue.BaseURL != "" && c.Catalogue.APIKey != ""
}

// Validate reports settings the application cannot run without
func (c *Config) Validate() error {
	if c.Catalogue.BaseURL == "" {
		return fmt.Errorf("catalogue.base_url is required")
	}
	if c.Catalogue.APIKey == "" {
		return fmt.Errorf("catalogue.api_key is required (set MARQUEE_CATALOGUE_API_KEY)")
	}
	if c.Catalogue.Timeout < 0 {
		return fmt.Errorf("catalogue.timeout must not be negative")
	}
	if c.Catalogue.RateLimit < 0 {
		return fmt.Errorf("catalogue.rate_limit must not be negative")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)
	}
	return nil
}
