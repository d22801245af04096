package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fintrack-dev/fintrack/internal/daterange"
)

// FileName is the config file name inside the config directory.
const FileName = "fintrack.yaml"

// EnvPrefix prefixes environment overrides, e.g. FINTRACK_API_URL.
const EnvPrefix = "FINTRACK"

// Config represents the fintrack.yaml client configuration.
type Config struct {
	API       APIConfig       `yaml:"api" mapstructure:"api"`
	Auth      AuthConfig      `yaml:"auth" mapstructure:"auth"`
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// APIConfig locates the backend.
type APIConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// AuthConfig controls where the access token is kept.
type AuthConfig struct {
	TokenFile string `yaml:"token_file,omitempty" mapstructure:"token_file"` // empty = token.json next to the config file
}

// DashboardConfig holds presentation defaults.
type DashboardConfig struct {
	DefaultRange  string `yaml:"default_range" mapstructure:"default_range"`
	Currency      string `yaml:"currency" mapstructure:"currency"`
	TopCategories int    `yaml:"top_categories" mapstructure:"top_categories"`
}

// LogConfig sets the diagnostic log level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// Default returns a Config with sensible defaults for a local backend.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:     "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Dashboard: DashboardConfig{
			DefaultRange:  string(daterange.DefaultKind),
			Currency:      "₽",
			TopCategories: 5,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DefaultPath returns the config file path under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "fintrack", FileName), nil
}

// Load reads the config file at path, if it exists, on top of the defaults
// and applies FINTRACK_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("api.url", def.API.URL)
	v.SetDefault("api.timeout", def.API.Timeout)
	v.SetDefault("auth.token_file", def.Auth.TokenFile)
	v.SetDefault("dashboard.default_range", def.Dashboard.DefaultRange)
	v.SetDefault("dashboard.currency", def.Dashboard.Currency)
	v.SetDefault("dashboard.top_categories", def.Dashboard.TopCategories)
	v.SetDefault("log.level", def.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later at request time.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.URL) == "" {
		return errors.New("config: api.url is required")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("config: api.timeout must not be negative, got %s", c.API.Timeout)
	}
	if _, err := daterange.ParseKind(c.Dashboard.DefaultRange); err != nil {
		return fmt.Errorf("config: dashboard.default_range: %w", err)
	}
	if c.Dashboard.TopCategories < 1 {
		return fmt.Errorf("config: dashboard.top_categories must be positive, got %d", c.Dashboard.TopCategories)
	}
	return nil
}

// TokenPath returns the token file for a config loaded from configPath.
func (c *Config) TokenPath(configPath string) string {
	if c.Auth.TokenFile != "" {
		return c.Auth.TokenFile
	}
	return filepath.Join(filepath.Dir(configPath), "token.json")
}

// Save writes a Config to a YAML file, creating its directory.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
