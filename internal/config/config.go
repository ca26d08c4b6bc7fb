package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// SourceTypeZen fetches a JSON batch from a ZenQuotes-style REST endpoint;
// SourceTypeRSS parses a quotes feed instead.
const (
	SourceTypeZen = "zenquotes"
	SourceTypeRSS = "rss"
)

type Source struct {
	Type string `yaml:"type"`
	URL  string `yaml:"url"`
}

type Auth struct {
	ProjectURL   string `yaml:"project_url"`
	AnonKey      string `yaml:"anon_key"`
	RecoveryHost string `yaml:"recovery_host"`
}

type Discovery struct {
	URL string `yaml:"url"`
}

type Notifications struct {
	Enabled bool `yaml:"enabled"`
	Hour    int  `yaml:"hour"`
	Minute  int  `yaml:"minute"`
}

type Config struct {
	Source        Source        `yaml:"source"`
	Auth          Auth          `yaml:"auth"`
	Discovery     Discovery     `yaml:"discovery"`
	Notifications Notifications `yaml:"notifications"`
	Theme         string        `yaml:"theme,omitempty"`
}

// ResolvedAnonKey returns the API key from config or the environment.
func (c *Config) ResolvedAnonKey() string {
	if c.Auth.AnonKey != "" {
		return c.Auth.AnonKey
	}
	return os.Getenv("QUOTEVAULT_ANON_KEY")
}

// ResolvedRecoveryHost returns the deep-link host that marks a
// password-recovery launch.
func (c *Config) ResolvedRecoveryHost() string {
	if c.Auth.RecoveryHost != "" {
		return c.Auth.RecoveryHost
	}
	return "reset-password"
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "quotevault", "config.yaml")
}

func FavoritesDBPath() string {
	return filepath.Join(xdg.DataHome, "quotevault", "favorites.db")
}

func PrefsPath() string {
	return filepath.Join(xdg.DataHome, "quotevault", "prefs")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	validTypes := map[string]bool{SourceTypeZen: true, SourceTypeRSS: true}
	if !validTypes[cfg.Source.Type] {
		return fmt.Errorf("source: unknown type %q (valid: %s, %s)", cfg.Source.Type, SourceTypeZen, SourceTypeRSS)
	}
	if err := validateURL("source", cfg.Source.URL); err != nil {
		return err
	}
	if cfg.Auth.ProjectURL != "" {
		if err := validateURL("auth", cfg.Auth.ProjectURL); err != nil {
			return err
		}
	}
	if cfg.Discovery.URL != "" {
		if err := validateURL("discovery", cfg.Discovery.URL); err != nil {
			return err
		}
	}
	if cfg.Notifications.Hour < 0 || cfg.Notifications.Hour > 23 {
		return fmt.Errorf("notifications: hour %d out of range", cfg.Notifications.Hour)
	}
	if cfg.Notifications.Minute < 0 || cfg.Notifications.Minute > 59 {
		return fmt.Errorf("notifications: minute %d out of range", cfg.Notifications.Minute)
	}
	return nil
}

func validateURL(section, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s: url is required", section)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid url: %w", section, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: url scheme must be http or https, got %q", section, u.Scheme)
	}
	return nil
}
