package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.Source.Type != SourceTypeZen {
		t.Errorf("expected default source type %q, got %q", SourceTypeZen, cfg.Source.Type)
	}
	if cfg.Source.URL == "" {
		t.Error("expected default source url to be set")
	}
	if cfg.Notifications.Hour != 8 || cfg.Notifications.Minute != 0 {
		t.Errorf("expected default notification time 08:00, got %02d:%02d",
			cfg.Notifications.Hour, cfg.Notifications.Minute)
	}
	if cfg.Notifications.Enabled {
		t.Error("notifications should be disabled by default")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `source:
  type: rss
  url: https://example.com/quotes.xml
auth:
  project_url: https://demo.supabase.co
  recovery_host: reset-password
notifications:
  enabled: true
  hour: 7
  minute: 30
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source.Type != SourceTypeRSS {
		t.Errorf("expected rss source, got %s", cfg.Source.Type)
	}
	if cfg.Auth.ProjectURL != "https://demo.supabase.co" {
		t.Errorf("unexpected project url: %s", cfg.Auth.ProjectURL)
	}
	if !cfg.Notifications.Enabled || cfg.Notifications.Hour != 7 || cfg.Notifications.Minute != 30 {
		t.Errorf("unexpected notifications: %+v", cfg.Notifications)
	}
}

func TestLoadNonexistentFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source.URL == "" {
		t.Error("expected default source when config doesn't exist")
	}
	// Defaults should have been written for next run.
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("expected defaults written to %s: %v", cfgPath, err)
	}
}

func TestResolvedAnonKeyEnvFallback(t *testing.T) {
	t.Setenv("QUOTEVAULT_ANON_KEY", "env-key")
	cfg := &Config{}
	if got := cfg.ResolvedAnonKey(); got != "env-key" {
		t.Errorf("expected env key, got %q", got)
	}
	cfg.Auth.AnonKey = "cfg-key"
	if got := cfg.ResolvedAnonKey(); got != "cfg-key" {
		t.Errorf("config key should win, got %q", got)
	}
}

func TestResolvedRecoveryHostDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.ResolvedRecoveryHost(); got != "reset-password" {
		t.Errorf("expected default recovery host, got %q", got)
	}
}

func TestValidateInvalidType(t *testing.T) {
	cfg := &Config{Source: Source{Type: "json", URL: "https://example.com"}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for invalid source type")
	}
}

func TestValidateMissingURL(t *testing.T) {
	cfg := &Config{Source: Source{Type: SourceTypeZen}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for missing URL")
	}
}

func TestValidateInvalidURLScheme(t *testing.T) {
	cfg := &Config{Source: Source{Type: SourceTypeZen, URL: "file:///etc/passwd"}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for file:// URL scheme")
	}
}

func TestValidateNotificationTime(t *testing.T) {
	cfg := &Config{
		Source:        Source{Type: SourceTypeZen, URL: "https://example.com"},
		Notifications: Notifications{Hour: 25},
	}
	if err := validate(cfg); err == nil {
		t.Error("expected error for hour out of range")
	}
	cfg.Notifications = Notifications{Hour: 8, Minute: 60}
	if err := validate(cfg); err == nil {
		t.Error("expected error for minute out of range")
	}
}

func TestValidateAcceptsHTTP(t *testing.T) {
	cfg := &Config{Source: Source{Type: SourceTypeRSS, URL: "http://example.com/feed"}}
	if err := validate(cfg); err != nil {
		t.Errorf("unexpected error for http URL: %v", err)
	}
}
