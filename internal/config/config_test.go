package config

import "testing"

func TestLoadRequiresAPIURL(t *testing.T) {
	t.Setenv("DESPENSA_API_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DESPENSA_API_URL is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DESPENSA_API_URL", "http://localhost:8000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.DBPath != "despensa.db" {
		t.Errorf("db path = %q, want despensa.db", cfg.DBPath)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("log defaults = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DESPENSA_API_URL", "https://api.example.com")
	t.Setenv("DESPENSA_PORT", "9090")
	t.Setenv("DESPENSA_LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "https://api.example.com" {
		t.Errorf("api url = %q", cfg.APIURL)
	}
	if cfg.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Port)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("log format = %q, want json", cfg.LogFormat)
	}
}
