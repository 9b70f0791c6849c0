package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Platform != "web_app" {
		t.Errorf("default platform = %q, want web_app", cfg.Platform)
	}
	if cfg.PageSize != 25 {
		t.Errorf("default page size = %d, want 25", cfg.PageSize)
	}
	if cfg.Country != "CA" {
		t.Errorf("default country = %q, want CA", cfg.Country)
	}
	if !cfg.History {
		t.Error("default history should be true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"invalid player", func(c *Config) { c.Player = "notepad" }, true},
		{"empty platform", func(c *Config) { c.Platform = "" }, true},
		{"empty country", func(c *Config) { c.Country = "" }, true},
		{"zero page size", func(c *Config) { c.PageSize = 0 }, true},
		{"negative rate", func(c *Config) { c.RequestsPerSecond = -1 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }, true},
		{"http endpoint", func(c *Config) { c.Endpoints.API = "http://gwapi.zee5.com" }, true},
		{"empty endpoint", func(c *Config) { c.Endpoints.VOD = "" }, true},
		{"valid vlc", func(c *Config) { c.Player = "vlc" }, false},
		{"valid rate", func(c *Config) { c.RequestsPerSecond = 2.5 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLanguageParam(t *testing.T) {
	cfg := Default()
	cfg.Languages = []string{"en", "ta", "te"}
	if got := cfg.LanguageParam(); got != "en,ta,te" {
		t.Errorf("LanguageParam() = %q, want en,ta,te", got)
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	content := `
platform = "android_app"
languages = ["ta"]
country = "IN"
subtitle_languages = ["en"]
page_size = 10
player = "vlc"
history = false

[endpoints]
api = "https://api.example.com"
`
	dir := filepath.Join(tmpDir, "zee5")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Platform != "android_app" {
		t.Errorf("platform = %q, want android_app", cfg.Platform)
	}
	if cfg.LanguageParam() != "ta" {
		t.Errorf("languages = %q, want ta", cfg.LanguageParam())
	}
	if cfg.PageSize != 10 {
		t.Errorf("page size = %d, want 10", cfg.PageSize)
	}
	if cfg.Player != "vlc" {
		t.Errorf("player = %q, want vlc", cfg.Player)
	}
	if cfg.History {
		t.Error("history should be false")
	}
	if cfg.Endpoints.API != "https://api.example.com" {
		t.Errorf("api endpoint = %q", cfg.Endpoints.API)
	}
	// Unset table keys keep their defaults.
	if cfg.Endpoints.VOD != Default().Endpoints.VOD {
		t.Errorf("vod endpoint = %q, want default", cfg.Endpoints.VOD)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Platform != Default().Platform {
		t.Errorf("platform = %q, want default", cfg.Platform)
	}
}

func TestLoadInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	dir := filepath.Join(tmpDir, "zee5")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`page_size = -4`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for negative page size")
	}
}
