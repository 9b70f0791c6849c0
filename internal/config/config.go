// Package config handles TOML-based configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"zee5/internal/httputil"
)

// Endpoints are the provider hosts the catalog client talks to.
type Endpoints struct {
	API        string `toml:"api"`
	UserAction string `toml:"user_action"`
	B2B        string `toml:"b2b"`
	VOD        string `toml:"vod"`
	VODND      string `toml:"vod_nd"`
}

// Config holds all application configuration.
type Config struct {
	Platform          string    `toml:"platform"`
	Languages         []string  `toml:"languages"`
	Country           string    `toml:"country"`
	SearchLanguages   []string  `toml:"search_languages"`
	SubtitleLanguages []string  `toml:"subtitle_languages"`
	PageSize          int       `toml:"page_size"`
	RequestsPerSecond float64   `toml:"requests_per_second"`
	Player            string    `toml:"player"`
	History           bool      `toml:"history"`
	DownloadDir       string    `toml:"download_dir"`
	LogLevel          string    `toml:"log_level"`
	LogFile           string    `toml:"log_file"`
	Debug             bool      `toml:"debug"`
	Endpoints         Endpoints `toml:"endpoints"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Platform:        "web_app",
		Languages:       []string{"en", "hi"},
		Country:         "CA",
		SearchLanguages: []string{"hi", "ta", "en"},
		PageSize:        25,
		Player:          "mpv",
		History:         true,
		DownloadDir:     "~/Videos/zee5",
		LogLevel:        "info",
		Endpoints: Endpoints{
			API:        "https://gwapi.zee5.com",
			UserAction: "https://useraction.zee5.com",
			B2B:        "https://b2bapi.zee5.com",
			VOD:        "https://zee5vod.akamaized.net",
			VODND:      "https://zee5vodnd.akamaized.net",
		},
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "zee5"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "zee5"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	validPlayers := map[string]bool{
		"mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		return fmt.Errorf("unsupported player %q (valid: mpv, vlc, iina, celluloid)", c.Player)
	}

	if c.Platform == "" {
		return fmt.Errorf("platform cannot be empty")
	}
	if c.Country == "" {
		return fmt.Errorf("country cannot be empty")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second cannot be negative, got %v", c.RequestsPerSecond)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	for name, raw := range map[string]string{
		"api":         c.Endpoints.API,
		"user_action": c.Endpoints.UserAction,
		"b2b":         c.Endpoints.B2B,
		"vod":         c.Endpoints.VOD,
		"vod_nd":      c.Endpoints.VODND,
	} {
		if _, err := httputil.RequireHTTPS(raw); err != nil {
			return fmt.Errorf("endpoint %s: %w", name, err)
		}
	}

	return nil
}

// LanguageParam joins the configured content languages for API queries.
func (c *Config) LanguageParam() string {
	return strings.Join(c.Languages, ",")
}

// ExpandDownloadDir resolves ~ in the download directory path.
func (c *Config) ExpandDownloadDir() (string, error) {
	dir := c.DownloadDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}

// HistoryPath returns the path to the history database.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "zee5", "history.db"), nil
}
