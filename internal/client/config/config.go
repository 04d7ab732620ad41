package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultServerURL = "https://notes-api.dicoding.dev/v1"
	envPrefix        = "GOPHNOTES_"
)

// Config holds runtime settings for the notes CLI.
//
// Fields:
//   - ServerURL: base URL of the notes REST API.
//   - RequestTimeout: per-request timeout; zero means none.
//   - DatabasePath: sqlite file holding the token and preferences.
//   - Locale: initial locale (en or id) until the user picks one.
//   - EditorFormat: body input format, html or markdown.
//   - NotifyDuration: how long a notification stays visible.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerURL      string        `env:"SERVER_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	DatabasePath   string        `env:"DATABASE_PATH"`
	Locale         string        `env:"LOCALE"`
	EditorFormat   string        `env:"EDITOR_FORMAT"`
	NotifyDuration time.Duration `env:"NOTIFY_DURATION"`
	LogLevel       string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = DefaultServerURL
	c.RequestTimeout = 0
	c.DatabasePath = defaultDatabasePath()
	c.Locale = "en"
	c.EditorFormat = "html"
	c.NotifyDuration = 3 * time.Second
	c.LogLevel = "warn"
}

func defaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "gophnotes.db"
	}
	return filepath.Join(dir, "gophnotes", "state.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from a config file (if given), the environment, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
