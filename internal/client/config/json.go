package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
	"github.com/dmitrijs2005/gophnotes/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file unmarshalling. Durations
// use timex.Duration so files may say "3s" or give integer nanoseconds.
// Pointer fields tell "absent" from "empty": only present keys override.
type FileConfig struct {
	ServerURL      *string         `json:"server_url" yaml:"server_url"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	DatabasePath   *string         `json:"database_path" yaml:"database_path"`
	Locale         *string         `json:"locale" yaml:"locale"`
	EditorFormat   *string         `json:"editor_format" yaml:"editor_format"`
	NotifyDuration *timex.Duration `json:"notify_duration" yaml:"notify_duration"`
	LogLevel       *string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays Config with values from the file named by -c/-config.
// Files ending in .yaml or .yml are read as YAML, anything else as JSON.
// Panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.ServerURL != nil {
		cfg.ServerURL = *fc.ServerURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.Locale != nil {
		cfg.Locale = *fc.Locale
	}
	if fc.EditorFormat != nil {
		cfg.EditorFormat = *fc.EditorFormat
	}
	if fc.NotifyDuration != nil {
		cfg.NotifyDuration = fc.NotifyDuration.Duration
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
}
