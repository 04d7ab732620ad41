// Package config loads runtime configuration for the notes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. JSON by default,
//     YAML when the file name ends in .yaml or .yml.
//  3. Environment variables with the GOPHNOTES_ prefix.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string    base URL of the notes API
//	-t int       request timeout (seconds, 0 = none)
//	-d string    local state database path
//	-l string    initial locale (en, id)
//	-e string    editor format (html, markdown)
//	-log string  log level
//
// Environment
//
//	GOPHNOTES_SERVER_URL, GOPHNOTES_REQUEST_TIMEOUT (e.g. "5s"),
//	GOPHNOTES_DATABASE_PATH, GOPHNOTES_LOCALE, GOPHNOTES_EDITOR_FORMAT,
//	GOPHNOTES_NOTIFY_DURATION, GOPHNOTES_LOG_LEVEL
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds. Keys left out keep their previous value:
//
//	{
//	  "server_url": "https://notes-api.dicoding.dev/v1",
//	  "request_timeout": "10s",
//	  "database_path": "/home/me/.config/gophnotes/state.db",
//	  "locale": "id",
//	  "editor_format": "markdown",
//	  "notify_duration": "5s",
//	  "log_level": "info"
//	}
package config
