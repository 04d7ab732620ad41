package config

import (
	"github.com/caarlos0/env/v11"
)

// parseEnv overlays Config with GOPHNOTES_* variables. Unset variables
// leave the current value alone. Panics on malformed values.
func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		panic(err)
	}
}
