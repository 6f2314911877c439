package config

import (
	"github.com/caarlos0/env/v11"
)

// parseEnv overlays Config with values from environment variables declared by
// the struct's env tags. Unset variables leave the existing values alone.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
