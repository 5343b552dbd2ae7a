package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and an optional .env file.
// It panics when parsing fails.
func MustLoad[T any](cfg *T) {
	_ = godotenv.Load()

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and an optional .env file.
// A missing .env file is not an error.
func Load[T any](cfg *T, files ...string) error {
	_ = godotenv.Load(files...)

	return env.Parse(cfg)
}
