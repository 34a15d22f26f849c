// Package config loads the Glicko-2 system constants from the environment.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"rating-engine/glicko"
)

// Load reads .env (dev) when present, then GLICKO_* variables on top of the
// paper defaults.
func Load() (glicko.Config, error) {
	_ = godotenv.Load()
	return parse()
}

// LoadFile is Load with an explicit dotenv file. Unlike Load, a missing file
// is an error. Variables already set in the environment win over the file.
func LoadFile(path string) (glicko.Config, error) {
	if err := godotenv.Load(path); err != nil {
		return glicko.Config{}, errors.Wrapf(err, "unable to load %s", path)
	}
	return parse()
}

func parse() (glicko.Config, error) {
	cfg := glicko.DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return glicko.Config{}, errors.Wrap(err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return glicko.Config{}, err
	}
	return cfg, nil
}
