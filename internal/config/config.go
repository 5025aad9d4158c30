package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrMissingCredentials means one of the two required credentials is unset
// or blank.
var ErrMissingCredentials = errors.New("VISION_ENDPOINT and VISION_KEY must be set (see .env)")

// Config carries the two static credentials for the analysis service.
type Config struct {
	Endpoint string `envconfig:"VISION_ENDPOINT" required:"true"`
	Key      string `envconfig:"VISION_KEY" required:"true"`
}

// Load reads credentials from the environment, first merging in a local
// .env file when one exists. A variable set to whitespace counts as
// missing, same as an unset one.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingCredentials, err)
	}
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	cfg.Key = strings.TrimSpace(cfg.Key)
	if cfg.Endpoint == "" || cfg.Key == "" {
		return nil, ErrMissingCredentials
	}
	return &cfg, nil
}
