package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

const (
	SourceAPI      = "api"
	SourceSnapshot = "snapshot"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Sitebook"`
		Port     int    `envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
		Timezone string `envconfig:"TIMEZONE" default:"Europe/Tirane"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Source string `envconfig:"SOURCE" default:"api" validate:"oneof=api snapshot"`

	Backend struct {
		URL     string        `envconfig:"BACKEND_URL" validate:"omitempty,url"`
		Token   string        `envconfig:"BACKEND_TOKEN"`
		Timeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"30s"`
	}

	Snapshot struct {
		Dir string `envconfig:"SNAPSHOT_DIR" default:"./snapshot"`
	}
}

// Location resolves the configured timezone used to decide "today".
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.App.Timezone, err)
	}

	return loc, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Source == SourceAPI && c.Backend.URL == "" {
		return fmt.Errorf("invalid config: BACKEND_URL is required when SOURCE=%s", SourceAPI)
	}

	return nil
}
