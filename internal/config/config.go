// Package config handles loading and parsing application configuration.
// It supports two sources for the YAML file (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// A .env file in the working directory, when present, is loaded into the
// process environment first so its values can override the YAML keys.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the console refuses to start if that value is
// missing.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	HTTPServer `yaml:"http_server"`

	Remote  Remote  `yaml:"remote"`
	Session Session `yaml:"session"`
	CORS    CORS    `yaml:"cors"`
}

// HTTPServer holds settings for the console's own listener.
type HTTPServer struct {
	Addr         string        `yaml:"address"       env:"HTTP_SERVER_ADDR" env-required:"true"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"HTTP_SERVER_READ_TIMEOUT"  env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"  env:"HTTP_SERVER_IDLE_TIMEOUT"  env-default:"60s"`
}

// Remote points at the hospital collection API.
type Remote struct {
	// BaseURL is the origin the collection is mounted under, without the
	// /hospitalapi suffix, e.g. "http://localhost:2000".
	BaseURL string `yaml:"base_url" env:"REMOTE_BASE_URL" env-required:"true"`

	// Timeout bounds each remote call. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout" env:"REMOTE_TIMEOUT" env-default:"0s"`
}

// Session controls the in-memory per-browser views.
type Session struct {
	TTL time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"12h"`
}

// CORS lists origins allowed to read the JSON endpoints under /api.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

// Load reads and validates the config at path.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}

// MustLoad locates, reads and validates the application config, and exits
// the process if any step fails.
func MustLoad() *Config {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("cannot load .env: %s", err.Error())
	}

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
