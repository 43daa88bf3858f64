// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the client settings.
type Config struct {
	APIURL    string        `env:"CAMPUSNEST_API_URL,default=https://api.campusnest.app"`
	Timeout   time.Duration `env:"CAMPUSNEST_TIMEOUT,default=30s"`
	RateLimit float64       `env:"CAMPUSNEST_RATE_LIMIT,default=10"`
	RateBurst int           `env:"CAMPUSNEST_RATE_BURST,default=20"`
	LogLevel  string        `env:"CAMPUSNEST_LOG_LEVEL,default=info"`
	// Home is where the profile cache and log file live. Defaults to ~/.campusnest.
	Home     string `env:"CAMPUSNEST_HOME"`
	Realtime bool   `env:"CAMPUSNEST_REALTIME,default=true"`
}

// Load reads envFile if it exists (variables already set win), then decodes
// the environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("config.Load: %s: %w", envFile, err)
			}
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config.Load: get home dir: %w", err)
		}
		cfg.Home = filepath.Join(home, ".campusnest")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings are usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: CAMPUSNEST_API_URL %q is not an http(s) URL", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: CAMPUSNEST_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config: CAMPUSNEST_RATE_LIMIT must not be negative, got %g", c.RateLimit)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: CAMPUSNEST_LOG_LEVEL: %w", err)
	}
	return nil
}

// NewLogger builds the process logger writing to out at the configured level.
func (c *Config) NewLogger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	return log
}

// LogPath is the log file; the terminal belongs to the UI.
func (c *Config) LogPath() string {
	return filepath.Join(c.Home, "campusnest.log")
}
