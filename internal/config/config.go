// Package config loads server configuration from environment variables.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Addr            string        `envconfig:"PARTNERPULSE_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"PARTNERPULSE_SHUTDOWN_TIMEOUT" default:"10s"`

	// DatabaseDSN is a libsql DSN: a local file ("file:partnerpulse.db")
	// or a remote Turso URL. Empty means the in-memory store and a
	// read-only plan tracker after restart.
	DatabaseDSN string `envconfig:"PARTNERPULSE_DB_DSN"`

	// Seed drives the synthetic data generator; the same seed always
	// renders the same network.
	Seed int64 `envconfig:"PARTNERPULSE_SEED" default:"1"`

	// PlanEditable gates the plan-target commit endpoint.
	PlanEditable bool `envconfig:"PARTNERPULSE_PLAN_EDITABLE" default:"true"`

	LogLevel string `envconfig:"PARTNERPULSE_LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
