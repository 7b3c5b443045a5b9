package store

import (
	"errors"
	"strings"

	"confmatrix/internal/platform/logger"
)

// Option adjusts how Open builds the Store
type Option func(*settings) error

// settings collects Option values before any backend is dialled
type settings struct {
	log     logger.Logger
	app     string
	role    string
	version string
}

// WithLogger sets the logger the backends and the SQL tracer write to
func WithLogger(log logger.Logger) Option {
	return func(s *settings) error {
		s.log = log
		return nil
	}
}

// WithClient identifies this process to the servers
// app becomes the Postgres application_name, role and version go into ClickHouse client info
func WithClient(app, role, version string) Option {
	return func(s *settings) error {
		if strings.TrimSpace(app) == "" {
			return errors.New("store: client app name is empty")
		}
		s.app, s.role, s.version = app, role, version
		return nil
	}
}

// apply folds opts into cfg, values set in cfg win over WithClient
func apply(cfg Config, opts []Option) (Config, settings, error) {
	var s settings
	for _, o := range opts {
		if err := o(&s); err != nil {
			return cfg, s, err
		}
	}
	if cfg.AppName == "" {
		cfg.AppName = s.app
	}
	if cfg.Role == "" {
		cfg.Role = s.role
	}
	if cfg.Version == "" {
		cfg.Version = s.version
	}
	return cfg, s, nil
}
