// Package app provides the application context and dependency management
// for the visitsync CLI. It centralizes configuration, logging, and
// construction of the reconciliation engine behind a single App value that
// commands receive by injection.
package app

import (
	"github.com/rs/zerolog"

	"github.com/Mher0919/Ideal-Choice-Home-Health/pkg/errors"
)

// App represents the visitsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string) (*App, error) {
	a := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "loading configuration", err)
	}
	a.config = config

	logger := NewLogger(config)
	a.logger = &logger

	return a, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}
