// Package logging builds the engine's zap loggers and scrubs credentials
// from anything that is about to be logged.
package logging

import (
	"go.uber.org/zap"
)

// NewLogger creates a zap logger appropriate for the environment.
// "local" gets a development config (console, debug level); everything
// else gets the production JSON config.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
