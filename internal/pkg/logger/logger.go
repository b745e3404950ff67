package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger. Production config (JSON, info level) unless
// the environment is development, which gets the console encoder and debug.
func New(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
