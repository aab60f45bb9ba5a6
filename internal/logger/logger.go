package logger

import (
	"go.uber.org/zap"
)

// NewNamed creates a named zap logger configured for the given environment.
// Production environments log JSON at info level; everything else logs in
// development format at debug level.
func NewNamed(appEnv, service string) (*zap.Logger, error) {
	var cfg zap.Config
	if appEnv == "production" || appEnv == "staging" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Named(service), nil
}
