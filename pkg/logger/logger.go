// pkg/logger/logger.go
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New picks the logger for the given environment. Every entry carries the
// service and environment names.
func New(serviceName, environment string) *zap.Logger {
	switch environment {
	case "development", "local", "test":
		return NewDevelopmentLogger(serviceName, environment)
	default:
		return NewLogger(serviceName, environment)
	}
}

// NewLogger creates a JSON logger with ISO8601 timestamps
func NewLogger(serviceName, environment string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return build(config, serviceName, environment)
}

// NewDevelopmentLogger creates a console logger with colored levels
func NewDevelopmentLogger(serviceName, environment string) *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return build(config, serviceName, environment)
}

func build(config zap.Config, serviceName, environment string) *zap.Logger {
	config.InitialFields = map[string]interface{}{
		"service":     serviceName,
		"environment": environment,
	}

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}

	return logger
}
