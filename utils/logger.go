package utils

import (
	"log"

	"voicedesk/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

// InitializeLogger builds the process-wide zap logger. Production gets
// JSON at info level; everything else gets the colored development
// encoder at debug. LOG_LEVEL overrides the profile default.
func InitializeLogger() {
	cfg := loggerConfig()

	built, err := cfg.Build()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	Logger = built
	zap.ReplaceGlobals(Logger)
}

func loggerConfig() zap.Config {
	var cfg zap.Config
	if IsProduction() {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if lvl := config.AppConfig.LogLevel; lvl != "" {
		var parsed zapcore.Level
		if err := parsed.Set(lvl); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(parsed)
		}
	}
	return cfg
}

// GetLogger returns the global logger, initializing it on first use.
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}
