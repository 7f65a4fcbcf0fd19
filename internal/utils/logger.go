package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewApplicationLogger constructs a zap logger configured for human-readable console output.
func NewApplicationLogger() (*zap.Logger, error) {
	return consoleLoggerConfig(zapcore.InfoLevel).Build()
}

// NewVerboseLogger constructs the console logger at debug level. Traversal
// decisions (skipped entries, descents) are reported at this level.
func NewVerboseLogger() (*zap.Logger, error) {
	config := consoleLoggerConfig(zapcore.DebugLevel)
	config.EncoderConfig.LevelKey = "level"
	return config.Build()
}

func consoleLoggerConfig(level zapcore.Level) zap.Config {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.OutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.LevelKey = ""
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""
	return config
}
