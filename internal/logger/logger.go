// Package logger builds the zap loggers used across the ranker.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger writing to stderr, leaving stdout for command output.
// json selects the JSON encoder over the console one; debug lowers the level to Debug.
func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "msg",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,

			DurationKey:    "duration",
			EncodeDuration: zapcore.MillisDurationEncoder,
		},
	}
	return cfg.Build()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// CriteriaFields describes filter criteria for structured logs.
func CriteriaFields(search string, requiredSkills []string, minExperience *float64) []zap.Field {
	fields := []zap.Field{
		zap.Strings("required_skills", requiredSkills),
	}
	if search != "" {
		fields = append(fields, zap.String("search", search))
	}
	if minExperience != nil {
		fields = append(fields, zap.Float64("min_experience_years", *minExperience))
	}
	return fields
}
