package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLoggerConfig returns a new default logger config.
func NewLoggerConfig() zap.Config {
	// from https://github.com/uber-go/zap/blob/2314926ec34c23ee21f3dd4399438469668f8097/config.go#L135
	// but disable stacktraces, use same keys as prod, and color levels. Logs go to stderr so that stdout only
	// carries command output.
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     utcISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// FileConfig controls rotation of a log file written by NewFileLogger.
type FileConfig struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

// NewFileLogger returns a logger that writes Debug+ JSON logs to a rotated file and Info+ console
// logs to stderr.
func NewFileLogger(name string, fileConfig FileConfig) Logger {
	return newFileLogger(name, fileConfig, zapcore.Lock(os.Stderr))
}

func newFileLogger(name string, fileConfig FileConfig, console zapcore.WriteSyncer) Logger {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	rotator := &lumberjack.Logger{
		Filename:   fileConfig.Path,
		MaxSize:    fileConfig.MaxSizeMB,
		MaxBackups: fileConfig.MaxBackups,
		MaxAge:     fileConfig.MaxAgeDays,
	}

	consoleConfig := NewLoggerConfig().EncoderConfig
	fileEncoderConfig := consoleConfig
	fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), console, level),
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), zapcore.AddSync(rotator), zap.DebugLevel),
	)
	return &impl{name: name, level: level, sugar: zap.New(core).Sugar().Named(name)}
}
