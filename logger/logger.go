// Package logger builds the process-wide zap logger.
package logger

import (
	"fmt"
	"os"
	"sync"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Settings controls level and optional file rotation.
type Settings struct {
	Level      string
	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
}

var (
	instance *zap.Logger
	initErr  error
	once     sync.Once
)

// Init builds the singleton logger. Later calls return the first result.
func Init(s Settings) error {
	once.Do(func() {
		instance, initErr = New(s)
		if initErr == nil {
			zap.ReplaceGlobals(instance)
		}
	})
	return initErr
}

// L returns the initialised logger, or a no-op logger before Init.
func L() *zap.Logger {
	if instance == nil {
		return zap.NewNop()
	}
	return instance
}

// New builds a JSON logger writing to stderr and, when FilePath is set, to a
// rotating file.
func New(s Settings) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(levelName(s.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", s.Level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	}

	if s.FilePath != "" {
		if s.MaxSize < 1 || s.MaxSize > 100 {
			return nil, fmt.Errorf("max size must be between 1 and 100 MB")
		}
		if s.MaxBackups < 1 || s.MaxBackups > 10 {
			return nil, fmt.Errorf("max backups must be between 1 and 10")
		}
		if s.MaxAge < 1 || s.MaxAge > 365 {
			return nil, fmt.Errorf("max age must be between 1 and 365 days")
		}
		writer := &lumberjack.Logger{
			Filename:   s.FilePath,
			MaxSize:    s.MaxSize,
			MaxBackups: s.MaxBackups,
			MaxAge:     s.MaxAge,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(writer), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// levelName accepts the "warning" spelling used in env files.
func levelName(level string) string {
	switch level {
	case "":
		return "info"
	case "warning":
		return "warn"
	default:
		return level
	}
}
