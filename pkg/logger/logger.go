package logger

import (
	"context"
	"os"

	"github.com/stayhub/wallet-service/internal/config"
	sqldblogger "github.com/simukti/sqldb-logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the application-wide logging interface. The same instance
// satisfies the sqldb-logger contract so SQL statements go through
// the one configured logger.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	// With returns a logger based off the root logger
	// and decorates it with the given arguments.
	With(ctx context.Context, args ...interface{}) Logger
	// Log implements the sqldb-logger interface.
	Log(ctx context.Context, level sqldblogger.Level, msg string, data map[string]interface{})
	Sync() error
}

type appLogger struct {
	*zap.SugaredLogger
}

// New creates a new logger writing to stdout and, when a log path is
// configured, to a size-rotated file.
func New(cfg *config.Config) Logger {
	level := zapcore.InfoLevel
	if cfg.Logger.Level != "" {
		if parsed, err := zapcore.ParseLevel(cfg.Logger.Level); err == nil {
			level = parsed
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.Lock(os.Stdout),
			level,
		),
	}

	if cfg.Logger.Path != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Logger.Path,
			MaxSize:    cfg.Logger.MaxSizeMB,
			MaxBackups: cfg.Logger.MaxBackups,
			MaxAge:     cfg.Logger.MaxAgeDays,
		})
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			fileWriter,
			level,
		))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller())

	return &appLogger{l.Sugar()}
}

// NewNop returns a logger that discards everything. Meant for tests.
func NewNop() Logger {
	return &appLogger{zap.NewNop().Sugar()}
}

func (l *appLogger) With(_ context.Context, args ...interface{}) Logger {
	return &appLogger{l.SugaredLogger.With(args...)}
}

func (l *appLogger) Log(_ context.Context, level sqldblogger.Level, msg string, data map[string]interface{}) {
	args := make([]interface{}, 0, len(data)*2)
	for k, v := range data {
		args = append(args, k, v)
	}

	switch level {
	case sqldblogger.LevelError:
		l.Errorw(msg, args...)
	case sqldblogger.LevelInfo:
		l.Infow(msg, args...)
	default:
		l.Debugw(msg, args...)
	}
}
