package logger

import (
	"os"
	"path/filepath"

	"github.com/playea/beach-api/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger *zap.Logger
	Sugar  *zap.SugaredLogger
)

// InitLogger builds the process-wide zap logger. Every level goes to its own
// file under the configured logs path and is mirrored to stdout/stderr.
func InitLogger(cfg *config.Config) error {
	logsPath := cfg.App.LogsPath
	if logsPath == "" {
		logsPath = "./logs"
	}
	if err := os.MkdirAll(logsPath, 0755); err != nil {
		return err
	}

	zapLevel := zapcore.DebugLevel
	if cfg.IsProduction() {
		zapLevel = zapcore.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	infoFile, err := openLogFile(logsPath, "info.log")
	if err != nil {
		return err
	}
	errorFile, err := openLogFile(logsPath, "error.log")
	if err != nil {
		infoFile.Close()
		return err
	}
	debugFile, err := openLogFile(logsPath, "debug.log")
	if err != nil {
		infoFile.Close()
		errorFile.Close()
		return err
	}

	encoder := zapcore.NewJSONEncoder(encoderConfig)

	infoCore := zapcore.NewCore(
		encoder,
		zapcore.NewMultiWriteSyncer(zapcore.AddSync(infoFile), zapcore.AddSync(os.Stdout)),
		levelRange(zapLevel, zapcore.WarnLevel),
	)
	errorCore := zapcore.NewCore(
		encoder,
		zapcore.NewMultiWriteSyncer(zapcore.AddSync(errorFile), zapcore.AddSync(os.Stderr)),
		zapcore.ErrorLevel,
	)
	debugCore := zapcore.NewCore(
		encoder,
		zapcore.AddSync(debugFile),
		zapcore.DebugLevel,
	)

	core := zapcore.NewTee(infoCore, errorCore, debugCore)

	Logger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("app", cfg.App.Name))
	Sugar = Logger.Sugar()

	budgetLogger = NewBudgetLogger(Logger, BudgetFor(cfg.App.Environment))

	return nil
}

// ReplaceLogger swaps the global logger. Tests use it with zap.NewNop().
func ReplaceLogger(l *zap.Logger) {
	Logger = l
	Sugar = l.Sugar()
	budgetLogger = NewBudgetLogger(l, DevelopmentBudget())
}

func GetLogger() *zap.Logger {
	if Logger == nil {
		ReplaceLogger(zap.NewNop())
	}
	return Logger
}

// Sync flushes buffered entries; call it before the process exits.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

func LogRequest(method, path string, statusCode int, durationMs int64, clientIP, userAgent string) {
	GetLogger().Info("HTTP Request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
		zap.Int64("duration_ms", durationMs),
		zap.String("client_ip", clientIP),
		zap.String("user_agent", userAgent),
	)
}

func LogPanic(recovered interface{}) {
	GetLogger().Error("Panic recovered",
		zap.Any("panic", recovered),
		zap.Stack("stack"),
	)
}

// LogAuth records login, logout and token events.
func LogAuth(userID uint, action string, success bool, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.Uint("user_id", userID),
		zap.String("action", action),
		zap.Bool("success", success),
	}, fields...)

	if success {
		GetLogger().Info("Authentication success", allFields...)
	} else {
		GetLogger().Warn("Authentication failure", allFields...)
	}
}

func openLogFile(dir, name string) (*os.File, error) {
	return os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// levelRange enables [min, max] so info.log does not duplicate error.log.
func levelRange(min, max zapcore.Level) zap.LevelEnablerFunc {
	return func(l zapcore.Level) bool {
		return l >= min && l <= max
	}
}
