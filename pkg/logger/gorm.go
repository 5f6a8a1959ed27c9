package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// GormLogger routes GORM's own logging through zap so SQL errors carry the
// request metadata of the context they ran under.
type GormLogger struct {
	level         gormLogger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger(level gormLogger.LogLevel, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{level: level, slowThreshold: slowThreshold}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormLogger.Info {
		InfoWithContext(ctx, fmt.Sprintf(msg, data...)).String("component", "gorm").Log()
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormLogger.Warn {
		WarnWithContext(ctx, fmt.Sprintf(msg, data...)).String("component", "gorm").Log()
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormLogger.Error {
		ErrorWithContext(ctx, fmt.Sprintf(msg, data...)).String("component", "gorm").Log()
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormLogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	// Not-found is a normal outcome for lookups; the service decides if it is an error.
	case err != nil && l.level >= gormLogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		ErrorWithContext(ctx, "SQL error").
			String("sql", sql).
			Int64("rows", rows).
			Duration(elapsed).
			Err(err).
			Log()
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormLogger.Warn:
		sql, rows := fc()
		WarnWithContext(ctx, "Slow SQL").
			String("sql", sql).
			Int64("rows", rows).
			Duration(elapsed).
			Any("threshold", l.slowThreshold).
			Log()
	case l.level >= gormLogger.Info:
		sql, rows := fc()
		GetLogger().Debug("SQL",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("duration", elapsed),
		)
	}
}
