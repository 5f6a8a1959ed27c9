package logger

import (
	"context"
	"time"

	ctxutil "github.com/playea/beach-api/pkg/context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Entry is one structured log line under construction. Request metadata is
// taken from the context; the rest is added with the typed setters and
// written by Log. An entry whose level is filtered out ignores every call.
type Entry struct {
	out     *zap.Logger
	level   zapcore.Level
	message string
	fields  []zap.Field
	muted   bool
}

func newEntry(ctx context.Context, level zapcore.Level, message string) *Entry {
	bl := getBudgetLogger()
	if !bl.Enabled(level) {
		return &Entry{muted: true}
	}
	e := &Entry{
		out:     bl.logger,
		level:   level,
		message: message,
		fields:  make([]zap.Field, 0, 12),
	}
	if ctx != nil {
		e.fromContext(ctx)
	}
	return e
}

func (e *Entry) fromContext(ctx context.Context) {
	strs := []struct{ key, value string }{
		{"request_id", ctxutil.GetRequestID(ctx)},
		{"client_ip", ctxutil.GetClientIP(ctx)},
		{"user_agent", ctxutil.GetUserAgent(ctx)},
		{"module", ctxutil.GetModule(ctx)},
		{"function", ctxutil.GetFunction(ctx)},
	}
	for _, s := range strs {
		if s.value != "" {
			e.fields = append(e.fields, zap.String(s.key, s.value))
		}
	}
	if userID, ok := ctxutil.GetUserIDUint(ctx); ok {
		e.fields = append(e.fields, zap.Uint("user_id", userID))
	}
	if elapsed := ctxutil.GetDuration(ctx); elapsed > 0 {
		e.fields = append(e.fields, zap.Duration("elapsed", elapsed))
	}
}

func (e *Entry) add(f zap.Field) *Entry {
	if !e.muted {
		e.fields = append(e.fields, f)
	}
	return e
}

func (e *Entry) String(key, value string) *Entry  { return e.add(zap.String(key, value)) }
func (e *Entry) Int(key string, value int) *Entry { return e.add(zap.Int(key, value)) }
func (e *Entry) Int64(key string, value int64) *Entry {
	return e.add(zap.Int64(key, value))
}
func (e *Entry) Uint(key string, value uint) *Entry { return e.add(zap.Uint(key, value)) }
func (e *Entry) Bool(key string, value bool) *Entry { return e.add(zap.Bool(key, value)) }
func (e *Entry) Any(key string, value interface{}) *Entry {
	return e.add(zap.Any(key, value))
}

// Duration is always logged under "duration".
func (e *Entry) Duration(value time.Duration) *Entry { return e.add(zap.Duration("duration", value)) }

func (e *Entry) StatusCode(code int) *Entry { return e.add(zap.Int("status_code", code)) }

func (e *Entry) Err(err error) *Entry {
	if err == nil {
		return e
	}
	return e.add(zap.Error(err))
}

// Log writes the entry, also for cancelled request contexts.
func (e *Entry) Log() {
	if e.muted {
		return
	}
	if ce := e.out.Check(e.level, e.message); ce != nil {
		ce.Write(e.fields...)
	}
}

func InfoWithContext(ctx context.Context, message string) *Entry {
	return newEntry(ctx, zapcore.InfoLevel, message)
}

func WarnWithContext(ctx context.Context, message string) *Entry {
	return newEntry(ctx, zapcore.WarnLevel, message)
}

func ErrorWithContext(ctx context.Context, message string) *Entry {
	return newEntry(ctx, zapcore.ErrorLevel, message)
}

func DebugWithContext(ctx context.Context, message string) *Entry {
	return newEntry(ctx, zapcore.DebugLevel, message)
}
