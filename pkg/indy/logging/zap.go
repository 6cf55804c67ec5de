package logging

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapTraceLevel is the zap level that LevelTrace maps to.
const ZapTraceLevel = zapcore.DebugLevel - 1

// NewZap returns a Logger that writes through z. Passing nil uses zap.L().
func NewZap(z *zap.Logger) Logger {
	if z == nil {
		z = zap.L()
	}
	return &zapLogger{logger: z.WithOptions(zap.AddCallerSkip(1))}
}

type zapLogger struct {
	logger *zap.Logger
}

func (l *zapLogger) Trace(ctx context.Context, msg string, args ...any) {
	l.Log(ctx, LevelTrace, msg, args...)
}

func (l *zapLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.Log(ctx, slog.LevelDebug, msg, args...)
}

func (l *zapLogger) Info(ctx context.Context, msg string, args ...any) {
	l.Log(ctx, slog.LevelInfo, msg, args...)
}

func (l *zapLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.Log(ctx, slog.LevelWarn, msg, args...)
}

func (l *zapLogger) Error(ctx context.Context, msg string, args ...any) {
	l.Log(ctx, slog.LevelError, msg, args...)
}

func (l *zapLogger) Log(_ context.Context, level slog.Level, msg string, args ...any) {
	if ce := l.logger.Check(ZapLevel(level), msg); ce != nil {
		ce.Write(zapFields(args)...)
	}
}

func (l *zapLogger) With(args ...any) Logger {
	return &zapLogger{logger: l.logger.With(zapFields(args)...)}
}

// ZapLevel converts an slog level to the matching zap level.
func ZapLevel(level slog.Level) zapcore.Level {
	switch {
	case level <= LevelTrace:
		return ZapTraceLevel
	case level < slog.LevelInfo:
		return zapcore.DebugLevel
	case level < slog.LevelWarn:
		return zapcore.InfoLevel
	case level < slog.LevelError:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// ZapLevelEncoder is zapcore.CapitalLevelEncoder with a name for the trace
// level.
func ZapLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == ZapTraceLevel {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalLevelEncoder(l, enc)
}

// zapFields accepts the same alternating key/value and slog.Attr arguments as
// slog.
func zapFields(args []any) []zap.Field {
	fields := make([]zap.Field, 0, len(args)/2+1)
	for i := 0; i < len(args); i++ {
		switch a := args[i].(type) {
		case slog.Attr:
			fields = append(fields, zap.Any(a.Key, a.Value.Resolve().Any()))
		case string:
			if i+1 >= len(args) {
				fields = append(fields, zap.Any("!BADKEY", a))
				continue
			}
			fields = append(fields, zap.Any(a, args[i+1]))
			i++
		default:
			fields = append(fields, zap.Any(fmt.Sprintf("!BADKEY%d", i), a))
		}
	}
	return fields
}
