package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sbca/indy-go/pkg/indy/logging"
)

func TestSlogTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level:       logging.LevelTrace,
		ReplaceAttr: logging.ReplaceLevel,
	})
	l := logging.New(slog.New(h)).With("component", "test")

	l.Trace(context.Background(), "deep", "k", 1)
	l.Info(context.Background(), "shallow")

	out := buf.String()
	assert.Contains(t, out, "level=TRACE")
	assert.Contains(t, out, "msg=deep")
	assert.Contains(t, out, "component=test")
	assert.Contains(t, out, "level=INFO")
}

func TestSlogTraceFilteredAtDebug(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logging.New(slog.New(h)).Trace(context.Background(), "hidden")
	assert.Empty(t, buf.String())
}

func TestRedacted(t *testing.T) {
	attr := logging.Redacted("key")
	assert.Equal(t, "key", attr.Key)
	assert.Equal(t, logging.Placeholder(), attr.Value.String())
}

func TestZapAdapterLevels(t *testing.T) {
	core, logs := observer.New(logging.ZapTraceLevel)
	l := logging.NewZap(zap.New(core)).With("component", "bridge")

	ctx := context.Background()
	l.Trace(ctx, "t", "line", 7)
	l.Debug(ctx, "d")
	l.Warn(ctx, "w", logging.Redacted("seed"))
	l.Log(ctx, slog.LevelError+4, "e")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, logging.ZapTraceLevel, entries[0].Level)
	assert.Equal(t, int64(7), entries[0].ContextMap()["line"])
	assert.Equal(t, "bridge", entries[0].ContextMap()["component"])
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, logging.Placeholder(), entries[2].ContextMap()["seed"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestZapLevelEncoder(t *testing.T) {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeLevel = logging.ZapLevelEncoder
	cfg.TimeKey = ""
	enc := zapcore.NewConsoleEncoder(cfg)

	buf, err := enc.EncodeEntry(zapcore.Entry{Level: logging.ZapTraceLevel, Message: "m"}, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "TRACE"), buf.String())
}
