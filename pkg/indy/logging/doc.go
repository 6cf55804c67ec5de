// Package logging provides the logging facade used throughout indy-go.
//
// The Logger interface wraps a subset of log/slog with context-aware methods
// plus a Trace level. libindy forwards its own records at five levels and the
// most verbose of them, trace, has no slog equivalent, so LevelTrace is
// defined below slog.LevelDebug.
//
// # Default Implementation
//
//	logger := logging.New(nil) // slog.Default()
//
//	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level:       logging.LevelTrace,
//	    ReplaceAttr: logging.ReplaceLevel,
//	})
//	logger = logging.New(slog.New(handler))
//
// # Zap
//
// NewZap adapts a *zap.Logger. Trace records are written at ZapTraceLevel;
// use ZapLevelEncoder in the encoder config to print them as TRACE.
//
// # Redaction Support
//
// Wallet keys, seeds and message payloads must never be logged. Use Redacted
// to record that a value was deliberately left out:
//
//	logger.Debug(ctx, "open wallet", logging.Redacted("credentials"))
//	// Logs: credentials="[redacted]"
package logging
