package indy

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sbca/indy-go/pkg/indy/ffi"
	"github.com/sbca/indy-go/pkg/indy/logging"
)

// Layout of the indy_set_logger log callback:
// (context, level, target, message, module_path, file, line).
var logCallbackSlots = []ffi.Slot{
	ffi.Pointer, ffi.Uint32, ffi.Pointer, ffi.Pointer, ffi.Pointer, ffi.Pointer, ffi.Uint32,
}

// NativeLevel maps a libindy log level (1 error to 5 trace) to slog.
func NativeLevel(level uint32) slog.Level {
	switch level {
	case 1:
		return slog.LevelError
	case 2:
		return slog.LevelWarn
	case 3:
		return slog.LevelInfo
	case 4:
		return slog.LevelDebug
	default:
		return logging.LevelTrace
	}
}

func (l *Library) installLogger(ctx context.Context) error {
	if !l.native.Implements(symSetLogger) {
		l.logger.Warn(ctx, "libindy does not export a logger hook; native logs are lost")
		return nil
	}
	native := l.base.With("component", "libindy.native")
	cb, err := l.native.NewCallback(logCallbackSlots, func(args []uintptr) {
		forwardLog(native, args)
	})
	if err != nil {
		return err
	}
	// No enabled or flush callbacks; filtering happens in the Go logger.
	return l.callSync(symSetLogger, 0, 0, cb, 0)
}

func forwardLog(logger logging.Logger, args []uintptr) {
	target, _ := ffi.GoString(args[2])
	message, _ := ffi.GoString(args[3])
	module, _ := ffi.GoString(args[4])
	file, _ := ffi.GoString(args[5])

	logger.Log(context.Background(), NativeLevel(uint32(args[1])), message,
		"target", strings.ReplaceAll(target, "::", "."),
		"module_path", module,
		"file", file,
		"line", uint32(args[6]),
	)
}
