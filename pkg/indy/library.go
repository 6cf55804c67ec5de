package indy

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sbca/indy-go/pkg/indy/ffi"
	"github.com/sbca/indy-go/pkg/indy/logging"
)

const (
	symGetCurrentError  = "indy_get_current_error"
	symSetRuntimeConfig = "indy_set_runtime_config"
	symSetLogger        = "indy_set_logger"
)

// Library is an initialized binding to one loaded libindy. It owns the
// invocation registry and the callback trampolines, and every Command
// declared on it dispatches through it.
type Library struct {
	native  ffi.Library
	cfg     Config
	base    logging.Logger
	logger  logging.Logger
	metrics *Metrics

	registry *registry

	mu          sync.Mutex
	initialized atomic.Bool
	trampolines map[string]uintptr
}

// Open loads libindy for the running platform, or cfg.LibraryPath when set.
// The library is not usable until Init.
func Open(cfg Config) (*Library, error) {
	path := cfg.LibraryPath
	if path == "" {
		name, err := ffi.LibraryFile(runtime.GOOS)
		if err != nil {
			return nil, err
		}
		path = name
	}
	native, err := ffi.Open(path)
	if err != nil {
		return nil, err
	}
	return NewLibrary(native, cfg), nil
}

// NewLibrary wraps an already loaded native library.
func NewLibrary(native ffi.Library, cfg Config) *Library {
	base := cfg.Logger
	if base == nil {
		base = logging.New(nil)
	}
	return &Library{
		native:      native,
		cfg:         cfg,
		base:        base,
		logger:      base.With("component", "indy"),
		metrics:     cfg.Metrics,
		registry:    newRegistry(),
		trampolines: make(map[string]uintptr),
	}
}

// Init applies the runtime configuration and installs the native log bridge.
// It may succeed only once per Library.
func (l *Library) Init(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.initialized.Load() {
		return ErrAlreadyInitialized
	}

	doc, err := l.cfg.runtimeDocument()
	if err != nil {
		return err
	}
	if doc != "" {
		if err := l.setRuntimeConfig(doc); err != nil {
			return fmt.Errorf("set runtime config: %w", err)
		}
	}
	if err := l.installLogger(ctx); err != nil {
		return fmt.Errorf("install logger: %w", err)
	}

	l.initialized.Store(true)
	l.logger.Info(ctx, "libindy initialized", "runtime_config", doc != "")
	return nil
}

// Initialized reports whether Init has succeeded.
func (l *Library) Initialized() bool { return l.initialized.Load() }

// Implements reports whether the loaded library exports symbol.
func (l *Library) Implements(symbol string) bool { return l.native.Implements(symbol) }

// Pending returns the number of invocations awaiting a native completion,
// including cancelled ones whose completion has not arrived yet.
func (l *Library) Pending() int { return l.registry.len() }

func (l *Library) setRuntimeConfig(doc string) error {
	if !l.native.Implements(symSetRuntimeConfig) {
		return fmt.Errorf("%w: %s", ErrNotImplemented, symSetRuntimeConfig)
	}
	frame := ffi.NewFrame()
	defer frame.Release()
	return l.callSync(symSetRuntimeConfig, frame.CString(doc))
}

// callSync runs a non-callback native function and converts its status. The
// current error detail is thread local on the native side, so the OS thread
// is held until it has been read.
func (l *Library) callSync(symbol string, args ...uintptr) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	rc, err := l.native.Call(symbol, args...)
	if err != nil {
		return err
	}
	return l.nativeError(rc)
}

// trampoline returns the callback for a result layout, creating it once.
// Callbacks are never released, so the number of distinct layouts bounds the
// number of native callbacks.
func (l *Library) trampoline(results []ffi.Slot) (uintptr, error) {
	params := append([]ffi.Slot{ffi.Int32, ffi.Int32}, results...)
	key := layoutKey(params)

	l.mu.Lock()
	defer l.mu.Unlock()
	if cb, ok := l.trampolines[key]; ok {
		return cb, nil
	}
	cb, err := l.native.NewCallback(params, l.onComplete)
	if err != nil {
		return 0, fmt.Errorf("build trampoline %s: %w", key, err)
	}
	l.trampolines[key] = cb
	return cb, nil
}

func layoutKey(slots []ffi.Slot) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = s.String()
	}
	return "(" + strings.Join(parts, ",") + ")"
}

var (
	defaultMu  sync.Mutex
	defaultLib *Library
)

// Initialize opens and initializes the process-wide library. It fails with
// ErrAlreadyInitialized on every call after the first success.
func Initialize(ctx context.Context, cfg Config) (*Library, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLib != nil {
		return nil, ErrAlreadyInitialized
	}
	lib, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := lib.Init(ctx); err != nil {
		return nil, err
	}
	defaultLib = lib
	return lib, nil
}

// Default returns the library set up by Initialize.
func Default() (*Library, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLib == nil {
		return nil, ErrNotInitialized
	}
	return defaultLib, nil
}
