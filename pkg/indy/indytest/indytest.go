package indytest

import (
	"encoding/json"
	"fmt"
	"runtime"
	"sync"

	"github.com/sbca/indy-go/pkg/indy/ffi"
)

// Handler implements one native symbol. The returned status is the call's
// immediate return value.
type Handler func(call *Call) int32

type callback struct {
	params []ffi.Slot
	fn     ffi.CallbackFunc
}

// Library is a fake libindy. The zero value is not usable; call New.
type Library struct {
	mu            sync.Mutex
	handlers      map[string]Handler
	callbacks     map[uintptr]callback
	nextCallback  uintptr
	calls         map[string]int
	currentError  string
	runtimeConfig string
	logCallback   uintptr
	errFrames     []*ffi.Frame

	// failing serializes error completions so that each callback reads its
	// own current-error document.
	failing sync.Mutex
	wg      sync.WaitGroup
}

// New returns a fake that implements indy_get_current_error,
// indy_set_runtime_config and indy_set_logger.
func New() *Library {
	l := &Library{
		handlers:     make(map[string]Handler),
		callbacks:    make(map[uintptr]callback),
		nextCallback: 0x1000,
		calls:        make(map[string]int),
	}
	l.handlers["indy_get_current_error"] = l.getCurrentError
	l.handlers["indy_set_runtime_config"] = l.setRuntimeConfig
	l.handlers["indy_set_logger"] = l.setLogger
	return l
}

// Handle registers h for symbol, replacing any previous handler.
func (l *Library) Handle(symbol string, h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers[symbol] = h
}

// Remove makes symbol unimplemented.
func (l *Library) Remove(symbol string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.handlers, symbol)
}

func (l *Library) Implements(symbol string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.handlers[symbol]
	return ok
}

func (l *Library) Call(symbol string, args ...uintptr) (int32, error) {
	if len(args) > ffi.MaxArgs {
		return 0, fmt.Errorf("%w: %s takes %d", ffi.ErrTooManyArgs, symbol, len(args))
	}
	l.mu.Lock()
	h, ok := l.handlers[symbol]
	if ok {
		l.calls[symbol]++
	}
	l.mu.Unlock()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ffi.ErrNotImplemented, symbol)
	}
	return h(&Call{lib: l, Symbol: symbol, Args: append([]uintptr(nil), args...)}), nil
}

func (l *Library) NewCallback(params []ffi.Slot, fn ffi.CallbackFunc) (uintptr, error) {
	for i, s := range params {
		if !s.Valid() {
			return 0, fmt.Errorf("callback parameter %d: invalid slot %v", i, s)
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextCallback += 0x10
	l.callbacks[l.nextCallback] = callback{params: append([]ffi.Slot(nil), params...), fn: fn}
	return l.nextCallback, nil
}

// Callbacks returns the number of callbacks created so far.
func (l *Library) Callbacks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.callbacks)
}

// Calls returns how many times symbol was called.
func (l *Library) Calls(symbol string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[symbol]
}

// RuntimeConfig returns the document passed to indy_set_runtime_config.
func (l *Library) RuntimeConfig() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.runtimeConfig
}

// LoggerInstalled reports whether indy_set_logger received a log callback.
func (l *Library) LoggerInstalled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.logCallback != 0
}

// Log emits a native log record through the installed logger callback. It
// reports false when no logger is installed.
func (l *Library) Log(level uint32, target, message, modulePath, file string, line uint32) bool {
	l.mu.Lock()
	cb := l.logCallback
	l.mu.Unlock()
	if cb == 0 {
		return false
	}
	frame := ffi.NewFrame()
	defer frame.Release()
	l.Deliver(cb, 0, uintptr(level), frame.CString(target), frame.CString(message),
		frame.CString(modulePath), frame.CString(file), uintptr(line))
	return true
}

// Deliver invokes callback cb with raw words on the calling goroutine. The
// words are normalized per slot the way the native loader does.
func (l *Library) Deliver(cb uintptr, words ...uintptr) {
	l.mu.Lock()
	c, ok := l.callbacks[cb]
	l.mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("indytest: unknown callback %#x", cb))
	}
	if len(words) != len(c.params) {
		panic(fmt.Sprintf("indytest: callback takes %d words, got %d", len(c.params), len(words)))
	}
	args := make([]uintptr, len(words))
	for i, w := range words {
		args[i] = normalize(c.params[i], w)
	}
	c.fn(args)
}

// Wait blocks until every asynchronous completion has been delivered.
func (l *Library) Wait() {
	l.wg.Wait()
}

// SetCurrentError sets the document returned by indy_get_current_error.
func (l *Library) SetCurrentError(message, backtrace string) {
	doc, _ := json.Marshal(map[string]string{"message": message, "backtrace": backtrace})
	l.mu.Lock()
	l.currentError = string(doc)
	l.mu.Unlock()
}

// SetCurrentErrorRaw sets the current-error document verbatim.
func (l *Library) SetCurrentErrorRaw(doc string) {
	l.mu.Lock()
	l.currentError = doc
	l.mu.Unlock()
}

func (l *Library) clearCurrentError() {
	l.mu.Lock()
	l.currentError = ""
	l.mu.Unlock()
}

func (l *Library) getCurrentError(c *Call) int32 {
	l.mu.Lock()
	doc := l.currentError
	l.mu.Unlock()
	if doc == "" {
		ffi.Store(c.Args[0], 0)
		return 0
	}
	// Documents are kept for the life of the fake so a reader never sees
	// released memory.
	frame := ffi.NewFrame()
	ffi.Store(c.Args[0], frame.CString(doc))
	l.mu.Lock()
	l.errFrames = append(l.errFrames, frame)
	l.mu.Unlock()
	return 0
}

func (l *Library) setRuntimeConfig(c *Call) int32 {
	doc, _ := ffi.GoString(c.Args[0])
	l.mu.Lock()
	l.runtimeConfig = doc
	l.mu.Unlock()
	return 0
}

func (l *Library) setLogger(c *Call) int32 {
	l.mu.Lock()
	l.logCallback = c.Args[2]
	l.mu.Unlock()
	return 0
}

func normalize(s ffi.Slot, w uintptr) uintptr {
	switch s {
	case ffi.Int32, ffi.Uint32:
		return uintptr(uint32(w))
	case ffi.Bool:
		if uint8(w) != 0 {
			return 1
		}
		return 0
	}
	return w
}

// inThread runs fn on a new goroutine locked to its own OS thread.
func (l *Library) inThread(fn func()) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		fn()
	}()
}
