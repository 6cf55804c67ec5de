//go:build (darwin || freebsd || linux || windows) && (amd64 || arm64)

package ffi

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/ebitengine/purego"
)

// Native is a shared library loaded into the process. It is never unloaded.
type Native struct {
	path   string
	handle uintptr

	mu   sync.Mutex
	syms map[string]uintptr
}

// Open loads the shared library at path. The path is passed to the platform
// loader unchanged, so a bare file name is looked up on the loader's search
// path.
func Open(path string) (*Native, error) {
	h, err := dlopen(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return &Native{path: path, handle: h, syms: make(map[string]uintptr)}, nil
}

// Path returns the path the library was opened with.
func (n *Native) Path() string { return n.path }

func (n *Native) lookup(symbol string) (uintptr, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if addr, ok := n.syms[symbol]; ok {
		return addr, addr != 0
	}
	addr, err := dlsym(n.handle, symbol)
	if err != nil {
		addr = 0
	}
	n.syms[symbol] = addr
	return addr, addr != 0
}

func (n *Native) Implements(symbol string) bool {
	_, ok := n.lookup(symbol)
	return ok
}

func (n *Native) Call(symbol string, args ...uintptr) (int32, error) {
	if len(args) > MaxArgs {
		return 0, fmt.Errorf("%w: %s takes %d", ErrTooManyArgs, symbol, len(args))
	}
	addr, ok := n.lookup(symbol)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotImplemented, symbol)
	}
	r1, _, _ := purego.SyscallN(addr, args...)
	return int32(r1), nil
}

func (n *Native) NewCallback(params []Slot, fn CallbackFunc) (cb uintptr, err error) {
	if err := checkSlots(params); err != nil {
		return 0, err
	}
	typ := callbackType(params)
	impl := reflect.MakeFunc(typ, func(in []reflect.Value) []reflect.Value {
		args := make([]uintptr, len(in))
		for i, v := range in {
			args[i] = fromValue(params[i], v)
		}
		fn(args)
		return callbackReturn(typ)
	})
	defer func() {
		if r := recover(); r != nil {
			cb, err = 0, fmt.Errorf("new callback %v: %v", params, r)
		}
	}()
	return purego.NewCallback(impl.Interface()), nil
}

var _ Library = (*Native)(nil)
