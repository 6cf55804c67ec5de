package ffi

import (
	"errors"
	"fmt"
)

// Slot is the ABI kind of a single word passed to or from native code.
type Slot uint8

const (
	Int32 Slot = iota + 1
	Uint32
	Uint64
	Bool
	Pointer
)

func (s Slot) String() string {
	switch s {
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Bool:
		return "bool"
	case Pointer:
		return "pointer"
	default:
		return fmt.Sprintf("slot(%d)", uint8(s))
	}
}

// Valid reports whether s is a known slot kind.
func (s Slot) Valid() bool {
	return s >= Int32 && s <= Pointer
}

// CallbackFunc receives the raw callback arguments, one word per declared
// slot. Integer slots are zero-extended, Bool slots are 0 or 1. Pointer slots
// are only valid until the function returns.
type CallbackFunc func(args []uintptr)

// Library is a loaded native library.
type Library interface {
	// Implements reports whether the library exports symbol.
	Implements(symbol string) bool
	// Call invokes symbol with the given words and returns its int32 result.
	Call(symbol string, args ...uintptr) (int32, error)
	// NewCallback returns a C function pointer with the given parameter
	// layout that forwards to fn. Callbacks live until the process exits.
	NewCallback(params []Slot, fn CallbackFunc) (uintptr, error)
}

var (
	// ErrNotImplemented is returned when a symbol is absent from the library.
	ErrNotImplemented = errors.New("symbol not implemented by native library")

	// ErrUnsupportedPlatform is returned when no library file is known for
	// the running operating system.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNotBuilt is returned on targets where dynamic loading is not
	// available in this build.
	ErrNotBuilt = errors.New("native loader not built for this target")

	// ErrTooManyArgs is returned when a call exceeds the loader's argument limit.
	ErrTooManyArgs = errors.New("too many native call arguments")
)

// MaxArgs is the largest number of words a single Call accepts.
const MaxArgs = 15

var libraryFiles = map[string]string{
	"darwin":  "libindy.dylib",
	"freebsd": "libindy.so",
	"linux":   "libindy.so",
	"windows": "indy.dll",
}

// LibraryFile returns the libindy file name for the given GOOS.
func LibraryFile(goos string) (string, error) {
	name, ok := libraryFiles[goos]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
	return name, nil
}

func checkSlots(params []Slot) error {
	for i, s := range params {
		if !s.Valid() {
			return fmt.Errorf("callback parameter %d: invalid slot %v", i, s)
		}
	}
	return nil
}
