package indy

import (
	"fmt"

	"github.com/sbca/indy-go/pkg/indy/ffi"
)

// Type is the semantic type of a command parameter or result.
type Type uint8

const (
	String Type = iota + 1
	Int
	Bool
	Buffer
	// JSON accepts either a structured value, which is marshalled, or an
	// already serialized string.
	JSON
)

func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Buffer:
		return "buffer"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

func (t Type) builtin() bool { return t >= String && t <= JSON }

// EncodeFunc converts one argument into its ABI words. Pointers must come
// from frame so that they stay valid until the command completes.
type EncodeFunc func(frame *ffi.Frame, v any) ([]uintptr, error)

// DecodeFunc converts the raw callback words of one result into a Go value.
// It runs on the native callback thread while pointer words are valid and
// must copy anything it keeps.
type DecodeFunc func(raw []uintptr) (any, error)

// Param describes one command parameter.
type Param struct {
	Name     string
	Type     Type
	Optional bool
	// Encoder overrides the built-in encoding for Type.
	Encoder EncodeFunc
}

// Result describes one command result.
type Result struct {
	Type     Type
	Optional bool
	// Slots and Decoder override the built-in layout and decoding for Type.
	// Both must be set together.
	Slots   []ffi.Slot
	Decoder DecodeFunc
}

// Descriptor declares a libindy command as data.
type Descriptor struct {
	// Name is the name callers use; it defaults to Symbol.
	Name string
	// Symbol is the exported native function.
	Symbol  string
	Params  []Param
	Results []Result
}

func (d Descriptor) name() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Symbol
}

// validate checks everything that does not need the native library.
func (d Descriptor) validate() error {
	if d.Symbol == "" {
		return fmt.Errorf("%w: empty symbol", ErrInvalidDescriptor)
	}
	seen := make(map[string]bool, len(d.Params))
	for i, p := range d.Params {
		if p.Name == "" {
			return fmt.Errorf("%w: %s: parameter %d has no name", ErrInvalidDescriptor, d.Symbol, i)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: %s: duplicate parameter %q", ErrInvalidDescriptor, d.Symbol, p.Name)
		}
		seen[p.Name] = true
		if p.Encoder == nil && !p.Type.builtin() {
			return fmt.Errorf("%w: %s: parameter %q has type %v and no encoder", ErrUnsupportedType, d.Symbol, p.Name, p.Type)
		}
	}
	for i, r := range d.Results {
		switch {
		case (r.Decoder == nil) != (len(r.Slots) == 0):
			return fmt.Errorf("%w: %s: result %d must set both Slots and Decoder", ErrInvalidDescriptor, d.Symbol, i)
		case r.Decoder == nil && !r.Type.builtin():
			return fmt.Errorf("%w: %s: result %d has type %v and no decoder", ErrUnsupportedType, d.Symbol, i, r.Type)
		}
		for _, s := range r.Slots {
			if !s.Valid() {
				return fmt.Errorf("%w: %s: result %d has invalid slot %v", ErrInvalidDescriptor, d.Symbol, i, s)
			}
		}
	}
	return nil
}
