package indy

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/sbca/indy-go/pkg/indy/ffi"
)

// paramWidth is the number of ABI words a built-in parameter type occupies.
func paramWidth(t Type) int {
	if t == Buffer {
		return 2
	}
	return 1
}

func builtinEncoder(t Type) EncodeFunc {
	switch t {
	case String:
		return encodeString
	case Int:
		return encodeInt
	case Bool:
		return encodeBool
	case Buffer:
		return encodeBuffer
	case JSON:
		return encodeJSON
	}
	return nil
}

// optionalEncoder passes a null word for every slot when the value is absent.
func optionalEncoder(enc EncodeFunc, width int) EncodeFunc {
	return func(frame *ffi.Frame, v any) ([]uintptr, error) {
		if isAbsent(v) {
			return make([]uintptr, width), nil
		}
		return enc(frame, v)
	}
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func encodeString(frame *ffi.Frame, v any) ([]uintptr, error) {
	switch s := v.(type) {
	case string:
		return []uintptr{frame.CString(s)}, nil
	case fmt.Stringer:
		return []uintptr{frame.CString(s.String())}, nil
	}
	return nil, fmt.Errorf("%w: want string, got %T", ErrArgument, v)
}

func encodeInt(_ *ffi.Frame, v any) ([]uintptr, error) {
	n, err := toInt64(v)
	if err != nil {
		return nil, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d overflows int32", ErrArgument, n)
	}
	return []uintptr{uintptr(uint32(int32(n)))}, nil
}

func encodeBool(_ *ffi.Frame, v any) ([]uintptr, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("%w: want bool, got %T", ErrArgument, v)
	}
	if b {
		return []uintptr{1}, nil
	}
	return []uintptr{0}, nil
}

func encodeBuffer(frame *ffi.Frame, v any) ([]uintptr, error) {
	var b []byte
	switch t := v.(type) {
	case []byte:
		b = t
	case json.RawMessage:
		b = t
	default:
		return nil, fmt.Errorf("%w: want []byte, got %T", ErrArgument, v)
	}
	if uint64(len(b)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: buffer of %d bytes exceeds uint32 length", ErrArgument, len(b))
	}
	return []uintptr{frame.Bytes(b), uintptr(uint32(len(b)))}, nil
}

func encodeJSON(frame *ffi.Frame, v any) ([]uintptr, error) {
	switch t := v.(type) {
	case string:
		return []uintptr{frame.CString(t)}, nil
	case json.RawMessage:
		return []uintptr{frame.CString(string(t))}, nil
	case []byte:
		return []uintptr{frame.CString(string(t))}, nil
	}
	doc, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal %T: %v", ErrArgument, v, err)
	}
	return []uintptr{frame.CString(string(doc))}, nil
}

// Uint32Encoder encodes an unsigned 32-bit count, as used by search fetch and
// pool protocol commands.
func Uint32Encoder(_ *ffi.Frame, v any) ([]uintptr, error) {
	n, err := toInt64(v)
	if err != nil {
		return nil, err
	}
	if n < 0 || n > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d out of uint32 range", ErrArgument, n)
	}
	return []uintptr{uintptr(uint32(n))}, nil
}

// Uint64Encoder encodes an unsigned 64-bit value such as a unix timestamp.
func Uint64Encoder(_ *ffi.Frame, v any) ([]uintptr, error) {
	if u, ok := v.(uint64); ok {
		return []uintptr{uintptr(u)}, nil
	}
	n, err := toInt64(v)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d out of uint64 range", ErrArgument, n)
	}
	return []uintptr{uintptr(uint64(n))}, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return checkedUint(uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return checkedUint(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrArgument, n)
		}
		return i, nil
	case float64:
		if n != math.Trunc(n) || n < -(1<<63) || n >= 1<<63 {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrArgument, n)
		}
		return int64(n), nil
	}
	return 0, fmt.Errorf("%w: want integer, got %T", ErrArgument, v)
}

func checkedUint(u uint64) (int64, error) {
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d overflows int64", ErrArgument, u)
	}
	return int64(u), nil
}

func builtinSlots(t Type) []ffi.Slot {
	switch t {
	case String, JSON:
		return []ffi.Slot{ffi.Pointer}
	case Int:
		return []ffi.Slot{ffi.Int32}
	case Bool:
		return []ffi.Slot{ffi.Bool}
	case Buffer:
		return []ffi.Slot{ffi.Pointer, ffi.Uint32}
	}
	return nil
}

func builtinDecoder(t Type, optional bool) DecodeFunc {
	switch t {
	case String:
		return func(raw []uintptr) (any, error) {
			s, ok := ffi.GoString(raw[0])
			if !ok {
				return absent(optional, t)
			}
			return s, nil
		}
	case Int:
		return func(raw []uintptr) (any, error) {
			return int(int32(raw[0])), nil
		}
	case Bool:
		return func(raw []uintptr) (any, error) {
			return raw[0] != 0, nil
		}
	case Buffer:
		return func(raw []uintptr) (any, error) {
			n := uint32(raw[1])
			if raw[0] == 0 {
				if n != 0 {
					return nil, fmt.Errorf("%w: null buffer with length %d", ErrMalformedResult, n)
				}
				if optional {
					return nil, nil
				}
				return []byte{}, nil
			}
			return ffi.GoBytes(raw[0], n), nil
		}
	case JSON:
		return func(raw []uintptr) (any, error) {
			s, ok := ffi.GoString(raw[0])
			if !ok {
				return absent(optional, t)
			}
			var v any
			if err := json.Unmarshal([]byte(s), &v); err != nil {
				return nil, fmt.Errorf("%w: json result: %v", ErrMalformedResult, err)
			}
			return v, nil
		}
	}
	return nil
}

func absent(optional bool, t Type) (any, error) {
	if optional {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: missing %v result", ErrMalformedResult, t)
}

// Uint32Result decodes a single unsigned 32-bit word, such as the record
// count returned by credential searches.
var Uint32Result = Result{
	Slots:   []ffi.Slot{ffi.Uint32},
	Decoder: decodeUint32,
}

func decodeUint32(raw []uintptr) (any, error) {
	return int(uint32(raw[0])), nil
}
