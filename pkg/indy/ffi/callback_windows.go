//go:build windows && (amd64 || arm64)

package ffi

import "reflect"

var wordType = reflect.TypeFor[uintptr]()

// Windows callbacks take and return full words only.
func callbackType(params []Slot) reflect.Type {
	in := make([]reflect.Type, len(params))
	for i := range params {
		in[i] = wordType
	}
	return reflect.FuncOf(in, []reflect.Type{wordType}, false)
}

func callbackReturn(typ reflect.Type) []reflect.Value {
	return []reflect.Value{reflect.Zero(typ.Out(0))}
}

func fromValue(s Slot, v reflect.Value) uintptr {
	w := uintptr(v.Uint())
	switch s {
	case Int32, Uint32:
		return uintptr(uint32(w))
	case Bool:
		if uint8(w) != 0 {
			return 1
		}
		return 0
	default:
		return w
	}
}
