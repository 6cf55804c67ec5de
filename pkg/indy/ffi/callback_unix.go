//go:build (darwin || freebsd || linux) && (amd64 || arm64)

package ffi

import "reflect"

var slotTypes = map[Slot]reflect.Type{
	Int32:   reflect.TypeFor[int32](),
	Uint32:  reflect.TypeFor[uint32](),
	Uint64:  reflect.TypeFor[uint64](),
	Bool:    reflect.TypeFor[bool](),
	Pointer: reflect.TypeFor[uintptr](),
}

func callbackType(params []Slot) reflect.Type {
	in := make([]reflect.Type, len(params))
	for i, s := range params {
		in[i] = slotTypes[s]
	}
	return reflect.FuncOf(in, nil, false)
}

func callbackReturn(reflect.Type) []reflect.Value { return nil }

func fromValue(s Slot, v reflect.Value) uintptr {
	switch s {
	case Int32:
		return uintptr(uint32(v.Int()))
	case Bool:
		if v.Bool() {
			return 1
		}
		return 0
	default:
		return uintptr(v.Uint())
	}
}
