package ffi

import (
	"runtime"
	"unsafe"
)

// Frame owns the Go memory handed to native code for one invocation. Every
// pointer returned by a Frame stays pinned and valid until Release.
//
// A Frame is not safe for concurrent use.
type Frame struct {
	pinner   runtime.Pinner
	bufs     [][]byte
	cells    []*uintptr
	released bool
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{}
}

// CString copies s into a NUL-terminated buffer and returns its address.
func (f *Frame) CString(s string) uintptr {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return f.pin(buf)
}

// Bytes copies b and returns the address of the copy. An empty slice yields
// a null pointer.
func (f *Frame) Bytes(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	buf := make([]byte, len(b))
	copy(buf, b)
	return f.pin(buf)
}

// Cell allocates a pointer-sized out parameter. The returned address is
// passed to native code, which stores a word that is then read through the
// returned Go pointer.
func (f *Frame) Cell() (uintptr, *uintptr) {
	cell := new(uintptr)
	f.pinner.Pin(cell)
	f.cells = append(f.cells, cell)
	return uintptr(unsafe.Pointer(cell)), cell
}

// Release unpins everything held by the frame. It is safe to call more than
// once.
func (f *Frame) Release() {
	if f == nil || f.released {
		return
	}
	f.released = true
	f.pinner.Unpin()
	f.bufs = nil
	f.cells = nil
}

func (f *Frame) pin(buf []byte) uintptr {
	f.pinner.Pin(&buf[0])
	f.bufs = append(f.bufs, buf)
	return uintptr(unsafe.Pointer(&buf[0]))
}

// GoString copies the NUL-terminated string at p. It reports false for a
// null pointer.
func GoString(p uintptr) (string, bool) {
	if p == 0 {
		return "", false
	}
	base := toPointer(p)
	n := 0
	for *(*byte)(unsafe.Add(base, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(base), n)), true
}

// GoBytes copies n bytes starting at p. A null pointer yields nil.
func GoBytes(p uintptr, n uint32) []byte {
	if p == 0 {
		return nil
	}
	out := make([]byte, n)
	if n > 0 {
		copy(out, unsafe.Slice((*byte)(toPointer(p)), n))
	}
	return out
}

// Store writes the word v at address addr, which must point at memory the
// caller owns, such as a Frame cell.
func Store(addr, v uintptr) {
	*(*uintptr)(toPointer(addr)) = v
}

// toPointer converts without tripping the uintptr-to-pointer vet check; every
// address reaching it is either pinned Go memory or native memory.
func toPointer(p uintptr) unsafe.Pointer {
	return *(*unsafe.Pointer)(unsafe.Pointer(&p))
}
