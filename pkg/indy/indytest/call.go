package indytest

import (
	"encoding/json"
	"fmt"

	"github.com/sbca/indy-go/pkg/indy/ffi"
)

// Call is one invocation of a fake symbol. For callback commands Args holds
// (handle, params..., callback); the accessors index params only.
//
// Argument pointers stay valid until the call is completed.
type Call struct {
	lib    *Library
	Symbol string
	Args   []uintptr
}

// Handle returns the invocation handle.
func (c *Call) Handle() int32 { return int32(c.Args[0]) }

// Callback returns the completion callback.
func (c *Call) Callback() uintptr { return c.Args[len(c.Args)-1] }

// Params returns the parameter words between the handle and the callback.
func (c *Call) Params() []uintptr { return c.Args[1 : len(c.Args)-1] }

// Word returns parameter word i.
func (c *Call) Word(i int) uintptr { return c.Params()[i] }

// String reads parameter word i as a C string.
func (c *Call) String(i int) (string, bool) { return ffi.GoString(c.Word(i)) }

// Int reads parameter word i as an int32.
func (c *Call) Int(i int) int32 { return int32(c.Word(i)) }

// Uint32 reads parameter word i as a uint32.
func (c *Call) Uint32(i int) uint32 { return uint32(c.Word(i)) }

// Uint64 reads parameter word i as a uint64.
func (c *Call) Uint64(i int) uint64 { return uint64(c.Word(i)) }

// Bool reads parameter word i as a bool.
func (c *Call) Bool(i int) bool { return uint8(c.Word(i)) != 0 }

// Bytes reads the buffer whose pointer is word i and length is word i+1.
func (c *Call) Bytes(i int) []byte { return ffi.GoBytes(c.Word(i), uint32(c.Word(i+1))) }

// JSON decodes the C string in parameter word i into out.
func (c *Call) JSON(i int, out any) error {
	s, ok := c.String(i)
	if !ok {
		return fmt.Errorf("indytest: parameter %d is null", i)
	}
	return json.Unmarshal([]byte(s), out)
}

// Buffer is a result value that delivers Data as a (pointer, length) pair
// with an explicit length, which may be shorter than Data.
type Buffer struct {
	Data []byte
	Len  uint32
}

// Raw is a result value delivered as the given words unchanged.
type Raw []uintptr

// Complete delivers a successful completion from another OS thread.
// Results are encoded by Go type: string and JSON-able values as C strings,
// []byte as (pointer, length), integers and bools as words, nil as a null
// word.
func (c *Call) Complete(results ...any) {
	c.lib.inThread(func() { c.deliver(0, results) })
}

// CompleteNow delivers a completion with status code on the calling
// goroutine before the native call returns.
func (c *Call) CompleteNow(code int32, results ...any) {
	c.deliver(code, results)
}

// Fail delivers a failed completion from another OS thread with message as
// the current error.
func (c *Call) Fail(code int32, message string) {
	c.lib.inThread(func() {
		c.lib.failing.Lock()
		defer c.lib.failing.Unlock()
		c.lib.SetCurrentError(message, "")
		defer c.lib.clearCurrentError()
		c.deliver(code, nil)
	})
}

// Reject sets message as the current error and returns code, for handlers
// that fail synchronously.
func (c *Call) Reject(code int32, message string) int32 {
	c.lib.SetCurrentError(message, "")
	return code
}

// Later returns a function that completes the call when invoked, for tests
// that control delivery order.
func (c *Call) Later(results ...any) func() {
	return func() { c.deliver(0, results) }
}

func (c *Call) deliver(code int32, results []any) {
	frame := ffi.NewFrame()
	defer frame.Release()
	words := []uintptr{uintptr(uint32(c.Handle())), uintptr(uint32(code))}
	if code == 0 {
		for _, r := range results {
			words = append(words, encode(frame, r)...)
		}
	} else {
		words = append(words, c.lib.zeroResults(c.Callback())...)
	}
	c.lib.Deliver(c.Callback(), words...)
}

// zeroResults returns null words for every result slot of cb.
func (l *Library) zeroResults(cb uintptr) []uintptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.callbacks[cb].params) - 2
	if n < 0 {
		n = 0
	}
	return make([]uintptr, n)
}

func encode(frame *ffi.Frame, v any) []uintptr {
	switch t := v.(type) {
	case nil:
		return []uintptr{0}
	case Raw:
		return t
	case Buffer:
		return []uintptr{frame.Bytes(t.Data), uintptr(t.Len)}
	case string:
		return []uintptr{frame.CString(t)}
	case []byte:
		return []uintptr{frame.Bytes(t), uintptr(uint32(len(t)))}
	case bool:
		if t {
			return []uintptr{1}
		}
		return []uintptr{0}
	case int:
		return []uintptr{uintptr(uint32(int32(t)))}
	case int32:
		return []uintptr{uintptr(uint32(t))}
	case uint32:
		return []uintptr{uintptr(t)}
	case uint64:
		return []uintptr{uintptr(t)}
	case uintptr:
		return []uintptr{t}
	}
	doc, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("indytest: encode %T: %v", v, err))
	}
	return []uintptr{frame.CString(string(doc))}
}
