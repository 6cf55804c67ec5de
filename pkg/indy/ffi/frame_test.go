package ffi_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sbca/indy-go/pkg/indy/ffi"
)

func TestFrameStringRoundTrip(t *testing.T) {
	f := ffi.NewFrame()
	defer f.Release()

	for _, s := range []string{"", "did:sov:abc", "ünïcödé"} {
		p := f.CString(s)
		if p == 0 {
			t.Fatalf("CString(%q) returned null", s)
		}
		got, ok := ffi.GoString(p)
		if !ok || got != s {
			t.Fatalf("GoString = %q, %v; want %q", got, ok, s)
		}
	}
}

func TestGoStringNull(t *testing.T) {
	if s, ok := ffi.GoString(0); ok || s != "" {
		t.Fatalf("GoString(0) = %q, %v", s, ok)
	}
}

func TestFrameBytesCopies(t *testing.T) {
	f := ffi.NewFrame()
	defer f.Release()

	src := []byte{1, 2, 3, 4, 5}
	p := f.Bytes(src)
	src[0] = 9

	got := ffi.GoBytes(p, 3)
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("GoBytes = %v", got)
	}
	if f.Bytes(nil) != 0 {
		t.Fatalf("empty buffer should encode as null")
	}
	if ffi.GoBytes(0, 4) != nil {
		t.Fatalf("GoBytes of null pointer should be nil")
	}
	if b := ffi.GoBytes(p, 0); b == nil || len(b) != 0 {
		t.Fatalf("zero-length GoBytes = %v", b)
	}
}

func TestFrameCell(t *testing.T) {
	f := ffi.NewFrame()
	addr, cell := f.Cell()
	ffi.Store(addr, 42)
	if *cell != 42 {
		t.Fatalf("cell = %d", *cell)
	}
	f.Release()
	f.Release()
}

func TestLibraryFile(t *testing.T) {
	cases := map[string]string{
		"darwin":  "libindy.dylib",
		"linux":   "libindy.so",
		"windows": "indy.dll",
	}
	for goos, want := range cases {
		got, err := ffi.LibraryFile(goos)
		if err != nil || got != want {
			t.Fatalf("LibraryFile(%s) = %q, %v", goos, got, err)
		}
	}
	if _, err := ffi.LibraryFile("plan9"); !errors.Is(err, ffi.ErrUnsupportedPlatform) {
		t.Fatalf("expected ErrUnsupportedPlatform, got %v", err)
	}
}

func TestSlotString(t *testing.T) {
	if ffi.Pointer.String() != "pointer" || ffi.Slot(0).Valid() {
		t.Fatalf("unexpected slot metadata")
	}
}
