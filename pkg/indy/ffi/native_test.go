package ffi_test

import (
	"errors"
	"testing"

	"github.com/sbca/indy-go/pkg/indy/ffi"
)

func TestOpenMissingLibrary(t *testing.T) {
	lib, err := ffi.Open("libindy-does-not-exist.so")
	if err == nil {
		t.Fatalf("expected load failure, got %+v", lib)
	}
	if errors.Is(err, ffi.ErrNotBuilt) {
		t.Skip("native loader not built for this target")
	}
}
