//go:build !((darwin || freebsd || linux || windows) && (amd64 || arm64))

package ffi

// Native is unavailable on this target.
type Native struct{}

// Open always fails with ErrNotBuilt on this target.
func Open(path string) (*Native, error) {
	return nil, ErrNotBuilt
}

func (n *Native) Path() string { return "" }

func (n *Native) Implements(string) bool { return false }

func (n *Native) Call(string, ...uintptr) (int32, error) { return 0, ErrNotBuilt }

func (n *Native) NewCallback([]Slot, CallbackFunc) (uintptr, error) { return 0, ErrNotBuilt }

var _ Library = (*Native)(nil)
