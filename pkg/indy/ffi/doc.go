// Package ffi is the only place where indy-go touches native memory.
//
// It loads the libindy shared library at runtime through purego (no cgo is
// required), resolves exported symbols by name, calls them with word-sized
// arguments, and builds C-callable callbacks with an exact parameter layout.
// Go memory handed to native code is pinned through a Frame, and native memory
// handed back to Go is copied out with GoString and GoBytes while it is still
// valid.
//
// Higher layers work against the Library interface so that tests can run
// against an in-memory fake (see package indytest).
package ffi
