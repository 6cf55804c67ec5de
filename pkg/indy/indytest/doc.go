// Package indytest provides an in-memory libindy for tests.
//
// A Library implements ffi.Library. Tests register a Handler per exported
// symbol; the handler inspects the call's arguments and completes it, either
// on a fresh goroutine locked to its own OS thread (as libindy does from its
// worker threads) or synchronously. The fake keeps a current-error document
// like libindy's indy_get_current_error and records indy_set_runtime_config
// and indy_set_logger so initialization can be asserted.
package indytest
