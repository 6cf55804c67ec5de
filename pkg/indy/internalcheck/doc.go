// Package internalcheck holds source policy tests for the indy packages.
//
// The tests load the packages with golang.org/x/tools/go/packages and walk
// their syntax trees. They guard rules that the compiler cannot: native
// memory access stays inside pkg/indy/ffi, and command arguments such as
// wallet keys and message buffers are never hex dumped or printed.
//
// # Internal Use Only
//
// This package has no API and should not be imported.
package internalcheck
