// Package native implements engine.Driver and engine.Marshaler over the
// engine's C library.
//
// The library and its headers ship with the engine installation, so the cgo
// binding is compiled only with the `matlab` build tag:
//
//	go build -tags matlab ./...
//
// with CGO_CFLAGS/CGO_LDFLAGS pointing at the installation's include and
// lib directories. Without the tag, New returns a driver whose Open fails
// with engine.ErrEngineUnavailable, and Available reports false.
package native
