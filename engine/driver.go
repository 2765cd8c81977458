package engine

// Handle is an opaque native engine connection handle. The zero Handle is
// invalid; drivers must never return it alongside a nil error.
type Handle uintptr

// Array is an opaque handle to engine-native data, exchanged by reference.
// Arrays are produced and consumed only through a [Marshaler]; the engine
// package never inspects their contents.
type Array uintptr

// Driver is the contract with the native engine library. Implementations
// wrap the engine's C entry points (see driver/native); tests use the
// in-memory [FakeDriver].
//
// Status-code semantics follow the native library: a nil error means the
// call reported success, a non-nil error means it reported failure. Exact
// failure causes are opaque to this package.
type Driver interface {
	// Open starts an engine connection using the given startup command
	// (empty selects the library default) and returns its handle.
	Open(command string) (Handle, error)

	// Close terminates the connection. The handle is invalid afterwards.
	Close(h Handle) error

	// RegisterOutputBuffer registers buf as the capture target for text the
	// engine prints while evaluating statements. A nil or empty buf
	// deregisters any previous buffer and disables capture.
	RegisterOutputBuffer(h Handle, buf []byte) error

	// EvalString executes one statement in the session's remote workspace.
	// An error indicates session-level failure only; statement-level errors
	// surface as captured text.
	EvalString(h Handle, stmt string) error

	// PutVariable writes an array into the remote workspace under name.
	PutVariable(h Handle, name string, value Array) error

	// GetVariable reads the array stored under name. Ownership of the
	// returned Array transfers to the caller.
	GetVariable(h Handle, name string) (Array, error)

	// SetVisible toggles the engine's window on platforms that have one.
	// Best effort; callers may ignore the error.
	SetVisible(h Handle, visible bool) error
}

// Marshaler converts between Go values and engine-native arrays. It is a
// collaborator of this package: which Go types are supported is up to the
// implementation (see driver/native for the cgo-backed one).
type Marshaler interface {
	// Marshal converts a Go value into a newly allocated Array.
	Marshal(value any) (Array, error)

	// Unmarshal converts an Array back into a Go value.
	Unmarshal(a Array) (any, error)

	// Release frees an Array previously returned by Marshal or fetched
	// through a session. Safe to call once per array only.
	Release(a Array)
}
