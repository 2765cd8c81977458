// Package engine manages sessions with an external numeric-computation
// engine: statement evaluation, named-variable exchange, and remote
// function calls over the engine's native library.
//
// # Overview
//
// A [Session] owns one serial connection to the engine and its
// output-capture buffer. Statements execute synchronously in the session's
// remote workspace; whatever the engine prints is captured and forwarded to
// the session's output writer. Variables cross the boundary as opaque
// [Array] handles converted by a [Marshaler].
//
// The native library is abstracted behind the [Driver] interface. Production
// code uses the cgo-backed driver in driver/native; tests use [FakeDriver].
//
// # Sessions
//
//	session, err := engine.Open(
//	    engine.WithDriver(native.New()),
//	    engine.WithMarshaler(native.NewMarshaler()),
//	    engine.WithBufferSize(16384),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	session.Eval(`x = 1 + 1;`)
//	session.PutVariable("v", []float64{1, 2, 3})
//
// Close is idempotent, and a finalizer releases the native connection if a
// session is garbage collected without being closed.
//
// # Remote Calls
//
// MXCall layers function-call semantics over eval and variable exchange.
// Inputs are stored under generated temporary names, one call statement is
// evaluated, outputs are fetched back, and the temporaries are cleared:
//
//	// [m, n] = size(A)
//	outs, err := session.MXCall("size", 2, matrix)
//
// Remote errors raised by the called function are not structured errors:
// they appear only in the captured output, a property of the engine
// protocol this package preserves.
//
// # Default Session
//
// Package-level Eval, PutVariable, GetVariable, and MXCall operate on a
// process-wide default session managed by a [Registry]: created lazily on
// first use, replaced by RestartDefault, and torn down by CloseDefault.
package engine
