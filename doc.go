// Package mxlink bridges a Go host process to an external numeric-computation
// engine, exchanging named variables and executing statements remotely.
//
// # Overview
//
// mxlink manages engine sessions over the engine's C library: one session is
// one serial connection to a remote workspace of named variables. On top of
// statement evaluation and variable exchange it builds function-call
// semantics (MXCall), so a remote `result = f(args...)` is one Go call.
//
// # Basic Usage
//
//	session, _ := engine.Open(
//	    engine.WithDriver(native.New()),
//	    engine.WithMarshaler(native.NewMarshaler()),
//	)
//	defer session.Close()
//
//	// Evaluate a statement; whatever the engine prints lands on stdout.
//	session.Eval(`x = magic(4);`)
//
//	// Exchange variables
//	session.PutVariable("a", []float64{1, 2, 3})
//	arr, _ := session.GetVariable("x")
//
//	// Remote function call: s = sum(a)
//	outs, _ := session.MXCall("sum", 1, []float64{1, 2, 3})
//
// # Default Session
//
// A process-wide default session is created lazily on first use:
//
//	engine.SetDefaultOptions(engine.WithDriver(native.New()))
//	engine.Eval(`disp("hello")`)
//	engine.CloseDefault()
//
// See the [engine] and [driver/native] packages for detailed API
// documentation.
package mxlink
