package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
)

// Session is one serial connection to the engine's remote workspace. It
// exclusively owns the native handle and the output-capture buffer.
//
// All operations are synchronous and blocking, and the engine connection is
// not safe for concurrent use; a per-session mutex serializes every call,
// including the whole multi-step MXCall sequence. There is no cancellation:
// a call blocks until the remote side returns.
type Session struct {
	driver    Driver
	marshaler Marshaler
	out       io.Writer

	mu     sync.Mutex
	handle Handle
	buf    []byte
	closed bool
}

// Open starts a new engine session.
//
// It fails with [ErrEngineUnavailable] when the driver reports the native
// library cannot be loaded, and with [ErrEngineOpenFailed] when the engine
// process could not start. With a non-zero buffer size the capture buffer
// is registered with the engine before any statement executes.
func Open(opts ...Option) (*Session, error) {
	cfg := defaultSessionConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.driver == nil {
		return nil, fmt.Errorf("open session: %w: no driver configured", ErrEngineUnavailable)
	}

	h, err := cfg.driver.Open(cfg.command)
	if err != nil {
		if errors.Is(err, ErrEngineUnavailable) {
			return nil, fmt.Errorf("open session: %w", err)
		}
		return nil, fmt.Errorf("open session: %w: %w", ErrEngineOpenFailed, err)
	}
	if h == 0 {
		return nil, fmt.Errorf("open session: %w: driver returned null handle", ErrEngineOpenFailed)
	}

	s := &Session{
		driver:    cfg.driver,
		marshaler: cfg.marshaler,
		out:       cfg.out,
		handle:    h,
	}

	if cfg.bufferSize > 0 {
		s.buf = make([]byte, cfg.bufferSize)
		if err := cfg.driver.RegisterOutputBuffer(h, s.buf); err != nil {
			cfg.driver.Close(h)
			return nil, fmt.Errorf("open session: register output buffer: %w: %w", ErrEngineOpenFailed, err)
		}
	}

	if !cfg.visible {
		// Best effort; headless platforms report failure here.
		s.driver.SetVisible(h, false)
	}

	// Release the native connection even if the owner forgets Close.
	runtime.SetFinalizer(s, (*Session).finalize)

	return s, nil
}

// Close terminates the session and invalidates its handle. It is
// idempotent: closing an already-closed session is a no-op returning nil.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Session) closeLocked() error {
	if s.closed {
		return nil
	}
	s.closed = true
	runtime.SetFinalizer(s, nil)

	// The engine holds a raw pointer into buf; detach it before the handle
	// goes away.
	if s.buf != nil {
		s.driver.RegisterOutputBuffer(s.handle, nil)
		s.buf = nil
	}

	err := s.driver.Close(s.handle)
	s.handle = 0
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}

func (s *Session) finalize() {
	s.Close()
}

// Closed reports whether the session has been closed.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Marshaler returns the marshaler the session converts values with. Arrays
// fetched through the session must be released via this marshaler.
func (s *Session) Marshaler() Marshaler {
	return s.marshaler
}

// Eval executes one statement in the session's remote workspace. Captured
// output, if any, is forwarded once to the session's output writer
// immediately after execution.
//
// Eval fails with [ErrEval] only on session-level failure; errors raised by
// the statement itself (undefined functions, syntax errors) appear only in
// the captured output.
func (s *Session) Eval(stmt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evalLocked(stmt)
}

func (s *Session) evalLocked(stmt string) error {
	if s.closed {
		return fmt.Errorf("eval: %w", ErrInvalidSession)
	}

	// The buffer has no append semantics: the engine overwrites it on every
	// statement. Zero the terminator so stale text from the previous call
	// can never be re-read.
	if len(s.buf) > 0 {
		s.buf[0] = 0
	}

	if err := s.driver.EvalString(s.handle, stmt); err != nil {
		return fmt.Errorf("%w: %w", ErrEval, err)
	}

	if text := capturedText(s.buf); text != "" {
		io.WriteString(s.out, text)
	}
	return nil
}

// capturedText decodes the buffer's contents up to its NUL terminator.
func capturedText(buf []byte) string {
	if len(buf) == 0 {
		return ""
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}
