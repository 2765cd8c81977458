package engine

import "sync"

// Registry holds at most one live session, created lazily on first use and
// replaceable or clearable independently of explicitly-managed sessions.
// The read-check-create sequence is mutex-guarded, so concurrent first use
// yields exactly one session.
type Registry struct {
	mu      sync.Mutex
	opts    []Option
	session *Session
}

// NewRegistry creates a registry whose sessions are opened with opts.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{opts: opts}
}

// SetOptions replaces the options used for the next session creation. It
// does not touch a session that is already live.
func (r *Registry) SetOptions(opts ...Option) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts = opts
}

// Session returns the current session if live, else creates and stores one.
func (r *Registry) Session() (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil && !r.session.Closed() {
		return r.session, nil
	}
	return r.openLocked(r.opts)
}

// Restart closes the existing session if live, then creates and stores a
// replacement with the given output buffer size.
func (r *Registry) Restart(bufferSize int) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		r.session.Close()
		r.session = nil
	}

	opts := make([]Option, 0, len(r.opts)+1)
	opts = append(opts, r.opts...)
	opts = append(opts, WithBufferSize(bufferSize))
	return r.openLocked(opts)
}

// Close closes the stored session, if any, and clears the slot.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return nil
	}
	err := r.session.Close()
	r.session = nil
	return err
}

func (r *Registry) openLocked(opts []Option) (*Session, error) {
	s, err := Open(opts...)
	if err != nil {
		return nil, err
	}
	r.session = s
	return s, nil
}

// defaultRegistry is the process-wide default session slot.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry backing the package-level
// default-session functions.
func Default() *Registry {
	return defaultRegistry
}

// SetDefaultOptions configures how the default session is opened. Call it
// before first use; a live default session keeps its old configuration
// until it is closed or restarted.
func SetDefaultOptions(opts ...Option) {
	defaultRegistry.SetOptions(opts...)
}

// Eval evaluates a statement on the default session, creating it if needed.
func Eval(stmt string) error {
	s, err := defaultRegistry.Session()
	if err != nil {
		return err
	}
	return s.Eval(stmt)
}

// PutVariable writes a value into the default session's workspace.
func PutVariable(name string, value any) error {
	s, err := defaultRegistry.Session()
	if err != nil {
		return err
	}
	return s.PutVariable(name, value)
}

// GetVariable reads a value from the default session's workspace.
func GetVariable(name string) (Array, error) {
	s, err := defaultRegistry.Session()
	if err != nil {
		return 0, err
	}
	return s.GetVariable(name)
}

// MXCall performs a remote function call on the default session.
func MXCall(fn string, nout int, in ...any) ([]Array, error) {
	s, err := defaultRegistry.Session()
	if err != nil {
		return nil, err
	}
	return s.MXCall(fn, nout, in...)
}

// RestartDefault replaces the default session, closing any live one first.
func RestartDefault(bufferSize int) (*Session, error) {
	return defaultRegistry.Restart(bufferSize)
}

// CloseDefault closes the default session, if any.
func CloseDefault() error {
	return defaultRegistry.Close()
}
