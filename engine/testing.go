package engine

import (
	"fmt"
	"strings"
	"sync"
)

// FakeFunc implements one remote function for the fake engine. It receives
// the input arrays in call order and returns the output arrays in declared
// order.
type FakeFunc func(in []Array) []Array

// FakeDriver is an in-memory Driver that emulates just enough of the engine
// to exercise session logic without a native library: a per-handle variable
// workspace, `clear name;` statements, and call statements of the forms
// MXCall composes. Unknown functions produce captured error text rather
// than a structured error, matching the engine protocol.
//
// Use NewFake to construct it together with its paired FakeMarshaler.
type FakeDriver struct {
	marshaler *FakeMarshaler

	// Funcs maps remote function names to their fake implementations.
	Funcs map[string]FakeFunc

	// OnEval, when set, intercepts every statement: the returned text is
	// written to the capture buffer and the error is reported as a
	// session-level eval failure. Statement parsing is skipped.
	OnEval func(stmt string) (output string, err error)

	// Injected failures.
	OpenErr error
	EvalErr error
	PutErr  error
	GetErr  error

	mu       sync.Mutex
	next     Handle
	sessions map[Handle]*fakeWorkspace
}

type fakeWorkspace struct {
	vars       map[string]Array
	buf        []byte
	visible    bool
	statements []string
	closed     bool
}

// NewFake returns a fake driver and the marshaler it shares values with.
func NewFake() (*FakeDriver, *FakeMarshaler) {
	m := &FakeMarshaler{values: make(map[Array]any)}
	d := &FakeDriver{
		marshaler: m,
		Funcs:     make(map[string]FakeFunc),
		sessions:  make(map[Handle]*fakeWorkspace),
	}
	return d, m
}

func (d *FakeDriver) Open(command string) (Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.OpenErr != nil {
		return 0, d.OpenErr
	}
	d.next++
	// Engine windows start visible; hiding is an explicit request.
	d.sessions[d.next] = &fakeWorkspace{vars: make(map[string]Array), visible: true}
	return d.next, nil
}

// OpenCount returns how many connections have been opened.
func (d *FakeDriver) OpenCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int(d.next)
}

func (d *FakeDriver) Close(h Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ws, err := d.workspace(h)
	if err != nil {
		return err
	}
	ws.closed = true
	return nil
}

func (d *FakeDriver) RegisterOutputBuffer(h Handle, buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ws, err := d.workspace(h)
	if err != nil {
		return err
	}
	if len(buf) == 0 {
		buf = nil
	}
	ws.buf = buf
	return nil
}

func (d *FakeDriver) EvalString(h Handle, stmt string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ws, err := d.workspace(h)
	if err != nil {
		return err
	}
	if d.EvalErr != nil {
		return d.EvalErr
	}
	ws.statements = append(ws.statements, stmt)

	if d.OnEval != nil {
		text, err := d.OnEval(stmt)
		if err != nil {
			return err
		}
		ws.capture(text)
		return nil
	}

	ws.capture(d.interpret(ws, stmt))
	return nil
}

func (d *FakeDriver) PutVariable(h Handle, name string, value Array) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ws, err := d.workspace(h)
	if err != nil {
		return err
	}
	if d.PutErr != nil {
		return d.PutErr
	}
	// The engine copies on write; the caller keeps ownership of value.
	ws.vars[name] = d.marshaler.clone(value)
	return nil
}

func (d *FakeDriver) GetVariable(h Handle, name string) (Array, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ws, err := d.workspace(h)
	if err != nil {
		return 0, err
	}
	if d.GetErr != nil {
		return 0, d.GetErr
	}
	arr, ok := ws.vars[name]
	if !ok {
		return 0, fmt.Errorf("undefined variable %q", name)
	}
	// Reads hand out a fresh copy; the caller owns and releases it.
	return d.marshaler.clone(arr), nil
}

func (d *FakeDriver) SetVisible(h Handle, visible bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ws, err := d.workspace(h)
	if err != nil {
		return err
	}
	ws.visible = visible
	return nil
}

func (d *FakeDriver) workspace(h Handle) (*fakeWorkspace, error) {
	ws, ok := d.sessions[h]
	if !ok || ws.closed {
		return nil, fmt.Errorf("invalid handle %d", h)
	}
	return ws, nil
}

// interpret evaluates the statement forms the engine package emits: clears
// and (possibly assigning) function calls. Anything else is silently
// accepted, like a real engine evaluating an expression with no output.
func (d *FakeDriver) interpret(ws *fakeWorkspace, stmt string) string {
	stmt = strings.TrimSuffix(strings.TrimSpace(stmt), ";")

	if name, ok := strings.CutPrefix(stmt, "clear "); ok {
		delete(ws.vars, strings.TrimSpace(name))
		return ""
	}

	lhs, rhs, found := strings.Cut(stmt, " = ")
	if !found {
		rhs, lhs = stmt, ""
	}

	fn, argList, ok := parseCall(rhs)
	if !ok {
		return ""
	}

	impl, known := d.Funcs[fn]
	if !known {
		return fmt.Sprintf("Undefined function '%s'.\n", fn)
	}

	var in []Array
	for _, argName := range argList {
		arr, ok := ws.vars[argName]
		if !ok {
			return fmt.Sprintf("Undefined variable '%s'.\n", argName)
		}
		in = append(in, arr)
	}

	outs := impl(in)
	for i, outName := range parseLHS(lhs) {
		if i >= len(outs) {
			return fmt.Sprintf("Too many output arguments for '%s'.\n", fn)
		}
		ws.vars[outName] = outs[i]
	}
	return ""
}

func parseCall(expr string) (fn string, args []string, ok bool) {
	open := strings.IndexByte(expr, '(')
	if open <= 0 || !strings.HasSuffix(expr, ")") {
		return "", nil, false
	}
	fn = expr[:open]
	inner := expr[open+1 : len(expr)-1]
	if inner != "" {
		args = strings.Split(inner, ", ")
	}
	return fn, args, true
}

func parseLHS(lhs string) []string {
	lhs = strings.TrimSpace(lhs)
	if lhs == "" {
		return nil
	}
	if strings.HasPrefix(lhs, "[") && strings.HasSuffix(lhs, "]") {
		return strings.Split(lhs[1:len(lhs)-1], ", ")
	}
	return []string{lhs}
}

func (ws *fakeWorkspace) capture(text string) {
	if ws.buf == nil || text == "" {
		return
	}
	n := copy(ws.buf, text)
	if n < len(ws.buf) {
		ws.buf[n] = 0
	}
}

// Statements returns every statement evaluated on the handle, in order.
func (d *FakeDriver) Statements(h Handle) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ws, ok := d.sessions[h]; ok {
		return append([]string(nil), ws.statements...)
	}
	return nil
}

// Defined reports whether name exists in the handle's workspace.
func (d *FakeDriver) Defined(h Handle, name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	ws, ok := d.sessions[h]
	if !ok {
		return false
	}
	_, defined := ws.vars[name]
	return defined
}

// DefinedNames returns every variable name defined on the handle.
func (d *FakeDriver) DefinedNames(h Handle) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	ws, ok := d.sessions[h]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(ws.vars))
	for name := range ws.vars {
		names = append(names, name)
	}
	return names
}

// Visible reports the last window visibility requested on the handle.
func (d *FakeDriver) Visible(h Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ws, ok := d.sessions[h]; ok {
		return ws.visible
	}
	return false
}

// FakeMarshaler is the in-memory Marshaler paired with FakeDriver. Arrays
// are integer handles into a value table, so tests can observe leaks via
// Live.
type FakeMarshaler struct {
	// MarshalErr, when set, fails every Marshal call.
	MarshalErr error

	mu     sync.Mutex
	next   Array
	values map[Array]any
}

func (m *FakeMarshaler) Marshal(value any) (Array, error) {
	if m.MarshalErr != nil {
		return 0, m.MarshalErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store(value), nil
}

func (m *FakeMarshaler) Unmarshal(a Array) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[a]
	if !ok {
		return nil, fmt.Errorf("unknown array handle %d", a)
	}
	return v, nil
}

func (m *FakeMarshaler) Release(a Array) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, a)
}

// MustMarshal is a test helper that panics on marshal failure.
func (m *FakeMarshaler) MustMarshal(value any) Array {
	a, err := m.Marshal(value)
	if err != nil {
		panic(err)
	}
	return a
}

// Value returns the Go value behind an array handle, or nil if released.
func (m *FakeMarshaler) Value(a Array) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[a]
}

// Live returns the number of unreleased arrays.
func (m *FakeMarshaler) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

func (m *FakeMarshaler) clone(a Array) Array {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store(m.values[a])
}

func (m *FakeMarshaler) store(value any) Array {
	m.next++
	m.values[m.next] = value
	return m.next
}
