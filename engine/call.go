package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// MXCall simulates the remote function call `out1, ... = fn(in...)` with
// nout results, using only eval and variable primitives:
//
//  1. each input is stored under a generated temporary name,
//  2. one composed call statement is evaluated,
//  3. each output is fetched by its generated name.
//
// The returned slice has exactly nout elements (nil when nout is zero);
// ownership of the arrays transfers to the caller. Temporaries are cleared
// from the remote workspace afterwards on success and failure alike; a
// failed put, eval, or get otherwise aborts the sequence and propagates its
// error.
func (s *Session) MXCall(fn string, nout int, in ...any) ([]Array, error) {
	ident, err := NewIdentifier(fn)
	if err != nil {
		return nil, fmt.Errorf("mxcall: %w", err)
	}
	if nout < 0 {
		return nil, fmt.Errorf("mxcall %s: negative nout %d", fn, nout)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("mxcall %s: %w", fn, ErrInvalidSession)
	}

	inNames := tempNames(ident, "in", len(in))
	outNames := tempNames(ident, "out", nout)

	// Clear every generated temporary, inputs first, on success and error
	// paths alike. Clearing a name that was never written is a remote
	// no-op, and cleanup failures on a dead connection are ignored.
	defer func() {
		for _, name := range inNames {
			s.evalLocked("clear " + name + ";")
		}
		for _, name := range outNames {
			s.evalLocked("clear " + name + ";")
		}
	}()

	for i, v := range in {
		if err := s.putLocked(inNames[i], v); err != nil {
			return nil, err
		}
	}

	if err := s.evalLocked(composeCall(ident, len(in), nout)); err != nil {
		return nil, err
	}

	if nout == 0 {
		return nil, nil
	}

	outs := make([]Array, 0, nout)
	for _, name := range outNames {
		arr, err := s.getLocked(name)
		if err != nil {
			s.releaseAll(outs)
			return nil, err
		}
		outs = append(outs, arr)
	}
	return outs, nil
}

// tempName derives the workspace name for one call temporary from the
// function name, direction ("in" or "out"), and 1-based index. The "jx_"
// prefix keeps temporaries clear of user variables while satisfying the
// engine's identifier rules (names must not begin with an underscore).
func tempName(fn Identifier, direction string, index int) string {
	return "jx_" + string(fn) + "_" + direction + "_" + strconv.Itoa(index)
}

func tempNames(fn Identifier, direction string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = tempName(fn, direction, i+1)
	}
	return names
}

// composeCall builds the statement evaluated by MXCall. The left-hand side
// is omitted for nout 0, a bare name for nout 1, and a bracketed list for
// nout 2 and above.
func composeCall(fn Identifier, nin, nout int) string {
	var b strings.Builder

	switch {
	case nout == 1:
		b.WriteString(tempName(fn, "out", 1))
		b.WriteString(" = ")
	case nout >= 2:
		b.WriteByte('[')
		for i := 1; i <= nout; i++ {
			if i > 1 {
				b.WriteString(", ")
			}
			b.WriteString(tempName(fn, "out", i))
		}
		b.WriteString("] = ")
	}

	b.WriteString(string(fn))
	b.WriteByte('(')
	for i := 1; i <= nin; i++ {
		if i > 1 {
			b.WriteString(", ")
		}
		b.WriteString(tempName(fn, "in", i))
	}
	b.WriteString(");")

	return b.String()
}
