package engine

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestComposeCallSingleOutput(t *testing.T) {
	got := composeCall("sum", 1, 1)
	want := "jx_sum_out_1 = sum(jx_sum_in_1);"
	if got != want {
		t.Errorf("composed %q, want %q", got, want)
	}
}

func TestComposeCallMultipleOutputs(t *testing.T) {
	got := composeCall("size", 1, 2)
	want := "[jx_size_out_1, jx_size_out_2] = size(jx_size_in_1);"
	if got != want {
		t.Errorf("composed %q, want %q", got, want)
	}
}

func TestComposeCallNoOutputs(t *testing.T) {
	got := composeCall("plot", 2, 0)
	want := "plot(jx_plot_in_1, jx_plot_in_2);"
	if got != want {
		t.Errorf("composed %q, want %q", got, want)
	}
}

func TestComposeCallNoInputs(t *testing.T) {
	got := composeCall("rand", 0, 1)
	want := "jx_rand_out_1 = rand();"
	if got != want {
		t.Errorf("composed %q, want %q", got, want)
	}
}

func TestMXCallSingleOutput(t *testing.T) {
	s, d, m := openFake(t)

	d.Funcs["sum"] = func(in []Array) []Array {
		total := 0.0
		for _, v := range m.Value(in[0]).([]float64) {
			total += v
		}
		return []Array{m.MustMarshal(total)}
	}

	outs, err := s.MXCall("sum", 1, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("mxcall failed: %v", err)
	}
	if len(outs) != 1 {
		t.Fatalf("expected 1 output, got %d", len(outs))
	}
	defer m.Release(outs[0])

	if got := m.Value(outs[0]); got != 6.0 {
		t.Errorf("expected 6, got %v", got)
	}

	stmts := d.Statements(s.handle)
	want := []string{
		"jx_sum_out_1 = sum(jx_sum_in_1);",
		"clear jx_sum_in_1;",
		"clear jx_sum_out_1;",
	}
	if len(stmts) != len(want) {
		t.Fatalf("expected statements %q, got %q", want, stmts)
	}
	for i := range want {
		if stmts[i] != want[i] {
			t.Errorf("statement %d: expected %q, got %q", i, want[i], stmts[i])
		}
	}
}

func TestMXCallMultipleInputs(t *testing.T) {
	s, d, m := openFake(t)

	d.Funcs["sub"] = func(in []Array) []Array {
		a := m.Value(in[0]).(float64)
		b := m.Value(in[1]).(float64)
		return []Array{m.MustMarshal(a - b)}
	}

	outs, err := s.MXCall("sub", 1, 5.0, 2.0)
	if err != nil {
		t.Fatalf("mxcall failed: %v", err)
	}
	defer m.Release(outs[0])

	if got := m.Value(outs[0]); got != 3.0 {
		t.Errorf("expected 3, got %v", got)
	}
}

func TestMXCallZeroOutputs(t *testing.T) {
	s, d, _ := openFake(t)

	called := false
	d.Funcs["reset"] = func(in []Array) []Array {
		called = true
		return nil
	}

	outs, err := s.MXCall("reset", 0)
	if err != nil {
		t.Fatalf("mxcall failed: %v", err)
	}
	if outs != nil {
		t.Errorf("expected no outputs, got %v", outs)
	}
	if !called {
		t.Error("remote function never invoked")
	}

	if stmt := d.Statements(s.handle)[0]; stmt != "reset();" {
		t.Errorf("expected statement without lhs, got %q", stmt)
	}
}

func TestMXCallLeavesNoTemporaries(t *testing.T) {
	s, d, m := openFake(t)

	d.Funcs["size"] = func(in []Array) []Array {
		return []Array{m.MustMarshal(2.0), m.MustMarshal(3.0)}
	}

	outs, err := s.MXCall("size", 2, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("mxcall failed: %v", err)
	}
	for _, a := range outs {
		m.Release(a)
	}

	for _, name := range d.DefinedNames(s.handle) {
		if strings.HasPrefix(name, "jx_") {
			t.Errorf("temporary %q remains defined", name)
		}
	}
}

func TestMXCallCleanupRunsOnGetFailure(t *testing.T) {
	s, d, _ := openFake(t)

	// Declares one output but produces none, so the fetch step fails.
	d.Funcs["broken"] = func(in []Array) []Array {
		return nil
	}

	_, err := s.MXCall("broken", 1, 1.0)
	if !errors.Is(err, ErrGetVariable) {
		t.Fatalf("expected ErrGetVariable, got: %v", err)
	}

	for _, name := range d.DefinedNames(s.handle) {
		if strings.HasPrefix(name, "jx_") {
			t.Errorf("temporary %q leaked after failed call", name)
		}
	}
}

func TestMXCallCleanupRunsOnMarshalFailure(t *testing.T) {
	s, d, m := openFake(t)
	m.MarshalErr = errors.New("unsupported type")

	_, err := s.MXCall("f", 1, struct{}{})
	if !errors.Is(err, ErrPutVariable) {
		t.Fatalf("expected ErrPutVariable, got: %v", err)
	}

	stmts := d.Statements(s.handle)
	want := []string{"clear jx_f_in_1;", "clear jx_f_out_1;"}
	if len(stmts) != len(want) {
		t.Fatalf("expected cleanup statements %q, got %q", want, stmts)
	}
	for i := range want {
		if stmts[i] != want[i] {
			t.Errorf("statement %d: expected %q, got %q", i, want[i], stmts[i])
		}
	}
}

func TestMXCallUnknownFunctionSurfacesAsText(t *testing.T) {
	var out bytes.Buffer
	s, _, _ := openFake(t, WithOutput(&out))

	_, err := s.MXCall("quux", 1, 1.0)

	// The call statement itself succeeds; the remote error is plain text
	// and only the output fetch reports a structured failure.
	if !errors.Is(err, ErrGetVariable) {
		t.Fatalf("expected ErrGetVariable, got: %v", err)
	}
	if !strings.Contains(out.String(), "Undefined function 'quux'") {
		t.Errorf("expected remote error text in output, got %q", out.String())
	}
	if errors.Is(err, ErrEval) {
		t.Errorf("remote statement error must not map to ErrEval: %v", err)
	}
}

func TestMXCallInvalidFunctionName(t *testing.T) {
	s, _, _ := openFake(t)

	if _, err := s.MXCall("_hidden", 0); err == nil {
		t.Error("expected error for reserved function name")
	}
	if _, err := s.MXCall("", 0); err == nil {
		t.Error("expected error for empty function name")
	}
}

func TestMXCallNegativeNout(t *testing.T) {
	s, _, _ := openFake(t)

	if _, err := s.MXCall("sum", -1, 1.0); err == nil {
		t.Error("expected error for negative nout")
	}
}

func TestMXCallAfterClose(t *testing.T) {
	s, _, _ := openFake(t)
	s.Close()

	if _, err := s.MXCall("sum", 1, 1.0); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected ErrInvalidSession, got: %v", err)
	}
}

func TestMXCallDeadConnection(t *testing.T) {
	s, d, _ := openFake(t)
	d.EvalErr = errors.New("engine gone")

	_, err := s.MXCall("sum", 1, 1.0)
	if !errors.Is(err, ErrEval) {
		t.Errorf("expected ErrEval, got: %v", err)
	}
}
