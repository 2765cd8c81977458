package engine

import (
	"errors"
	"testing"
)

func TestPutGetRoundtrip(t *testing.T) {
	s, d, m := openFake(t)

	if err := s.PutVariable("a", 3.5); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if !d.Defined(s.handle, "a") {
		t.Fatal("variable not defined after put")
	}

	arr, err := s.GetVariable("a")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer m.Release(arr)

	if got := m.Value(arr); got != 3.5 {
		t.Errorf("expected 3.5, got %v", got)
	}
}

func TestGetUndefinedVariable(t *testing.T) {
	s, _, _ := openFake(t)

	_, err := s.GetVariable("nope")
	if !errors.Is(err, ErrGetVariable) {
		t.Errorf("expected ErrGetVariable, got: %v", err)
	}
}

func TestPutMarshalFailure(t *testing.T) {
	s, _, m := openFake(t)
	m.MarshalErr = errors.New("unsupported type")

	err := s.PutVariable("a", struct{}{})
	if !errors.Is(err, ErrPutVariable) {
		t.Errorf("expected ErrPutVariable, got: %v", err)
	}
}

func TestPutEngineRejection(t *testing.T) {
	s, d, _ := openFake(t)
	d.PutErr = errors.New("invalid name")

	err := s.PutVariable("bad name", 1.0)
	if !errors.Is(err, ErrPutVariable) {
		t.Errorf("expected ErrPutVariable, got: %v", err)
	}
}

func TestPutReleasesIntermediateArray(t *testing.T) {
	s, _, m := openFake(t)

	if err := s.PutVariable("a", 1.0); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	// Only the workspace copy should remain live.
	if live := m.Live(); live != 1 {
		t.Errorf("expected 1 live array after put, got %d", live)
	}
}

func TestPutGetAfterClose(t *testing.T) {
	s, _, _ := openFake(t)
	s.Close()

	if err := s.PutVariable("a", 1.0); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("put: expected ErrInvalidSession, got: %v", err)
	}
	if _, err := s.GetVariable("a"); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("get: expected ErrInvalidSession, got: %v", err)
	}
}

func TestPutVariablesInOrder(t *testing.T) {
	s, d, _ := openFake(t)

	err := s.PutVariables(
		NamedValue{Name: "a", Value: 1.0},
		NamedValue{Name: "b", Value: 2.0},
		NamedValue{Name: "c", Value: 3.0},
	)
	if err != nil {
		t.Fatalf("bulk put failed: %v", err)
	}

	for _, name := range []string{"a", "b", "c"} {
		if !d.Defined(s.handle, name) {
			t.Errorf("variable %q not defined", name)
		}
	}
}

func TestPutVariablesAbortsOnFailure(t *testing.T) {
	s, d, _ := openFake(t)
	d.PutErr = errors.New("rejected")

	err := s.PutVariables(
		NamedValue{Name: "a", Value: 1.0},
		NamedValue{Name: "b", Value: 2.0},
	)
	if !errors.Is(err, ErrPutVariable) {
		t.Fatalf("expected ErrPutVariable, got: %v", err)
	}
	if d.Defined(s.handle, "b") {
		t.Error("bulk put continued past a failed write")
	}
}

func TestGetVariablesOrdered(t *testing.T) {
	s, _, m := openFake(t)

	s.PutVariable("x", 1.0)
	s.PutVariable("y", 2.0)

	arrs, err := s.GetVariables("y", "x")
	if err != nil {
		t.Fatalf("bulk get failed: %v", err)
	}
	defer func() {
		for _, a := range arrs {
			m.Release(a)
		}
	}()

	if len(arrs) != 2 {
		t.Fatalf("expected 2 arrays, got %d", len(arrs))
	}
	if m.Value(arrs[0]) != 2.0 || m.Value(arrs[1]) != 1.0 {
		t.Errorf("arrays out of order: %v, %v", m.Value(arrs[0]), m.Value(arrs[1]))
	}
}

func TestGetVariablesReleasesOnFailure(t *testing.T) {
	s, _, m := openFake(t)

	s.PutVariable("x", 1.0)
	baseline := m.Live()

	_, err := s.GetVariables("x", "missing")
	if !errors.Is(err, ErrGetVariable) {
		t.Fatalf("expected ErrGetVariable, got: %v", err)
	}
	if live := m.Live(); live != baseline {
		t.Errorf("partial fetch leaked arrays: %d live, expected %d", live, baseline)
	}
}
