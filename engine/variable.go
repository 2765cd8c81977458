package engine

import "fmt"

// NamedValue pairs a workspace variable name with the Go value to store
// under it. It is the element type of the ordered bulk forms.
type NamedValue struct {
	Name  string
	Value any
}

// PutVariable converts value through the session's marshaler and writes it
// into the remote workspace under name. The name is used verbatim; callers
// must supply a valid engine identifier.
func (s *Session) PutVariable(name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putLocked(name, value)
}

func (s *Session) putLocked(name string, value any) error {
	if s.closed {
		return fmt.Errorf("%w %q: %w", ErrPutVariable, name, ErrInvalidSession)
	}
	if s.marshaler == nil {
		return fmt.Errorf("%w %q: no marshaler configured", ErrPutVariable, name)
	}

	arr, err := s.marshaler.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrPutVariable, name, err)
	}
	// The engine copies the array on write; the intermediate is ours to free.
	defer s.marshaler.Release(arr)

	if err := s.driver.PutVariable(s.handle, name, arr); err != nil {
		return fmt.Errorf("%w %q: %w", ErrPutVariable, name, err)
	}
	return nil
}

// GetVariable fetches the array stored under name in the remote workspace.
// Ownership of the returned Array transfers to the caller, who must release
// it via the session's marshaler.
func (s *Session) GetVariable(name string) (Array, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(name)
}

func (s *Session) getLocked(name string) (Array, error) {
	if s.closed {
		return 0, fmt.Errorf("%w %q: %w", ErrGetVariable, name, ErrInvalidSession)
	}

	arr, err := s.driver.GetVariable(s.handle, name)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrGetVariable, name, err)
	}
	return arr, nil
}

// PutVariables writes each pair in order. The first failure aborts the
// remaining writes; values already written stay in the workspace.
func (s *Session) PutVariables(vars ...NamedValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range vars {
		if err := s.putLocked(v.Name, v.Value); err != nil {
			return err
		}
	}
	return nil
}

// GetVariables fetches each name in order and returns the arrays in the
// same order. On failure the arrays fetched so far are released and the
// error for the offending name is returned.
func (s *Session) GetVariables(names ...string) ([]Array, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	arrs := make([]Array, 0, len(names))
	for _, name := range names {
		arr, err := s.getLocked(name)
		if err != nil {
			s.releaseAll(arrs)
			return nil, err
		}
		arrs = append(arrs, arr)
	}
	return arrs, nil
}

func (s *Session) releaseAll(arrs []Array) {
	if s.marshaler == nil {
		return
	}
	for _, a := range arrs {
		s.marshaler.Release(a)
	}
}
