package engine

import "fmt"

// maxIdentifierLen matches the engine's name length limit.
const maxIdentifierLen = 63

// Identifier is a validated engine identifier: an ASCII letter followed by
// letters, digits, or underscores. Names beginning with an underscore are
// reserved by the engine and rejected at construction.
type Identifier string

// NewIdentifier validates name and returns it as an Identifier.
func NewIdentifier(name string) (Identifier, error) {
	if name == "" {
		return "", fmt.Errorf("identifier is empty")
	}
	if len(name) > maxIdentifierLen {
		return "", fmt.Errorf("identifier %q exceeds %d characters", name, maxIdentifierLen)
	}
	if !isLetter(name[0]) {
		return "", fmt.Errorf("identifier %q must begin with a letter", name)
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return "", fmt.Errorf("identifier %q contains invalid character %q", name, c)
		}
	}
	return Identifier(name), nil
}

func (id Identifier) String() string { return string(id) }

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
