package engine

import (
	"io"
	"os"
)

// DefaultBufferSize is the output-capture buffer size used when no
// WithBufferSize option is given.
const DefaultBufferSize = 8192

// Option configures a session at Open time.
type Option func(*sessionConfig)

type sessionConfig struct {
	driver     Driver
	marshaler  Marshaler
	command    string
	bufferSize int
	visible    bool
	out        io.Writer
}

func defaultSessionConfig() sessionConfig {
	return sessionConfig{
		bufferSize: DefaultBufferSize,
		out:        os.Stdout,
	}
}

// WithDriver selects the native engine driver backing the session.
func WithDriver(d Driver) Option {
	return func(c *sessionConfig) {
		c.driver = d
	}
}

// WithMarshaler selects the value marshaler used by PutVariable and MXCall.
func WithMarshaler(m Marshaler) Option {
	return func(c *sessionConfig) {
		c.marshaler = m
	}
}

// WithStartCommand sets the startup command string passed to the engine
// library when opening the connection. Empty uses the library default.
func WithStartCommand(cmd string) Option {
	return func(c *sessionConfig) {
		c.command = cmd
	}
}

// WithBufferSize sets the output-capture buffer size in bytes. Zero disables
// output capture entirely: Eval never forwards any text.
func WithBufferSize(n int) Option {
	return func(c *sessionConfig) {
		if n < 0 {
			n = 0
		}
		c.bufferSize = n
	}
}

// WithVisible requests a visible engine window on platforms that have one.
// The default is hidden. Best effort either way.
func WithVisible(visible bool) Option {
	return func(c *sessionConfig) {
		c.visible = visible
	}
}

// WithOutput redirects captured engine output away from os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *sessionConfig) {
		if w != nil {
			c.out = w
		}
	}
}
