//go:build !matlab

package native

import (
	"fmt"

	"github.com/dtessler/mxlink/engine"
)

// Available reports whether this binary was built with engine support.
func Available() bool { return false }

// New returns a driver that reports the engine library as unavailable.
// Build with the `matlab` tag for the real binding.
func New() engine.Driver {
	return unavailable{}
}

// NewMarshaler returns a marshaler that rejects every conversion.
func NewMarshaler() engine.Marshaler {
	return unavailable{}
}

type unavailable struct{}

func (unavailable) errf(op string) error {
	return fmt.Errorf("%s: %w: built without the matlab tag", op, engine.ErrEngineUnavailable)
}

func (u unavailable) Open(command string) (engine.Handle, error) {
	return 0, u.errf("open")
}

func (u unavailable) Close(engine.Handle) error {
	return u.errf("close")
}

func (u unavailable) RegisterOutputBuffer(engine.Handle, []byte) error {
	return u.errf("register output buffer")
}

func (u unavailable) EvalString(engine.Handle, string) error {
	return u.errf("eval")
}

func (u unavailable) PutVariable(engine.Handle, string, engine.Array) error {
	return u.errf("put variable")
}

func (u unavailable) GetVariable(engine.Handle, string) (engine.Array, error) {
	return 0, u.errf("get variable")
}

func (u unavailable) SetVisible(engine.Handle, bool) error {
	return u.errf("set visible")
}

func (u unavailable) Marshal(any) (engine.Array, error) {
	return 0, u.errf("marshal")
}

func (u unavailable) Unmarshal(engine.Array) (any, error) {
	return nil, u.errf("unmarshal")
}

func (unavailable) Release(engine.Array) {}
