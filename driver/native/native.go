//go:build matlab

package native

/*
#cgo LDFLAGS: -leng -lmx
#include <stdbool.h>
#include <stdlib.h>

typedef struct engine Engine;
typedef struct mxArray_tag mxArray;

extern Engine *engOpen(const char *startcmd);
extern int engClose(Engine *ep);
extern int engOutputBuffer(Engine *ep, char *buffer, int buflen);
extern int engEvalString(Engine *ep, const char *string);
extern int engPutVariable(Engine *ep, const char *name, const mxArray *ap);
extern mxArray *engGetVariable(Engine *ep, const char *name);
extern int engSetVisible(Engine *ep, bool value);
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/dtessler/mxlink/engine"
)

// Available reports whether this binary was built with engine support.
func Available() bool { return true }

// driver wraps the engine C API. Output buffers registered by the session
// live in Go memory, which cgo rules forbid handing to C long-term, so the
// driver registers a C-allocated shadow buffer and copies it back into the
// session's buffer after every eval.
type driver struct {
	mu      sync.Mutex
	buffers map[engine.Handle]*shadowBuffer
}

type shadowBuffer struct {
	cptr *C.char
	goB  []byte
}

// New returns the cgo-backed engine driver.
func New() engine.Driver {
	return &driver{buffers: make(map[engine.Handle]*shadowBuffer)}
}

func (d *driver) Open(command string) (engine.Handle, error) {
	var ccmd *C.char
	if command != "" {
		ccmd = C.CString(command)
		defer C.free(unsafe.Pointer(ccmd))
	}

	ep := C.engOpen(ccmd)
	if ep == nil {
		return 0, fmt.Errorf("engOpen returned null")
	}
	return engine.Handle(uintptr(unsafe.Pointer(ep))), nil
}

func (d *driver) Close(h engine.Handle) error {
	d.mu.Lock()
	if sb, ok := d.buffers[h]; ok {
		C.free(unsafe.Pointer(sb.cptr))
		delete(d.buffers, h)
	}
	d.mu.Unlock()

	if status := C.engClose(d.ep(h)); status != 0 {
		return fmt.Errorf("engClose returned status %d", int(status))
	}
	return nil
}

func (d *driver) RegisterOutputBuffer(h engine.Handle, buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if sb, ok := d.buffers[h]; ok {
		C.free(unsafe.Pointer(sb.cptr))
		delete(d.buffers, h)
	}

	if len(buf) == 0 {
		if status := C.engOutputBuffer(d.ep(h), nil, 0); status != 0 {
			return fmt.Errorf("engOutputBuffer returned status %d", int(status))
		}
		return nil
	}

	cptr := (*C.char)(C.calloc(C.size_t(len(buf)), 1))
	if status := C.engOutputBuffer(d.ep(h), cptr, C.int(len(buf))); status != 0 {
		C.free(unsafe.Pointer(cptr))
		return fmt.Errorf("engOutputBuffer returned status %d", int(status))
	}
	d.buffers[h] = &shadowBuffer{cptr: cptr, goB: buf}
	return nil
}

func (d *driver) EvalString(h engine.Handle, stmt string) error {
	cstmt := C.CString(stmt)
	defer C.free(unsafe.Pointer(cstmt))

	if status := C.engEvalString(d.ep(h), cstmt); status != 0 {
		return fmt.Errorf("engEvalString returned status %d", int(status))
	}

	d.mu.Lock()
	if sb, ok := d.buffers[h]; ok {
		copy(sb.goB, C.GoBytes(unsafe.Pointer(sb.cptr), C.int(len(sb.goB))))
	}
	d.mu.Unlock()
	return nil
}

func (d *driver) PutVariable(h engine.Handle, name string, value engine.Array) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	if status := C.engPutVariable(d.ep(h), cname, d.mx(value)); status != 0 {
		return fmt.Errorf("engPutVariable returned status %d", int(status))
	}
	return nil
}

func (d *driver) GetVariable(h engine.Handle, name string) (engine.Array, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	ap := C.engGetVariable(d.ep(h), cname)
	if ap == nil {
		return 0, fmt.Errorf("engGetVariable returned null")
	}
	return engine.Array(uintptr(unsafe.Pointer(ap))), nil
}

func (d *driver) SetVisible(h engine.Handle, visible bool) error {
	if status := C.engSetVisible(d.ep(h), C.bool(visible)); status != 0 {
		return fmt.Errorf("engSetVisible returned status %d", int(status))
	}
	return nil
}

func (d *driver) ep(h engine.Handle) *C.Engine {
	return (*C.Engine)(unsafe.Pointer(uintptr(h)))
}

func (d *driver) mx(a engine.Array) *C.mxArray {
	return (*C.mxArray)(unsafe.Pointer(uintptr(a)))
}
