//go:build matlab

package native

/*
#include <stdbool.h>
#include <stdlib.h>

typedef struct mxArray_tag mxArray;

extern mxArray *mxCreateDoubleMatrix(size_t m, size_t n, int complexFlag);
extern mxArray *mxCreateDoubleScalar(double value);
extern mxArray *mxCreateString(const char *str);
extern double *mxGetPr(const mxArray *pm);
extern double mxGetScalar(const mxArray *pm);
extern size_t mxGetM(const mxArray *pm);
extern size_t mxGetN(const mxArray *pm);
extern bool mxIsDouble(const mxArray *pm);
extern bool mxIsChar(const mxArray *pm);
extern char *mxArrayToString(const mxArray *pm);
extern void mxFree(void *ptr);
extern void mxDestroyArray(mxArray *pm);
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/dtessler/mxlink/engine"
)

// marshaler converts Go values to and from mxArray handles. Supported Go
// types: float64, []float64, and string.
type marshaler struct{}

// NewMarshaler returns the cgo-backed value marshaler.
func NewMarshaler() engine.Marshaler {
	return marshaler{}
}

func (marshaler) Marshal(value any) (engine.Array, error) {
	switch v := value.(type) {
	case float64:
		ap := C.mxCreateDoubleScalar(C.double(v))
		if ap == nil {
			return 0, fmt.Errorf("mxCreateDoubleScalar failed")
		}
		return arr(ap), nil

	case []float64:
		ap := C.mxCreateDoubleMatrix(1, C.size_t(len(v)), 0)
		if ap == nil {
			return 0, fmt.Errorf("mxCreateDoubleMatrix failed")
		}
		if len(v) > 0 {
			dst := unsafe.Slice((*float64)(unsafe.Pointer(C.mxGetPr(ap))), len(v))
			copy(dst, v)
		}
		return arr(ap), nil

	case string:
		cs := C.CString(v)
		defer C.free(unsafe.Pointer(cs))
		ap := C.mxCreateString(cs)
		if ap == nil {
			return 0, fmt.Errorf("mxCreateString failed")
		}
		return arr(ap), nil

	default:
		return 0, fmt.Errorf("unsupported value type %T", value)
	}
}

func (marshaler) Unmarshal(a engine.Array) (any, error) {
	ap := mx(a)

	switch {
	case C.mxIsChar(ap):
		cs := C.mxArrayToString(ap)
		if cs == nil {
			return nil, fmt.Errorf("mxArrayToString failed")
		}
		defer C.mxFree(unsafe.Pointer(cs))
		return C.GoString(cs), nil

	case C.mxIsDouble(ap):
		n := int(C.mxGetM(ap)) * int(C.mxGetN(ap))
		if n == 1 {
			return float64(C.mxGetScalar(ap)), nil
		}
		src := unsafe.Slice((*float64)(unsafe.Pointer(C.mxGetPr(ap))), n)
		out := make([]float64, n)
		copy(out, src)
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported array class")
	}
}

func (marshaler) Release(a engine.Array) {
	if a != 0 {
		C.mxDestroyArray(mx(a))
	}
}

func arr(ap *C.mxArray) engine.Array {
	return engine.Array(uintptr(unsafe.Pointer(ap)))
}

func mx(a engine.Array) *C.mxArray {
	return (*C.mxArray)(unsafe.Pointer(uintptr(a)))
}
