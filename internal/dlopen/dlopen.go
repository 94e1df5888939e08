// Package dlopen wraps github.com/ebitengine/purego to load a Verilator
// shared library at a path known only at runtime and resolve symbol names
// that are themselves computed at runtime (the module name is interpolated
// into every ffi_ symbol). Static cgo cannot express either requirement,
// which is why this package exists instead of an import "C" shim like
// honnef.co/go/libwayland's.
package dlopen

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
	"honnef.co/go/safeish"
)

// Library is an opened shared library. It is never closed for the
// lifetime of the process: the runtime's cache never evicts a library
// once built, and Verilator's generated static state does not support
// being unloaded and reloaded safely.
type Library struct {
	path   string
	handle uintptr
}

// Open loads the shared library at path.
func Open(path string) (*Library, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("dlopen %s: %w", path, err)
	}
	return &Library{path: path, handle: handle}, nil
}

// Path returns the path the library was opened from.
func (l *Library) Path() string {
	return l.path
}

// Sym resolves a symbol by name, returning its address.
func (l *Library) Sym(name string) (uintptr, error) {
	addr, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return 0, fmt.Errorf("resolve symbol %q in %s: %w", name, l.path, err)
	}
	return addr, nil
}

// HasSym reports whether name resolves without error.
func (l *Library) HasSym(name string) bool {
	_, err := purego.Dlsym(l.handle, name)
	return err == nil
}

// RegisterFunc resolves name in the library and wires fnPtr — a pointer to
// a function variable — to call through it. fnPtr must be a non-nil
// pointer to a func value, per purego.RegisterFunc's own contract.
func (l *Library) RegisterFunc(fnPtr any, name string) error {
	addr, err := l.Sym(name)
	if err != nil {
		return err
	}
	purego.RegisterFunc(fnPtr, addr)
	return nil
}

// NewCallback wraps a Go function as a C-callable function pointer, for
// installing Go closures as DPI callbacks. fn must have a signature purego
// can bridge: plain numeric/pointer/uintptr parameters and at most one
// numeric/pointer return.
func NewCallback(fn any) uintptr {
	return purego.NewCallback(fn)
}

// CString reinterprets a raw NUL-terminated C string pointer (for example
// the return value of dlerror(), or a symbol name read back out of a
// Verilator-generated data structure) as a Go string, without copying
// beyond the NUL terminator.
func CString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	base := safeish.Cast[*byte](unsafe.Pointer(ptr))
	n := safeish.FindNull(base)
	return string(unsafe.Slice(base, n))
}
