package verilator

import (
	"fmt"

	"github.com/ethanuppal/marlin/internal/dlopen"
)

// StaticModel is implemented by a Go struct bound at compile time to a
// specific HDL module, mirroring the original implementation's
// VerilatedModel trait. Unlike a Rust trait, a Go interface cannot carry
// functions callable without a receiver, so CreateModel obtains the
// static name/source/port information by calling these methods on a
// pointer to a zero value of T before BindLibrary gives that value a real
// backing instance (see CreateModel in runtime.go).
type StaticModel interface {
	// ModuleName is the top-level HDL module this type binds to.
	ModuleName() string
	// SourcePath is the HDL source file ModuleName is defined in. A
	// relative path is resolved against the current working directory and
	// must then match one of the runtime's registered sources.
	SourcePath() string
	// PortList is this module's port interface, used to generate the FFI
	// shim and validate bindings.
	PortList() []PortDescriptor
	// BindLibrary wires the receiver's ModelHandle and port accessor
	// fields to the freshly built library. Implemented by embedding
	// ModelHandle and calling its Bind method, then binding each port
	// accessor field, mirroring the original implementation's
	// init_from(library).
	BindLibrary(lib *dlopen.Library) error
}

// ModelHandle is embedded in every generated static model struct. It owns
// the simulated instance's lifetime: construction, eval, and
// destruction.
type ModelHandle struct {
	lib       *dlopen.Library
	module    string
	instance  uintptr
	evaluated bool

	evalFn   func(uintptr)
	deleteFn func(uintptr)
}

// Bind resolves the constructor, eval, and destructor symbols for module
// and constructs an instance. Generated static model types call this from
// their BindLibrary implementation before binding individual ports.
func (h *ModelHandle) Bind(lib *dlopen.Library, module string) error {
	var newFn func() uintptr
	if err := lib.RegisterFunc(&newFn, NewSymbol(module)); err != nil {
		return fmt.Errorf("%w: %v", ErrSymbolMissing, err)
	}
	if err := lib.RegisterFunc(&h.evalFn, EvalSymbol(module)); err != nil {
		return fmt.Errorf("%w: %v", ErrSymbolMissing, err)
	}
	if err := lib.RegisterFunc(&h.deleteFn, DeleteSymbol(module)); err != nil {
		return fmt.Errorf("%w: %v", ErrSymbolMissing, err)
	}

	h.lib = lib
	h.module = module
	h.instance = newFn()
	return nil
}

// Eval advances the simulated module by one evaluation cycle. Pin values
// beforehand and read outputs afterward to observe their effect.
func (h *ModelHandle) Eval() {
	h.evalFn(h.instance)
	h.evaluated = true
}

// Close destroys the simulated instance. The underlying library remains
// loaded and cached; only the C++ model object is freed.
func (h *ModelHandle) Close() {
	if h.instance != 0 {
		h.deleteFn(h.instance)
		h.instance = 0
	}
}

// ScalarIn binds an input or inout port narrower than 65 bits. T must
// match the port's transport class: uint8/uint16/uint32/uint64 for
// ClassC/S/I/Q respectively.
type ScalarIn[T CData | SData | IData | QData] struct {
	pinFn func(uintptr, T)
	port  string
	owner *ModelHandle
}

// Bind resolves the pin symbol for port on module.
func (s *ScalarIn[T]) Bind(h *ModelHandle, port string) error {
	if err := h.lib.RegisterFunc(&s.pinFn, PinSymbol(h.module, port)); err != nil {
		return fmt.Errorf("%w: %v", ErrSymbolMissing, err)
	}
	s.port = port
	s.owner = h
	return nil
}

// Pin drives the port to value. Takes effect on the next Eval.
func (s *ScalarIn[T]) Pin(value T) {
	s.pinFn(s.owner.instance, value)
}

// ScalarOut binds an output or inout port narrower than 65 bits.
type ScalarOut[T CData | SData | IData | QData] struct {
	readFn func(uintptr) T
	port   string
	owner  *ModelHandle
}

// Bind resolves the read symbol for port on module.
func (s *ScalarOut[T]) Bind(h *ModelHandle, port string) error {
	if err := h.lib.RegisterFunc(&s.readFn, ReadSymbol(h.module, port)); err != nil {
		return fmt.Errorf("%w: %v", ErrSymbolMissing, err)
	}
	s.port = port
	s.owner = h
	return nil
}

// Value reads the port's current value, as of the last Eval.
func (s *ScalarOut[T]) Value() T {
	return s.readFn(s.owner.instance)
}
