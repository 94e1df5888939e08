package verilator

import (
	"fmt"
)

// WideIn binds an input or inout port wider than 64 bits, transported as
// a little-endian array of WData words (word 0 is the least significant).
// The original implementation encoded the word count in a const generic
// parameter (WideIn<LOW, HIGH, LENGTH>); Go has no equivalent, so the
// length is checked against the port's declared width at Pin time
// instead.
type WideIn struct {
	pinFn func(uintptr, *WData)
	words int
	owner *ModelHandle
}

// Bind resolves the pin symbol for a wide port of the given bit width.
func (w *WideIn) Bind(h *ModelHandle, port string, width int) error {
	if err := h.lib.RegisterFunc(&w.pinFn, PinSymbol(h.module, port)); err != nil {
		return fmt.Errorf("%w: %v", ErrSymbolMissing, err)
	}
	w.words = WordCount(width)
	w.owner = h
	return nil
}

// Pin drives the port to value, a little-endian word array. len(value)
// must equal the port's word count; a mismatch panics, as it can only
// result from a binding that does not match the HDL source it was
// generated against.
func (w *WideIn) Pin(value []WData) {
	if len(value) != w.words {
		panic(fmt.Sprintf("wide port expects %d words, got %d", w.words, len(value)))
	}
	w.pinFn(w.owner.instance, &value[0])
}

// WideOutState is the one-way state machine a wide output port's value
// passes through: it starts Uninitialized because Verilator does not
// guarantee a simulated module's outputs hold a meaningful value before
// the first eval, and becomes Initialized permanently the first time the
// owning model is evaluated.
type WideOutState int

const (
	Uninitialized WideOutState = iota
	Initialized
)

// WideOut binds an output or inout port wider than 64 bits.
type WideOut struct {
	readFn func(uintptr, *WData)
	words  int
	port   string
	owner  *ModelHandle
}

// Bind resolves the read symbol for a wide port of the given bit width.
func (w *WideOut) Bind(h *ModelHandle, port string, width int) error {
	if err := h.lib.RegisterFunc(&w.readFn, ReadSymbol(h.module, port)); err != nil {
		return fmt.Errorf("%w: %v", ErrSymbolMissing, err)
	}
	w.words = WordCount(width)
	w.port = port
	w.owner = h
	return nil
}

// State reports whether the owning model has been evaluated at least once.
func (w *WideOut) State() WideOutState {
	if w.owner.evaluated {
		return Initialized
	}
	return Uninitialized
}

// Value reads the port's current word array. It panics with
// *UninitializedOutputError if called before the owning model has ever
// been evaluated — the one documented precondition violation in the
// runtime's surface (spec §7).
func (w *WideOut) Value() []WData {
	if w.State() == Uninitialized {
		panic(&UninitializedOutputError{Port: w.port})
	}
	out := make([]WData, w.words)
	w.readFn(w.owner.instance, &out[0])
	return out
}

// wideValuePointer exposes a Go []WData's backing array as the pointer
// dlopen-resolved FFI functions expect, for the dynamic model path where
// no generated accessor type exists to hold pinFn/readFn.
func wideValuePointer(value []WData) *WData {
	return &value[0]
}
