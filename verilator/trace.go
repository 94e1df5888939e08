package verilator

import (
	"fmt"

	"github.com/ethanuppal/marlin/internal/dlopen"
)

// Trace is a thin pass-through over the VCD ABI: it resolves the raw
// ffi_V<module>_open_trace/ffi_VerilatedVcdC_dump/
// ffi_VerilatedVcdC_close_and_delete symbols and exposes them as methods,
// without the richer convenience wrapper (buffered timestamps, automatic
// flushing, and so on) the original implementation's vcd.rs builds on top
// of the same ABI — that wrapper surface is explicitly out of scope here.
type Trace struct {
	handle  uintptr
	dumpFn  func(uintptr, uint64)
	closeFn func(uintptr)
	closed  bool
}

// OpenTrace calls Verilated::traceEverOn(true), on every call, then opens
// a VCD trace for model at path.
func OpenTrace(lib *dlopen.Library, module string, model *ModelHandle, path string) (*Trace, error) {
	var traceEverOn func()
	if err := lib.RegisterFunc(&traceEverOn, TraceEverOnSymbol); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSymbolMissing, err)
	}
	traceEverOn()

	var openFn func(uintptr, string) uintptr
	if err := lib.RegisterFunc(&openFn, OpenTraceSymbol(module)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSymbolMissing, err)
	}

	t := &Trace{}
	if err := lib.RegisterFunc(&t.dumpFn, VcdDumpSymbol); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSymbolMissing, err)
	}
	if err := lib.RegisterFunc(&t.closeFn, VcdCloseAndDeleteSymbol); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSymbolMissing, err)
	}

	t.handle = openFn(model.instance, path)
	return t, nil
}

// Dump writes the current signal state at timestamp.
func (t *Trace) Dump(timestamp uint64) {
	t.dumpFn(t.handle, timestamp)
}

// Close flushes and frees the underlying VerilatedVcdC. Calling it more
// than once is a no-op.
func (t *Trace) Close() {
	if t.closed {
		return
	}
	t.closeFn(t.handle)
	t.closed = true
}
