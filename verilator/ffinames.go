package verilator

import "fmt"

// Names of the FFI symbols the shim generator emits and the runtime
// resolves. Every symbol name that embeds a module or port name is
// produced by exactly one function here, so the generator and the
// resolver can never disagree on spelling (spec §6).
const (
	// DpiInitCallbackSymbol installs the table of DPI function pointers
	// before the first eval.
	DpiInitCallbackSymbol = "dpi_init_callback"
	// TraceEverOnSymbol is Verilated::traceEverOn(true), called by
	// OpenTrace before each trace is opened.
	TraceEverOnSymbol = "ffi_Verilated_traceEverOn"
	// VcdDumpSymbol dumps a VerilatedVcdC at a given timestamp.
	VcdDumpSymbol = "ffi_VerilatedVcdC_dump"
	// VcdCloseAndDeleteSymbol flushes and frees a VerilatedVcdC.
	VcdCloseAndDeleteSymbol = "ffi_VerilatedVcdC_close_and_delete"
)

// NewSymbol is the constructor ffi_new_V<module>.
func NewSymbol(module string) string {
	return fmt.Sprintf("ffi_new_V%s", module)
}

// DeleteSymbol is the destructor ffi_delete_V<module>.
func DeleteSymbol(module string) string {
	return fmt.Sprintf("ffi_delete_V%s", module)
}

// EvalSymbol is the ffi_V<module>_eval symbol that advances one eval.
func EvalSymbol(module string) string {
	return fmt.Sprintf("ffi_V%s_eval", module)
}

// PinSymbol is ffi_V<module>_pin_<port>, which writes a value to an input
// or inout port.
func PinSymbol(module, port string) string {
	return fmt.Sprintf("ffi_V%s_pin_%s", module, port)
}

// ReadSymbol is ffi_V<module>_read_<port>, which reads the current value
// of an output or inout port.
func ReadSymbol(module, port string) string {
	return fmt.Sprintf("ffi_V%s_read_%s", module, port)
}

// OpenTraceSymbol is ffi_V<module>_open_trace, which opens a
// VerilatedVcdC bound to this instance.
func OpenTraceSymbol(module string) string {
	return fmt.Sprintf("ffi_V%s_open_trace", module)
}
