package verilator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/ethanuppal/marlin/internal/dlopen"
)

// DpiFunction is a Go function exposed to simulated HDL through
// Verilator's DPI-C mechanism. Rust's original bound this with a
// #[verilog::dpi] proc macro that rewrote the function's signature into a
// C-ABI trampoline at compile time; Go has no such macro, so DPI builds
// the trampoline at runtime with reflection and purego.NewCallback
// instead (see the teacher's dispatcher function in wayland.go, which
// does the mirror-image job of turning a C call into a Go one).
type DpiFunction struct {
	// Name is the DPI import name seen from (System)Verilog.
	Name string
	// CSignature is the C prototype emitted into the generated DPI
	// wrapper source, e.g. "void three(unsigned int* p0)".
	CSignature string

	paramTypes []string
	pointer    uintptr
}

// cParamKind classifies a Go parameter type into the C type the DPI
// trampoline declares for it. Only the shapes the tutorial and test
// fixtures exercise are supported: scalar outputs as pointers to integers
// (Verilator's DPI calling convention passes every scalar output by
// pointer) and plain value parameters for inputs.
func cParamKind(t reflect.Type) (string, error) {
	switch t.Kind() {
	case reflect.Ptr:
		elem, err := cParamKind(t.Elem())
		if err != nil {
			return "", err
		}
		return elem + "*", nil
	case reflect.Uint8:
		return "unsigned char", nil
	case reflect.Uint16:
		return "unsigned short", nil
	case reflect.Uint32, reflect.Uint:
		return "unsigned int", nil
	case reflect.Uint64:
		return "unsigned long long", nil
	case reflect.Int32, reflect.Int:
		return "int", nil
	case reflect.Bool:
		return "unsigned char", nil
	default:
		return "", fmt.Errorf("dpi function argument of kind %s is not supported", t.Kind())
	}
}

// DPI wraps fn, a Go function with scalar or scalar-pointer parameters
// and no return value, as a DPI function importable from simulated HDL
// under the given name. fn is invoked directly by the simulator's eval
// loop through the callback pointer purego.NewCallback produces; it
// should not block or re-enter the runtime.
func DPI(name string, fn any) (DpiFunction, error) {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return DpiFunction{}, fmt.Errorf("DPI function %q: not a function", name)
	}
	if t.NumOut() != 0 {
		return DpiFunction{}, fmt.Errorf("DPI function %q: must not return a value, use an output pointer parameter instead", name)
	}

	paramTypes := make([]string, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		kind, err := cParamKind(t.In(i))
		if err != nil {
			return DpiFunction{}, fmt.Errorf("DPI function %q argument %d: %w", name, i, err)
		}
		paramTypes[i] = kind
	}

	return DpiFunction{
		Name:       name,
		CSignature: fmt.Sprintf("void %s(%s)", name, namedParamList(paramTypes)),
		paramTypes: paramTypes,
		pointer:    dlopen.NewCallback(fn),
	}, nil
}

// namedParamList renders "type p0, type p1, ..." for a prototype, or
// "void" for a nullary one.
func namedParamList(types []string) string {
	if len(types) == 0 {
		return "void"
	}
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = fmt.Sprintf("%s p%d", t, i)
	}
	return strings.Join(parts, ", ")
}

// trampolineCast is the function-pointer cast used to call through this
// function's table slot: "void (*)(type0, type1, ...)".
func (fn DpiFunction) trampolineCast() string {
	types := fn.paramTypes
	if len(types) == 0 {
		return "void (*)(void)"
	}
	return fmt.Sprintf("void (*)(%s)", strings.Join(types, ", "))
}

// trampolineArgs is the plain argument list "p0, p1, ..." passed through
// the cast function pointer.
func (fn DpiFunction) trampolineArgs() string {
	if len(fn.paramTypes) == 0 {
		return ""
	}
	names := make([]string, len(fn.paramTypes))
	for i := range names {
		names[i] = fmt.Sprintf("p%d", i)
	}
	return strings.Join(names, ", ")
}

// generateDPIWrapper renders wrappers.c: a fixed-size table of function
// pointers installed by dpi_init_callback, and one trampoline per
// registered DPI function that calls through its table slot. Verilator's
// generated code calls these trampolines directly under each function's
// DPI import name; the trampoline exists only because the real
// implementation (a Go closure, wrapped by purego.NewCallback into
// exactly this C signature) is installed after the shared library is
// built, not compiled into it.
func generateDPIWrapper(fns []DpiFunction) string {
	var b strings.Builder

	tableSize := len(fns)
	if tableSize == 0 {
		tableSize = 1
	}

	fmt.Fprintf(&b, "#include <stddef.h>\n\n")
	fmt.Fprintf(&b, "static void* marlin_dpi_table[%d];\n\n", tableSize)

	fmt.Fprintf(&b, "void dpi_init_callback(void** table) {\n")
	fmt.Fprintf(&b, "    for (int i = 0; i < %d; i++) {\n", len(fns))
	fmt.Fprintf(&b, "        marlin_dpi_table[i] = table[i];\n")
	fmt.Fprintf(&b, "    }\n")
	fmt.Fprintf(&b, "}\n\n")

	for i, fn := range fns {
		fmt.Fprintf(&b, "%s {\n", fn.CSignature)
		fmt.Fprintf(&b, "    ((%s)marlin_dpi_table[%d])(%s);\n", fn.trampolineCast(), i, fn.trampolineArgs())
		fmt.Fprintf(&b, "}\n\n")
	}

	return b.String()
}
