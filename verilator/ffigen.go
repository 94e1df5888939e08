package verilator

import (
	"fmt"
	"strings"
)

// generateFFI renders the extern "C" shim Verilator's generated C++ model
// is wrapped in: a constructor, destructor, eval, a pin function for each
// writable port and a read function for each readable port, plus the
// trace ABI. It is deliberately flat text assembly with
// strings.Builder and fmt.Fprintf rather than text/template, matching
// both the original Rust implementation's writeln! style and the corpus's
// own non-templated generated-text spots (see google-kati's fileutil.go):
// there is no branching structure here complex enough to earn a template.
func generateFFI(mod ModuleDescriptor) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "#include \"V%s.h\"\n", mod.Name)
	fmt.Fprintf(&b, "#include \"verilated.h\"\n")
	fmt.Fprintf(&b, "#include \"verilated_vcd_c.h\"\n\n")
	fmt.Fprintf(&b, "extern \"C\" {\n\n")

	fmt.Fprintf(&b, "void %s() {\n", TraceEverOnSymbol)
	fmt.Fprintf(&b, "    Verilated::traceEverOn(true);\n")
	fmt.Fprintf(&b, "}\n\n")

	fmt.Fprintf(&b, "void* %s() {\n", NewSymbol(mod.Name))
	fmt.Fprintf(&b, "    return new V%s();\n", mod.Name)
	fmt.Fprintf(&b, "}\n\n")

	fmt.Fprintf(&b, "void %s(void* ptr) {\n", DeleteSymbol(mod.Name))
	fmt.Fprintf(&b, "    delete static_cast<V%s*>(ptr);\n", mod.Name)
	fmt.Fprintf(&b, "}\n\n")

	fmt.Fprintf(&b, "void %s(void* ptr) {\n", EvalSymbol(mod.Name))
	fmt.Fprintf(&b, "    static_cast<V%s*>(ptr)->eval();\n", mod.Name)
	fmt.Fprintf(&b, "}\n\n")

	for _, port := range mod.Ports {
		class, err := port.Class()
		if err != nil {
			return "", fmt.Errorf("module %q: %w", mod.Name, err)
		}

		if port.Direction.Writable() {
			writePinFunction(&b, mod.Name, port, class)
		}
		if port.Direction.Readable() {
			writeReadFunction(&b, mod.Name, port, class)
		}
	}

	fmt.Fprintf(&b, "void* %s(void* ptr, const char* path) {\n", OpenTraceSymbol(mod.Name))
	fmt.Fprintf(&b, "    VerilatedVcdC* tfp = new VerilatedVcdC();\n")
	fmt.Fprintf(&b, "    static_cast<V%s*>(ptr)->trace(tfp, 99);\n", mod.Name)
	fmt.Fprintf(&b, "    tfp->open(path);\n")
	fmt.Fprintf(&b, "    return tfp;\n")
	fmt.Fprintf(&b, "}\n\n")

	fmt.Fprintf(&b, "void %s(void* tfp, unsigned long long timestamp) {\n", VcdDumpSymbol)
	fmt.Fprintf(&b, "    static_cast<VerilatedVcdC*>(tfp)->dump(timestamp);\n")
	fmt.Fprintf(&b, "}\n\n")

	fmt.Fprintf(&b, "void %s(void* tfp) {\n", VcdCloseAndDeleteSymbol)
	fmt.Fprintf(&b, "    VerilatedVcdC* vcd = static_cast<VerilatedVcdC*>(tfp);\n")
	fmt.Fprintf(&b, "    vcd->close();\n")
	fmt.Fprintf(&b, "    delete vcd;\n")
	fmt.Fprintf(&b, "}\n\n")

	fmt.Fprintf(&b, "} // extern \"C\"\n")

	return b.String(), nil
}

func writePinFunction(b *strings.Builder, module string, port PortDescriptor, class PortClass) {
	if class == ClassW {
		n := WordCount(port.Width())
		fmt.Fprintf(b, "void %s(void* ptr, const WData* value) {\n", PinSymbol(module, port.Name))
		fmt.Fprintf(b, "    for (int i = 0; i < %d; i++) {\n", n)
		fmt.Fprintf(b, "        static_cast<V%s*>(ptr)->%s[i] = value[i];\n", module, port.Name)
		fmt.Fprintf(b, "    }\n")
		fmt.Fprintf(b, "}\n\n")
		return
	}
	fmt.Fprintf(b, "void %s(void* ptr, %s value) {\n", PinSymbol(module, port.Name), class.CTypeName(port.Width()))
	fmt.Fprintf(b, "    static_cast<V%s*>(ptr)->%s = value;\n", module, port.Name)
	fmt.Fprintf(b, "}\n\n")
}

func writeReadFunction(b *strings.Builder, module string, port PortDescriptor, class PortClass) {
	if class == ClassW {
		n := WordCount(port.Width())
		fmt.Fprintf(b, "void %s(void* ptr, WData* out) {\n", ReadSymbol(module, port.Name))
		fmt.Fprintf(b, "    for (int i = 0; i < %d; i++) {\n", n)
		fmt.Fprintf(b, "        out[i] = static_cast<V%s*>(ptr)->%s[i];\n", module, port.Name)
		fmt.Fprintf(b, "    }\n")
		fmt.Fprintf(b, "}\n\n")
		return
	}
	fmt.Fprintf(b, "%s %s(void* ptr) {\n", class.CTypeName(port.Width()), ReadSymbol(module, port.Name))
	fmt.Fprintf(b, "    return static_cast<V%s*>(ptr)->%s;\n", module, port.Name)
	fmt.Fprintf(b, "}\n\n")
}
