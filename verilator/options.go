package verilator

// OptimizationLevel selects the -O<n> flag passed to Verilator's generated
// C++ build. Spec §4.4 leaves the default to the implementation; Verilator
// itself defaults to no optimization flag at all, which is what
// DefaultRuntimeOptions reproduces.
type OptimizationLevel int

const (
	// OptimizationDefault passes no -O flag.
	OptimizationDefault OptimizationLevel = iota
	OptimizationNone
	Optimization1
	Optimization2
	Optimization3
)

func (o OptimizationLevel) flag() string {
	switch o {
	case OptimizationNone:
		return "-O0"
	case Optimization1:
		return "-O1"
	case Optimization2:
		return "-O2"
	case Optimization3:
		return "-O3"
	default:
		return ""
	}
}

// RuntimeOptions configures a Runtime. The zero value is not meaningful;
// use DefaultRuntimeOptions and override individual fields, mirroring the
// original implementation's VerilatorRuntimeOptions::default().
type RuntimeOptions struct {
	// ArtifactDirectory is where obj_dir/, ffi/, and dpi/ are created. If
	// empty, a directory under os.TempDir is used.
	ArtifactDirectory string

	// VerilatorExecutable is the name or path of the verilator binary to
	// invoke. Defaults to "verilator", resolved via PATH.
	VerilatorExecutable string

	// MakeExecutable, if non-empty, is exported as the MAKE environment
	// variable for the verilator invocation, overriding which make-
	// compatible tool the generated Makefile (Verilator's --build step)
	// shells out to.
	MakeExecutable string

	// Optimization is passed through to Verilator's generated C++ build.
	Optimization OptimizationLevel

	// Defines lists preprocessor macros (spec §3/§6/§4.4 step 8), each
	// rendered as a verilator "+define+NAME" or "+define+NAME=VALUE"
	// flag depending on whether the entry itself contains "=".
	Defines []string

	// ForceRebuild skips the mtime-based rebuild oracle and always
	// invokes the simulator (spec §4.4 step 7, testable property 5).
	ForceRebuild bool

	// Verbose enables glog.V(1) logging of build-driver decisions
	// (rebuild triggers, the verilator command line, cache hits).
	Verbose bool
}

// DefaultRuntimeOptions returns the options a bare Runtime is constructed
// with when the caller does not supply any.
func DefaultRuntimeOptions() RuntimeOptions {
	return RuntimeOptions{
		ArtifactDirectory:   "",
		VerilatorExecutable: "verilator",
		MakeExecutable:      "",
		Optimization:        OptimizationDefault,
		Defines:             nil,
		ForceRebuild:        false,
		Verbose:             false,
	}
}
