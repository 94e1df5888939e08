package verilator

import (
	"errors"
	"fmt"
)

// Sentinel errors for the taxonomy in spec §7. Use errors.Is to test for
// them; errors returned by the runtime wrap one of these with
// fmt.Errorf("...: %w", ...) so the offending name/path is preserved in
// the message while remaining programmatically identifiable.
var (
	// ErrSourceFileMissing means a registered source file does not exist
	// or is not a regular file.
	ErrSourceFileMissing = errors.New("source file missing or not a regular file")
	// ErrModuleSourceNotRegistered means CreateModel referenced a source
	// path not in the runtime's registered list.
	ErrModuleSourceNotRegistered = errors.New("module source file not registered with runtime")
	// ErrInvalidModuleName means the module name contains a backslash or
	// space.
	ErrInvalidModuleName = errors.New("invalid module name")
	// ErrInvalidPortSpec means msb < lsb, the width is not positive, or a
	// duplicate port name was given. A width above MaxPortWidth is
	// reported as ErrPortTooWide instead.
	ErrInvalidPortSpec = errors.New("invalid port specification")
	// ErrPortTooWide means a port's width exceeds MaxPortWidth.
	ErrPortTooWide = errors.New("port width exceeds implementation maximum")
	// ErrSimulatorInvocationFailed means the external simulator could not
	// be executed or exited non-zero.
	ErrSimulatorInvocationFailed = errors.New("simulator invocation failed")
	// ErrLibraryLoadFailed means the dynamic loader rejected the produced
	// shared library.
	ErrLibraryLoadFailed = errors.New("failed to load simulator shared library")
	// ErrSymbolMissing means an expected ffi_ symbol could not be
	// resolved.
	ErrSymbolMissing = errors.New("expected FFI symbol not found in library")
	// ErrNoSuchPort means a dynamic read/pin referenced an undeclared
	// port.
	ErrNoSuchPort = errors.New("no such port")
	// ErrInvalidPortDirection means a write was attempted on an Output
	// port, or a read on an Input port.
	ErrInvalidPortDirection = errors.New("invalid port direction for operation")
	// ErrInvalidPortWidth means a dynamic value's class does not fit the
	// port's declared width.
	ErrInvalidPortWidth = errors.New("value does not fit port width")
)

// UninitializedOutputError is raised (via panic, not a returned error) by
// WideOut.Value when a wide output port is read before the first Eval.
// Spec §7 treats this as a precondition violation, not a recoverable
// error — the one documented abort in the runtime's surface.
type UninitializedOutputError struct {
	Port string
}

func (e *UninitializedOutputError) Error() string {
	return fmt.Sprintf("port %q read before being driven by an eval", e.Port)
}
