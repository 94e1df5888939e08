// Package verilator instantiates, stimulates, and observes Verilated
// (System)Verilog modules from Go.
package verilator

import "fmt"

// Verilator-defined C types used across the FFI boundary. Widths follow
// the Verilator documentation exactly.
type (
	// CData represents 1 to 8 packed bits.
	CData = uint8
	// SData represents 9 to 16 packed bits.
	SData = uint16
	// IData represents 17 to 32 packed bits.
	IData = uint32
	// QData represents 33 to 64 packed bits.
	QData = uint64
	// EData is one element of a WData array.
	EData = uint32
	// WData represents more than 64 packed bits, as a little-endian (word 0
	// is the LSW) array of EData.
	WData = EData
)

// PortClass is the transport class a port's bit width is classified into.
// The same classification is applied by the FFI shim generator, static
// model binding, dynamic model dispatch, and runtime width validation —
// see ClassifyWidth.
type PortClass int

const (
	// ClassC covers widths of 1 to 8 bits, transported as CData.
	ClassC PortClass = iota
	// ClassS covers widths of 9 to 16 bits, transported as SData.
	ClassS
	// ClassI covers widths of 17 to 32 bits, transported as IData.
	ClassI
	// ClassQ covers widths of 33 to 64 bits, transported as QData.
	ClassQ
	// ClassW covers widths above 64 bits, transported as a WData array.
	ClassW
)

func (c PortClass) String() string {
	switch c {
	case ClassC:
		return "C"
	case ClassS:
		return "S"
	case ClassI:
		return "I"
	case ClassQ:
		return "Q"
	case ClassW:
		return "W"
	default:
		return "invalid"
	}
}

// CTypeName is the Verilator C type name the FFI shim uses to transport a
// value of this class: CData, SData, IData, QData, or a WData[n] array.
func (c PortClass) CTypeName(width int) string {
	switch c {
	case ClassC:
		return "CData"
	case ClassS:
		return "SData"
	case ClassI:
		return "IData"
	case ClassQ:
		return "QData"
	case ClassW:
		return fmt.Sprintf("WData[%d]", WordCount(width))
	default:
		return "invalid"
	}
}

// MaxBits returns the inclusive upper bound on a port width classified
// into c, or -1 for ClassW, which has no fixed upper bound (only the
// implementation-wide MaxPortWidth).
func (c PortClass) MaxBits() int {
	switch c {
	case ClassC:
		return 8
	case ClassS:
		return 16
	case ClassI:
		return 32
	case ClassQ:
		return 64
	default:
		return -1
	}
}

// MaxPortWidth is the implementation-declared upper bound on a port's bit
// width (spec §9 leaves this undeclared; the static wide-port machinery
// was tested to 1024, so this gives four times that headroom while still
// bounding the generated WData array size).
const MaxPortWidth = 4096

// WordCount returns the number of 32-bit words (ceil(width/32)) a wide
// port of the given width occupies.
func WordCount(width int) int {
	return (width + 31) / 32
}

// ClassifyWidth maps a port's bit width to its transport class. It is the
// single source of truth referenced by the FFI shim generator, static
// model port resolution, dynamic model read/pin dispatch, and runtime
// width validation (spec §4.1).
func ClassifyWidth(width int) (PortClass, error) {
	switch {
	case width <= 0:
		return 0, fmt.Errorf("%w: width %d is not positive", ErrInvalidPortSpec, width)
	case width <= 8:
		return ClassC, nil
	case width <= 16:
		return ClassS, nil
	case width <= 32:
		return ClassI, nil
	case width <= 64:
		return ClassQ, nil
	case width <= MaxPortWidth:
		return ClassW, nil
	default:
		return 0, fmt.Errorf("%w: width %d exceeds MaxPortWidth (%d)", ErrPortTooWide, width, MaxPortWidth)
	}
}
