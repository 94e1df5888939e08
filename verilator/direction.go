package verilator

// PortDirection is a port's signal direction.
//
// https://www.digikey.com/en/maker/blogs/2024/verilog-ports-part-7-of-our-verilog-journey
type PortDirection int

const (
	// Input ports are written by the host and read by the simulated
	// module.
	Input PortDirection = iota
	// Output ports are written by the simulated module and read by the
	// host.
	Output
	// Inout ports can be both pinned and read.
	Inout
)

func (d PortDirection) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	case Inout:
		return "inout"
	default:
		return "invalid"
	}
}

// Readable reports whether a port of this direction can be read.
func (d PortDirection) Readable() bool {
	return d == Output || d == Inout
}

// Writable reports whether a port of this direction can be pinned.
func (d PortDirection) Writable() bool {
	return d == Input || d == Inout
}
