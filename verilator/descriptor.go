package verilator

import "fmt"

// PortDescriptor describes one port of a module: its name, its bit range
// (inclusive, msb >= lsb), and its direction.
type PortDescriptor struct {
	Name      string
	MSB       int
	LSB       int
	Direction PortDirection
}

// Width is msb - lsb + 1.
func (p PortDescriptor) Width() int {
	return p.MSB - p.LSB + 1
}

// Class classifies the port's width per §4.1.
func (p PortDescriptor) Class() (PortClass, error) {
	return ClassifyWidth(p.Width())
}

// validate checks the invariants from spec §3: msb >= lsb and width within
// the implementation's declared maximum.
func (p PortDescriptor) validate() error {
	if p.MSB < p.LSB {
		return fmt.Errorf("%w: port %q has msb (%d) < lsb (%d)", ErrInvalidPortSpec, p.Name, p.MSB, p.LSB)
	}
	if _, err := ClassifyWidth(p.Width()); err != nil {
		return fmt.Errorf("port %q: %w", p.Name, err)
	}
	return nil
}

// ModuleDescriptor names a top-level HDL module to simulate, the source
// file it is defined in, and its port interface.
type ModuleDescriptor struct {
	Name       string
	SourcePath string
	Ports      []PortDescriptor
}

// validatePorts checks §3's invariants over the whole port list: each
// port individually valid, and no duplicate names.
func validatePorts(name string, ports []PortDescriptor) error {
	seen := make(map[string]bool, len(ports))
	for _, p := range ports {
		if err := p.validate(); err != nil {
			return fmt.Errorf("module %q: %w", name, err)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: module %q has duplicate port %q", ErrInvalidPortSpec, name, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// PortByName looks up a port by name.
func PortByName(ports []PortDescriptor, name string) (PortDescriptor, bool) {
	for _, p := range ports {
		if p.Name == name {
			return p, true
		}
	}
	return PortDescriptor{}, false
}
