package verilator

import (
	"fmt"
)

// DynamicValue is a port value whose transport class is determined at
// runtime rather than encoded in a Go type, mirroring the original
// implementation's VerilatorValue enum, whose variants are
// NotDriven | C | S | I | Q | W (spec §4.7). Exactly one of the scalar
// field or wide is meaningful, selected by class, unless notDriven is
// set, in which case neither is.
type DynamicValue struct {
	class     PortClass
	scalar    uint64
	wide      []WData
	notDriven bool
}

// CDataValue wraps an 8-bit scalar.
func CDataValue(v CData) DynamicValue { return DynamicValue{class: ClassC, scalar: uint64(v)} }

// SDataValue wraps a 16-bit scalar.
func SDataValue(v SData) DynamicValue { return DynamicValue{class: ClassS, scalar: uint64(v)} }

// IDataValue wraps a 32-bit scalar.
func IDataValue(v IData) DynamicValue { return DynamicValue{class: ClassI, scalar: uint64(v)} }

// QDataValue wraps a 64-bit scalar.
func QDataValue(v QData) DynamicValue { return DynamicValue{class: ClassQ, scalar: v} }

// WideDataValue wraps a >64-bit word array. words is not copied.
func WideDataValue(words []WData) DynamicValue {
	return DynamicValue{class: ClassW, wide: words}
}

// NotDrivenValue represents a wide output port the simulator has never
// driven: DynamicModel.Read returns it for a wide port while the model
// has not yet been evaluated. It carries no scalar or word data.
func NotDrivenValue() DynamicValue {
	return DynamicValue{notDriven: true}
}

// IsNotDriven reports whether v is the NotDriven variant.
func (v DynamicValue) IsNotDriven() bool { return v.notDriven }

// Class reports which transport class this value was constructed as. It
// is meaningless for the NotDriven variant; callers must check
// IsNotDriven first.
func (v DynamicValue) Class() PortClass { return v.class }

// Width returns the value's width in bits, as implied by its class; for
// ClassW this is len(wide)*32, which may be wider than the port it is
// eventually pinned to (the extra high-order bits must be zero). Returns
// 0 for the NotDriven variant.
func (v DynamicValue) Width() int {
	if v.notDriven {
		return 0
	}
	switch v.class {
	case ClassC:
		return 8
	case ClassS:
		return 16
	case ClassI:
		return 32
	case ClassQ:
		return 64
	default:
		return len(v.wide) * 32
	}
}

func (v DynamicValue) String() string {
	switch {
	case v.notDriven:
		return "NotDriven"
	case v.class == ClassW:
		return fmt.Sprintf("%v", v.wide)
	default:
		return fmt.Sprintf("%d", v.scalar)
	}
}

// fitsWidth reports whether v can be pinned to a port of the given
// declared width without dropping set bits. NotDriven never fits: it is
// only ever produced by a read and is not a pinnable value.
func (v DynamicValue) fitsWidth(width int) bool {
	if v.notDriven {
		return false
	}
	class, err := ClassifyWidth(width)
	if err != nil {
		return false
	}
	if class == ClassW && v.class == ClassW {
		return WordCount(width) == len(v.wide)
	}
	return class == v.class
}

// DynamicModel is a module bound by name and port list discovered at
// runtime rather than through a Go type implementing StaticModel. Pin
// and Read resolve their FFI symbol fresh on every call, validating
// direction and width first — mirroring the original implementation's
// read_value!/pin_value! macros, which perform the same checks before
// ever touching the library.
type DynamicModel struct {
	handle ModelHandle
	ports  []PortDescriptor
}

func newDynamicModel(ports []PortDescriptor) *DynamicModel {
	return &DynamicModel{ports: ports}
}

func (m *DynamicModel) port(name string) (PortDescriptor, error) {
	p, ok := PortByName(m.ports, name)
	if !ok {
		return PortDescriptor{}, fmt.Errorf("%w: %q has no port %q", ErrNoSuchPort, m.handle.module, name)
	}
	return p, nil
}

// Pin drives an input or inout port to value.
func (m *DynamicModel) Pin(name string, value DynamicValue) error {
	p, err := m.port(name)
	if err != nil {
		return err
	}
	if !p.Direction.Writable() {
		return fmt.Errorf("%w: port %q is %s, not writable", ErrInvalidPortDirection, name, p.Direction)
	}
	if !value.fitsWidth(p.Width()) {
		return fmt.Errorf("%w: port %q is %d bits wide, value is class %s", ErrInvalidPortWidth, name, p.Width(), value.class)
	}

	sym := PinSymbol(m.handle.module, name)
	switch value.class {
	case ClassC:
		var fn func(uintptr, CData)
		if err := m.handle.lib.RegisterFunc(&fn, sym); err != nil {
			return fmt.Errorf("%w: %v", ErrSymbolMissing, err)
		}
		fn(m.handle.instance, CData(value.scalar))
	case ClassS:
		var fn func(uintptr, SData)
		if err := m.handle.lib.RegisterFunc(&fn, sym); err != nil {
			return fmt.Errorf("%w: %v", ErrSymbolMissing, err)
		}
		fn(m.handle.instance, SData(value.scalar))
	case ClassI:
		var fn func(uintptr, IData)
		if err := m.handle.lib.RegisterFunc(&fn, sym); err != nil {
			return fmt.Errorf("%w: %v", ErrSymbolMissing, err)
		}
		fn(m.handle.instance, IData(value.scalar))
	case ClassQ:
		var fn func(uintptr, QData)
		if err := m.handle.lib.RegisterFunc(&fn, sym); err != nil {
			return fmt.Errorf("%w: %v", ErrSymbolMissing, err)
		}
		fn(m.handle.instance, QData(value.scalar))
	case ClassW:
		var fn func(uintptr, *WData)
		if err := m.handle.lib.RegisterFunc(&fn, sym); err != nil {
			return fmt.Errorf("%w: %v", ErrSymbolMissing, err)
		}
		fn(m.handle.instance, wideValuePointer(value.wide))
	}
	return nil
}

// Read observes the current value of an output or inout port.
func (m *DynamicModel) Read(name string) (DynamicValue, error) {
	p, err := m.port(name)
	if err != nil {
		return DynamicValue{}, err
	}
	if !p.Direction.Readable() {
		return DynamicValue{}, fmt.Errorf("%w: port %q is %s, not readable", ErrInvalidPortDirection, name, p.Direction)
	}

	class, err := ClassifyWidth(p.Width())
	if err != nil {
		return DynamicValue{}, err
	}

	sym := ReadSymbol(m.handle.module, name)
	switch class {
	case ClassC:
		var fn func(uintptr) CData
		if err := m.handle.lib.RegisterFunc(&fn, sym); err != nil {
			return DynamicValue{}, fmt.Errorf("%w: %v", ErrSymbolMissing, err)
		}
		return CDataValue(fn(m.handle.instance)), nil
	case ClassS:
		var fn func(uintptr) SData
		if err := m.handle.lib.RegisterFunc(&fn, sym); err != nil {
			return DynamicValue{}, fmt.Errorf("%w: %v", ErrSymbolMissing, err)
		}
		return SDataValue(fn(m.handle.instance)), nil
	case ClassI:
		var fn func(uintptr) IData
		if err := m.handle.lib.RegisterFunc(&fn, sym); err != nil {
			return DynamicValue{}, fmt.Errorf("%w: %v", ErrSymbolMissing, err)
		}
		return IDataValue(fn(m.handle.instance)), nil
	case ClassQ:
		var fn func(uintptr) QData
		if err := m.handle.lib.RegisterFunc(&fn, sym); err != nil {
			return DynamicValue{}, fmt.Errorf("%w: %v", ErrSymbolMissing, err)
		}
		return QDataValue(fn(m.handle.instance)), nil
	default:
		if !m.handle.evaluated {
			return NotDrivenValue(), nil
		}
		var fn func(uintptr, *WData)
		if err := m.handle.lib.RegisterFunc(&fn, sym); err != nil {
			return DynamicValue{}, fmt.Errorf("%w: %v", ErrSymbolMissing, err)
		}
		out := make([]WData, WordCount(p.Width()))
		fn(m.handle.instance, wideValuePointer(out))
		return WideDataValue(out), nil
	}
}

// Eval advances the simulated module by one evaluation cycle.
func (m *DynamicModel) Eval() { m.handle.Eval() }

// Close destroys the simulated instance.
func (m *DynamicModel) Close() { m.handle.Close() }

// Ports returns the module's port list, as supplied to CreateDynamicModel.
func (m *DynamicModel) Ports() []PortDescriptor { return m.ports }
