package verilator

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DynamicModel validation", func() {
	var ports []PortDescriptor

	BeforeEach(func() {
		ports = []PortDescriptor{
			{Name: "in_val", MSB: 31, LSB: 0, Direction: Input},
			{Name: "out_val", MSB: 31, LSB: 0, Direction: Output},
		}
	})

	It("rejects a pin on a nonexistent port before touching the library", func() {
		m := newDynamicModel(ports)
		m.handle.module = "passthrough"
		err := m.Pin("does_not_exist", IDataValue(1))
		Expect(err).To(MatchError(ErrNoSuchPort))
	})

	It("rejects a pin on a read-only output port", func() {
		m := newDynamicModel(ports)
		m.handle.module = "passthrough"
		err := m.Pin("out_val", IDataValue(1))
		Expect(err).To(MatchError(ErrInvalidPortDirection))
	})

	It("rejects a read on a write-only input port", func() {
		m := newDynamicModel(ports)
		m.handle.module = "passthrough"
		_, err := m.Read("in_val")
		Expect(err).To(MatchError(ErrInvalidPortDirection))
	})

	It("rejects a value whose class does not match the port's width", func() {
		m := newDynamicModel(ports)
		m.handle.module = "passthrough"
		err := m.Pin("in_val", QDataValue(1))
		Expect(err).To(MatchError(ErrInvalidPortWidth))
	})

	It("reads NotDriven from a wide output before the model has ever been evaluated, without touching the library", func() {
		wide := []PortDescriptor{
			{Name: "wide_out", MSB: 127, LSB: 0, Direction: Output},
		}
		m := newDynamicModel(wide)
		m.handle.module = "wide_main"

		v, err := m.Read("wide_out")
		Expect(err).NotTo(HaveOccurred())
		Expect(v.IsNotDriven()).To(BeTrue())
	})
})
