package verilator_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ethanuppal/marlin/verilator"
)

var _ = Describe("ClassifyWidth", func() {
	DescribeTable("classifying a port width into its transport class",
		func(width int, expected verilator.PortClass) {
			class, err := verilator.ClassifyWidth(width)
			Expect(err).NotTo(HaveOccurred())
			Expect(class).To(Equal(expected))
		},
		Entry("1 bit", 1, verilator.ClassC),
		Entry("8 bits", 8, verilator.ClassC),
		Entry("9 bits", 9, verilator.ClassS),
		Entry("16 bits", 16, verilator.ClassS),
		Entry("17 bits", 17, verilator.ClassI),
		Entry("32 bits", 32, verilator.ClassI),
		Entry("33 bits", 33, verilator.ClassQ),
		Entry("64 bits", 64, verilator.ClassQ),
		Entry("65 bits", 65, verilator.ClassW),
		Entry("512 bits", 512, verilator.ClassW),
	)

	Context("when the width is not positive", func() {
		It("rejects zero", func() {
			_, err := verilator.ClassifyWidth(0)
			Expect(err).To(MatchError(verilator.ErrInvalidPortSpec))
		})

		It("rejects negative widths", func() {
			_, err := verilator.ClassifyWidth(-4)
			Expect(err).To(MatchError(verilator.ErrInvalidPortSpec))
		})
	})

	Context("when the width exceeds MaxPortWidth", func() {
		It("rejects it as too wide", func() {
			_, err := verilator.ClassifyWidth(verilator.MaxPortWidth + 1)
			Expect(err).To(MatchError(verilator.ErrPortTooWide))
		})
	})
})

var _ = Describe("WordCount", func() {
	It("rounds up to the nearest 32-bit word", func() {
		Expect(verilator.WordCount(1)).To(Equal(1))
		Expect(verilator.WordCount(32)).To(Equal(1))
		Expect(verilator.WordCount(33)).To(Equal(2))
		Expect(verilator.WordCount(128)).To(Equal(4))
		Expect(verilator.WordCount(511)).To(Equal(16))
	})
})

var _ = Describe("PortDirection", func() {
	It("reports Input as writable but not readable", func() {
		Expect(verilator.Input.Writable()).To(BeTrue())
		Expect(verilator.Input.Readable()).To(BeFalse())
	})

	It("reports Output as readable but not writable", func() {
		Expect(verilator.Output.Readable()).To(BeTrue())
		Expect(verilator.Output.Writable()).To(BeFalse())
	})

	It("reports Inout as both readable and writable", func() {
		Expect(verilator.Inout.Readable()).To(BeTrue())
		Expect(verilator.Inout.Writable()).To(BeTrue())
	})
})
