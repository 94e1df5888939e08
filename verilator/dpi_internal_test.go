package verilator

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DPI", func() {
	It("derives a C prototype from scalar pointer parameters", func() {
		fn, err := DPI("three", func(out *uint32) {
			*out = 3
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(fn.Name).To(Equal("three"))
		Expect(fn.CSignature).To(Equal("void three(unsigned int* p0)"))
	})

	It("handles functions with no parameters", func() {
		fn, err := DPI("ping", func() {})
		Expect(err).NotTo(HaveOccurred())
		Expect(fn.CSignature).To(Equal("void ping(void)"))
	})

	It("rejects a function with a return value", func() {
		_, err := DPI("bad", func() uint32 { return 0 })
		Expect(err).To(HaveOccurred())
	})

	It("rejects an unsupported parameter type", func() {
		_, err := DPI("bad", func(s string) {})
		Expect(err).To(HaveOccurred())
	})

	It("rejects a non-function value", func() {
		_, err := DPI("bad", 42)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("generateDPIWrapper", func() {
	It("renders an empty but valid table when there are no functions", func() {
		src := generateDPIWrapper(nil)
		Expect(src).To(ContainSubstring("static void* marlin_dpi_table[1];"))
		Expect(src).To(ContainSubstring("void dpi_init_callback(void** table)"))
	})

	It("renders one trampoline per registered function, in order", func() {
		three, err := DPI("three", func(out *uint32) {})
		Expect(err).NotTo(HaveOccurred())
		check, err := DPI("check_three", func(v uint32) {})
		Expect(err).NotTo(HaveOccurred())

		src := generateDPIWrapper([]DpiFunction{three, check})
		Expect(src).To(ContainSubstring("static void* marlin_dpi_table[2];"))
		Expect(src).To(ContainSubstring("marlin_dpi_table[0]"))
		Expect(src).To(ContainSubstring("marlin_dpi_table[1]"))
		Expect(src).To(ContainSubstring("void three(unsigned int* p0)"))
		Expect(src).To(ContainSubstring("void check_three(unsigned int p0)"))
	})
})
