package verilator

import (
	"unsafe"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("WideOut", func() {
	It("starts Uninitialized and panics if read before an eval", func() {
		owner := &ModelHandle{}
		out := &WideOut{words: 4, port: "wide_output", owner: owner}

		Expect(out.State()).To(Equal(Uninitialized))
		Expect(func() { out.Value() }).To(PanicWith(BeAssignableToTypeOf(&UninitializedOutputError{})))
	})

	It("becomes Initialized once the owning model has been evaluated", func() {
		owner := &ModelHandle{evalFn: func(uintptr) {}}
		owner.Eval()

		readCalls := 0
		out := &WideOut{
			words: 2,
			port:  "wide_output",
			owner: owner,
			readFn: func(uintptr, *WData) {
				readCalls++
			},
		}

		Expect(out.State()).To(Equal(Initialized))
		value := out.Value()
		Expect(value).To(HaveLen(2))
		Expect(readCalls).To(Equal(1))
	})
})

var _ = Describe("WideIn", func() {
	It("panics when pinned with the wrong number of words", func() {
		owner := &ModelHandle{}
		in := &WideIn{words: 4, owner: owner, pinFn: func(uintptr, *WData) {}}

		Expect(func() { in.Pin([]WData{1, 2}) }).To(Panic())
	})

	It("pins a correctly-sized word array", func() {
		owner := &ModelHandle{}
		var seen []WData
		in := &WideIn{
			words: 2,
			owner: owner,
			pinFn: func(_ uintptr, p *WData) {
				seen = append(seen, unsafe.Slice(p, 2)...)
			},
		}

		in.Pin([]WData{10, 20})
		Expect(seen).To(Equal([]WData{10, 20}))
	})
})
