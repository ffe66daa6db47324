package processor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/KuangjuX-Archived/tomasulo-emulator/processor"
)

var _ = Describe("Memory", func() {
	var mem *processor.Memory

	BeforeEach(func() {
		mem = processor.NewMemory(processor.AlignDown)
	})

	It("reads unmapped words as zero", func() {
		v, err := mem.Read(0x100)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(int32(0)))
	})

	It("reads back what was written", func() {
		Expect(mem.Write(0x10, -7)).To(Succeed())
		Expect(mem.Read(0x10)).To(Equal(int32(-7)))
	})

	It("aligns misaligned reads down", func() {
		Expect(mem.Write(0x8, 4)).To(Succeed())
		Expect(mem.Read(0x9)).To(Equal(int32(4)))
		Expect(mem.Read(0xB)).To(Equal(int32(4)))
	})

	It("fails misaligned writes", func() {
		err := mem.Write(0x6, 1)
		Expect(err).To(MatchError(processor.ErrMisalignedAccess))

		var mae *processor.MisalignedAccessError
		Expect(err).To(BeAssignableToTypeOf(mae))
		Expect(err.(*processor.MisalignedAccessError).Write).To(BeTrue())
		Expect(mem.Words()).To(BeEmpty())
	})

	It("fails misaligned reads under the strict policy", func() {
		strict := processor.NewMemory(processor.Strict)
		_, err := strict.Read(0x2)
		Expect(err).To(MatchError(processor.ErrMisalignedAccess))
	})

	It("lists words in address order", func() {
		Expect(mem.Write(0x8, 3)).To(Succeed())
		Expect(mem.Write(0x0, 1)).To(Succeed())
		Expect(mem.Write(0x4, 2)).To(Succeed())
		Expect(mem.Words()).To(Equal([]processor.Word{
			{Addr: 0x0, Value: 1},
			{Addr: 0x4, Value: 2},
			{Addr: 0x8, Value: 3},
		}))
	})
})
