package processor_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/KuangjuX-Archived/tomasulo-emulator/processor"
)

var _ = Describe("InOrder", func() {
	It("executes one instruction per cycle", func() {
		m := newOracle()
		setRegs(m, map[processor.Reg]int32{2: 6, 3: 7})
		load(m,
			processor.Mul(1, 2, 3),
			processor.Store{Rt: 1, Base: 0, Offset: 8},
			processor.Load{Rd: 4, Base: 0, Offset: 8},
			processor.Jump{Rs: 4},
		)

		Expect(m.Run()).To(Succeed())
		Expect(m.Registers()[4]).To(Equal(int32(42)))
		Expect(m.Stats().Cycles).To(Equal(uint64(4)))
		Expect(m.Stats().IPC()).To(BeNumerically("==", 1))
		Expect(m.Memory().Words()).To(ConsistOf(processor.Word{Addr: 8, Value: 42}))
	})

	It("reports the queue in its state", func() {
		m := newOracle()
		load(m, processor.Add(1, 2, 3), processor.Jump{Rs: 1})
		Expect(m.Step()).To(Succeed())

		s := m.DumpState()
		Expect(s.Cycle).To(Equal(uint64(1)))
		Expect(s.InstructionQueue).To(Equal([]processor.Instruction{processor.Jump{Rs: 1}}))
		Expect(s.ReorderBuffer).To(BeEmpty())
	})

	It("traps like the out-of-order core", func() {
		m := newOracle(processor.WithFaultMode(processor.Trap))
		load(m, processor.Div(1, 2, 3))
		Expect(m.Run()).To(MatchError(processor.ErrArithmeticFault))
		Expect(m.Done()).To(BeTrue())
	})
})

var _ = Describe("Tomasulo against InOrder", func() {
	type outcome struct {
		regs    [processor.NumRegisters]int32
		words   []processor.Word
		retired []processor.CommitRecord
	}

	run := func(m processor.Machine, rec *recorder, seed int64) outcome {
		rng := rand.New(rand.NewSource(seed))
		prog := randomProgram(rng, 100)
		setRegs(m, randomRegs(rng))
		Expect(processor.Seed(m, randomData(rng))).To(Succeed())
		load(m, prog...)
		Expect(m.Run()).To(Succeed())
		return outcome{regs: m.Registers(), words: m.Memory().Words(), retired: rec.retired()}
	}

	DescribeTable("commits the same results in the same order",
		func(opts ...processor.Option) {
			for seed := int64(1); seed <= 20; seed++ {
				rec := &recorder{}
				ooo := newCore(append(opts, processor.WithTracer(rec))...)
				got := run(ooo, rec, seed)

				ref := &recorder{}
				want := run(newOracle(processor.WithTracer(ref)), ref, seed)

				Expect(got.retired).To(Equal(want.retired), "seed %d", seed)
				Expect(got.regs).To(Equal(want.regs), "seed %d", seed)
				Expect(got.words).To(Equal(want.words), "seed %d", seed)
				Expect(ooo.Stats().Committed).To(Equal(uint64(100)))
			}
		},
		Entry("default configuration"),
		Entry("single issue", processor.WithIssueWidth(1)),
		Entry("wide issue", processor.WithIssueWidth(4), processor.WithROBSize(16),
			processor.WithStations(processor.ClassAddSub, 6), processor.WithUnits(processor.ClassAddSub, 3)),
		Entry("tiny reorder buffer", processor.WithROBSize(1)),
	)
})
