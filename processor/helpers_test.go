package processor_test

import (
	"math/rand"

	. "github.com/onsi/gomega"

	"github.com/KuangjuX-Archived/tomasulo-emulator/processor"
)

func newCore(opts ...processor.Option) *processor.Tomasulo {
	c, err := processor.NewTomasulo(opts...)
	Expect(err).NotTo(HaveOccurred())
	return c
}

func newOracle(opts ...processor.Option) *processor.InOrder {
	m, err := processor.NewInOrder(opts...)
	Expect(err).NotTo(HaveOccurred())
	return m
}

func load(m processor.Machine, prog ...processor.Instruction) {
	Expect(processor.LoadProgram(m, prog)).To(Succeed())
}

func setRegs(m processor.Machine, regs map[processor.Reg]int32) {
	for r, v := range regs {
		Expect(m.SetRegister(r, v)).To(Succeed())
	}
}

// robEntry finds the busy reorder buffer entry holding ins.
func robEntry(s processor.State, ins processor.Instruction) (processor.ROBEntryState, bool) {
	for _, e := range s.ReorderBuffer {
		if e.Busy && e.Instruction == ins {
			return e, true
		}
	}
	return processor.ROBEntryState{}, false
}

func stationFor(s processor.State, ins processor.Instruction) (processor.StationState, bool) {
	for _, rs := range s.ReservationStations {
		if rs.Busy && rs.Instruction == ins {
			return rs, true
		}
	}
	return processor.StationState{}, false
}

// recorder collects commit records.
type recorder struct {
	records []processor.CommitRecord
}

func (r *recorder) Commit(rec processor.CommitRecord) error {
	r.records = append(r.records, rec)
	return nil
}

// retired strips the fields that legitimately differ between machines:
// the cycle and the register file snapshot.
func (r *recorder) retired() []processor.CommitRecord {
	res := make([]processor.CommitRecord, len(r.records))
	for i, rec := range r.records {
		rec.Cycle = 0
		rec.Registers = [processor.NumRegisters]int32{}
		res[i] = rec
	}
	return res
}

// randomProgram never writes R0, so R0-based addresses stay put. Stores use
// aligned offsets; loads may be misaligned.
func randomProgram(rng *rand.Rand, n int) []processor.Instruction {
	reg := func() processor.Reg { return processor.Reg(rng.Intn(processor.NumRegisters)) }
	dst := func() processor.Reg { return processor.Reg(1 + rng.Intn(processor.NumRegisters-1)) }

	prog := make([]processor.Instruction, n)
	for i := range prog {
		switch rng.Intn(7) {
		case 0:
			prog[i] = processor.Add(dst(), reg(), reg())
		case 1:
			prog[i] = processor.Sub(dst(), reg(), reg())
		case 2:
			prog[i] = processor.Mul(dst(), reg(), reg())
		case 3:
			prog[i] = processor.Div(dst(), reg(), reg())
		case 4:
			prog[i] = processor.Load{Rd: dst(), Base: 0, Offset: int32(rng.Intn(256))}
		case 5:
			prog[i] = processor.Store{Rt: reg(), Base: 0, Offset: int32(4 * rng.Intn(64))}
		default:
			prog[i] = processor.Jump{Rs: reg()}
		}
	}
	return prog
}

func randomRegs(rng *rand.Rand) map[processor.Reg]int32 {
	regs := make(map[processor.Reg]int32)
	for r := processor.Reg(1); r < processor.NumRegisters; r++ {
		regs[r] = int32(rng.Intn(2001) - 1000)
	}
	// An occasional large value makes overflow faults reachable.
	regs[processor.Reg(1+rng.Intn(processor.NumRegisters-1))] = 1<<31 - 1
	return regs
}

func randomData(rng *rand.Rand) []processor.Word {
	words := make([]processor.Word, 64)
	for i := range words {
		words[i] = processor.Word{Addr: uint32(4 * i), Value: int32(rng.Intn(10) + 1)}
	}
	return words
}
