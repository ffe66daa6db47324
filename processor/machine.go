package processor

import "fmt"

// Machine is what both the Tomasulo core and the in-order reference
// executor look like to a driver.
type Machine interface {
	// AddInstruction appends to the instruction queue.
	AddInstruction(ins Instruction) error
	SetRegister(r Reg, v int32) error
	WriteMemory(addr uint32, v int32) error

	// Step advances one clock cycle.
	Step() error
	// Run steps until Done or an error.
	Run() error
	Done() bool

	Registers() [NumRegisters]int32
	Memory() *Memory
	Stats() Statistics
	DumpState() State
}

type Kind string

const (
	KindTomasulo Kind = "tomasulo"
	KindInOrder  Kind = "inorder"
)

// New builds a machine of the given kind.
func New(kind Kind, opts ...Option) (Machine, error) {
	var (
		m   Machine
		err error
	)
	switch kind {
	case KindTomasulo:
		m, err = NewTomasulo(opts...)
	case KindInOrder:
		m, err = NewInOrder(opts...)
	default:
		return nil, fmt.Errorf("%w: unknown machine %q", ErrBadConfig, kind)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// LoadProgram queues a whole program.
func LoadProgram(m Machine, program []Instruction) error {
	for i, ins := range program {
		if err := m.AddInstruction(ins); err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
	}
	return nil
}

// Seed writes every word into m's memory.
func Seed(m Machine, words []Word) error {
	for _, w := range words {
		if err := m.WriteMemory(w.Addr, w.Value); err != nil {
			return err
		}
	}
	return nil
}
