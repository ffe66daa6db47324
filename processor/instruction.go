package processor

import "fmt"

// NumRegisters is the size of the architectural register file.
const NumRegisters = 32

// Reg is an architectural register index.
type Reg uint8

func (r Reg) String() string {
	return fmt.Sprintf("R%d", r)
}

func (r Reg) valid() bool {
	return r < NumRegisters
}

type Opcode string

const (
	OpAdd   Opcode = "ADD"
	OpSub   Opcode = "SUB"
	OpMul   Opcode = "MUL"
	OpDiv   Opcode = "DIV"
	OpLoad  Opcode = "LD"
	OpStore Opcode = "ST"
	OpJump  Opcode = "JMP"
)

var allOpcodes = []Opcode{OpAdd, OpSub, OpMul, OpDiv, OpLoad, OpStore, OpJump}

// Class is the functional-unit class an opcode is issued to. Every class owns
// its own reservation stations and execution units.
type Class int

const (
	ClassAddSub Class = iota
	ClassMulDiv
	ClassLoadStore
	ClassBranch

	NumClasses = 4
)

var classNames = [NumClasses]string{"AddSub", "MulDiv", "LoadStore", "Branch"}

func (c Class) String() string {
	if c < 0 || int(c) >= NumClasses {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classNames[c]
}

func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (op Opcode) Class() Class {
	switch op {
	case OpAdd, OpSub:
		return ClassAddSub
	case OpMul, OpDiv:
		return ClassMulDiv
	case OpLoad, OpStore:
		return ClassLoadStore
	case OpJump:
		return ClassBranch
	default:
		panic("unexpected opcode: " + string(op))
	}
}

func (op Opcode) isALU() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	default:
		return false
	}
}

// Instruction is a decoded instruction. It is one of ALU, Load, Store or Jump.
type Instruction interface {
	Opcode() Opcode
	String() string

	// regs returns the destination register, if any, and the source
	// registers in operand order (j first, then k).
	regs() (dst *Reg, srcs []Reg)
}

// ALU is an Add, Sub, Mul or Div: Rd = Rs op Rt.
type ALU struct {
	Op         Opcode
	Rd, Rs, Rt Reg
}

// Load reads the word at Base+Offset into Rd.
type Load struct {
	Rd, Base Reg
	Offset   int32
}

// Store writes Rt to the word at Base+Offset.
type Store struct {
	Rt, Base Reg
	Offset   int32
}

// Jump occupies a branch unit and reads Rs. It never redirects fetch and
// never writes a register.
type Jump struct {
	Rs Reg
}

func Add(rd, rs, rt Reg) ALU { return ALU{Op: OpAdd, Rd: rd, Rs: rs, Rt: rt} }
func Sub(rd, rs, rt Reg) ALU { return ALU{Op: OpSub, Rd: rd, Rs: rs, Rt: rt} }
func Mul(rd, rs, rt Reg) ALU { return ALU{Op: OpMul, Rd: rd, Rs: rs, Rt: rt} }
func Div(rd, rs, rt Reg) ALU { return ALU{Op: OpDiv, Rd: rd, Rs: rs, Rt: rt} }

func (i ALU) Opcode() Opcode   { return i.Op }
func (i Load) Opcode() Opcode  { return OpLoad }
func (i Store) Opcode() Opcode { return OpStore }
func (i Jump) Opcode() Opcode  { return OpJump }

func (i ALU) regs() (*Reg, []Reg) {
	rd := i.Rd
	return &rd, []Reg{i.Rs, i.Rt}
}

func (i Load) regs() (*Reg, []Reg) {
	rd := i.Rd
	return &rd, []Reg{i.Base}
}

func (i Store) regs() (*Reg, []Reg) {
	return nil, []Reg{i.Base, i.Rt}
}

func (i Jump) regs() (*Reg, []Reg) {
	return nil, []Reg{i.Rs}
}

// validate rejects instructions the core cannot hold: unknown ALU opcodes and
// register indices outside the register file.
func validate(ins Instruction) error {
	if ins == nil {
		return fmt.Errorf("%w: nil instruction", ErrMalformedInstruction)
	}
	if alu, ok := ins.(ALU); ok && !alu.Op.isALU() {
		return fmt.Errorf("%w: %q is not an ALU opcode", ErrMalformedInstruction, alu.Op)
	}
	dst, srcs := ins.regs()
	if dst != nil && !dst.valid() {
		return &InvalidRegisterError{Reg: *dst, Inst: ins}
	}
	for _, r := range srcs {
		if !r.valid() {
			return &InvalidRegisterError{Reg: r, Inst: ins}
		}
	}
	return nil
}
