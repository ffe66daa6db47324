package processor

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInstruction = errors.New("malformed instruction")
	ErrInvalidRegister      = errors.New("invalid register")
	ErrMisalignedAccess     = errors.New("misaligned memory access")
	ErrArithmeticFault      = errors.New("arithmetic fault")
	ErrBadConfig            = errors.New("bad configuration")
)

// FaultKind records why an instruction's result is not the mathematical one.
type FaultKind uint8

const (
	FaultNone FaultKind = iota
	FaultOverflow
	FaultDivideByZero
	FaultMisaligned
)

func (k FaultKind) String() string {
	switch k {
	case FaultNone:
		return "none"
	case FaultOverflow:
		return "overflow"
	case FaultDivideByZero:
		return "divide by zero"
	case FaultMisaligned:
		return "misaligned"
	default:
		return fmt.Sprintf("FaultKind(%d)", uint8(k))
	}
}

func (k FaultKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// FaultMode selects what a committing instruction with an arithmetic fault
// does to the run.
type FaultMode uint8

const (
	// SilentZero commits 0 as the result and keeps running.
	SilentZero FaultMode = iota
	// Trap stops the run with an *ArithmeticError at commit.
	Trap
)

func (m FaultMode) String() string {
	switch m {
	case SilentZero:
		return "silent-zero"
	case Trap:
		return "trap"
	default:
		return fmt.Sprintf("FaultMode(%d)", uint8(m))
	}
}

// ParseFaultMode is the inverse of FaultMode.String.
func ParseFaultMode(s string) (FaultMode, error) {
	switch s {
	case "silent-zero":
		return SilentZero, nil
	case "trap":
		return Trap, nil
	}
	return 0, fmt.Errorf("%w: unknown fault mode %q", ErrBadConfig, s)
}

type InvalidRegisterError struct {
	Reg  Reg
	Inst Instruction
}

func (e *InvalidRegisterError) Error() string {
	if e.Inst == nil {
		return fmt.Sprintf("invalid register: %s", e.Reg)
	}
	return fmt.Sprintf("invalid register: %s in %s", e.Reg, e.Inst)
}

func (e *InvalidRegisterError) Unwrap() error { return ErrInvalidRegister }

type MisalignedAccessError struct {
	Addr  uint32
	Write bool
}

func (e *MisalignedAccessError) Error() string {
	access := "read"
	if e.Write {
		access = "write"
	}
	return fmt.Sprintf("misaligned memory %s at 0x%x", access, e.Addr)
}

func (e *MisalignedAccessError) Unwrap() error { return ErrMisalignedAccess }

// ArithmeticError is returned by a run in Trap mode when a faulting
// instruction reaches the head of the reorder buffer.
type ArithmeticError struct {
	Kind FaultKind
	Inst Instruction
	Tag  Tag
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("arithmetic fault (%s) in %s", e.Kind, e.Inst)
}

func (e *ArithmeticError) Unwrap() error { return ErrArithmeticFault }
