package processor

import (
	"fmt"
	"io"
	"strings"
)

// CommitRecord describes one instruction leaving the machine, in program
// order. Registers is the register file after the commit.
type CommitRecord struct {
	Cycle uint64
	Inst  Instruction

	Dest    Reg
	HasDest bool
	Value   int32

	// Stores report the word they wrote.
	Addr  uint32
	Store bool

	Registers [NumRegisters]int32
}

// Tracer receives every commit. A non-nil error stops the run.
type Tracer interface {
	Commit(rec CommitRecord) error
}

type TracerFunc func(rec CommitRecord) error

func (f TracerFunc) Commit(rec CommitRecord) error {
	return f(rec)
}

// RegisterDump writes one full register dump line per commit.
type RegisterDump struct {
	w io.Writer
}

func NewRegisterDump(w io.Writer) *RegisterDump {
	return &RegisterDump{w: w}
}

func (d *RegisterDump) Commit(rec CommitRecord) error {
	_, err := fmt.Fprintln(d.w, FormatRegisters(rec.Registers))
	return err
}

// FormatRegisters renders regs as "reg0: v0; reg1: v1; ... reg31: v31;".
func FormatRegisters(regs [NumRegisters]int32) string {
	var sb strings.Builder
	for i, v := range regs {
		if i != 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "reg%d: %d;", i, v)
	}
	return sb.String()
}
