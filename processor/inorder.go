package processor

import "fmt"

// InOrder executes one instruction per cycle, start to finish, in program
// order. It shares the arithmetic, fault and memory rules of the Tomasulo
// core and serves as its reference.
type InOrder struct {
	cfg Config

	regs  [NumRegisters]int32
	mem   *Memory
	queue []Instruction

	cycle  uint64
	stats  Statistics
	halted error
}

func NewInOrder(opts ...Option) (*InOrder, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &InOrder{cfg: cfg, mem: NewMemory(cfg.Alignment)}, nil
}

func (m *InOrder) AddInstruction(ins Instruction) error {
	if err := validate(ins); err != nil {
		return err
	}
	m.queue = append(m.queue, ins)
	return nil
}

func (m *InOrder) SetRegister(r Reg, v int32) error {
	if !r.valid() {
		return &InvalidRegisterError{Reg: r}
	}
	m.regs[r] = v
	return nil
}

func (m *InOrder) WriteMemory(addr uint32, v int32) error {
	return m.mem.Write(addr, v)
}

func (m *InOrder) Registers() [NumRegisters]int32 { return m.regs }
func (m *InOrder) Memory() *Memory                { return m.mem }
func (m *InOrder) Stats() Statistics              { return m.stats }

func (m *InOrder) Done() bool {
	return m.halted != nil || len(m.queue) == 0
}

func (m *InOrder) Step() error {
	if m.halted != nil {
		return m.halted
	}
	if len(m.queue) == 0 {
		return nil
	}
	m.cycle++
	m.stats.Cycles = m.cycle

	ins := m.queue[0]
	m.queue = m.queue[1:]
	m.stats.Issued++
	if err := m.execute(ins); err != nil {
		m.halted = err
		return err
	}
	return nil
}

func (m *InOrder) Run() error {
	for !m.Done() {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return m.halted
}

func (m *InOrder) execute(ins Instruction) error {
	rec := CommitRecord{Cycle: m.cycle, Inst: ins}
	fault := FaultNone

	switch ins := ins.(type) {
	case ALU:
		var v int32
		v, fault = compute(ins.Op, m.regs[ins.Rs], m.regs[ins.Rt])
		rec.Dest, rec.HasDest, rec.Value = ins.Rd, true, v
	case Load:
		addr := effectiveAddress(m.regs[ins.Base], ins.Offset)
		v, err := m.mem.Read(addr)
		if err != nil {
			m.stats.Faults++
			return fmt.Errorf("%s: %w", ins, err)
		}
		rec.Dest, rec.HasDest, rec.Value = ins.Rd, true, v
	case Store:
		addr := effectiveAddress(m.regs[ins.Base], ins.Offset)
		if err := m.mem.Write(addr, m.regs[ins.Rt]); err != nil {
			return fmt.Errorf("%s: %w", ins, err)
		}
		rec.Store, rec.Addr, rec.Value = true, addr, m.regs[ins.Rt]
	case Jump:
	}

	if fault != FaultNone {
		m.stats.Faults++
		if m.cfg.FaultMode == Trap {
			return &ArithmeticError{Kind: fault, Inst: ins}
		}
	}
	if rec.HasDest {
		m.regs[rec.Dest] = rec.Value
	}
	rec.Registers = m.regs
	m.stats.Committed++

	if m.cfg.Tracer != nil {
		if err := m.cfg.Tracer.Commit(rec); err != nil {
			return fmt.Errorf("trace: %w", err)
		}
	}
	return nil
}

func (m *InOrder) DumpState() State {
	s := newState()
	s.Cycle = m.cycle
	s.Registers = m.regs
	s.InstructionQueue = append(s.InstructionQueue, m.queue...)
	return s
}
