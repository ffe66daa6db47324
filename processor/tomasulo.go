package processor

import "fmt"

// Tomasulo is an out-of-order core: register renaming through reservation
// stations, pooled execution units, a common data bus and an in-order
// reorder buffer. All of its state is owned by the value and only changed
// by Step.
type Tomasulo struct {
	cfg Config

	regs     registerFile
	mem      *Memory
	queue    []Instruction
	stations stationPool
	units    unitPool
	tags     tagAllocator
	rob      reorderBuffer

	cycle uint64
	stats Statistics

	// halted is the error that stopped the run, if any.
	halted error
}

func NewTomasulo(opts ...Option) (*Tomasulo, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	c := &Tomasulo{
		cfg:      cfg,
		mem:      NewMemory(cfg.Alignment),
		stations: newStationPool(cfg.Stations),
		units:    newUnitPool(cfg.Units),
	}
	c.rob = newReorderBuffer(cfg.ROBSize, &c.tags)
	return c, nil
}

func (c *Tomasulo) AddInstruction(ins Instruction) error {
	if err := validate(ins); err != nil {
		return err
	}
	c.queue = append(c.queue, ins)
	return nil
}

func (c *Tomasulo) SetRegister(r Reg, v int32) error {
	if !r.valid() {
		return &InvalidRegisterError{Reg: r}
	}
	c.regs.values[r] = v
	return nil
}

func (c *Tomasulo) WriteMemory(addr uint32, v int32) error {
	return c.mem.Write(addr, v)
}

func (c *Tomasulo) Registers() [NumRegisters]int32 { return c.regs.values }
func (c *Tomasulo) Memory() *Memory                { return c.mem }
func (c *Tomasulo) Stats() Statistics              { return c.stats }

// Done reports whether nothing is left to issue, execute or commit.
func (c *Tomasulo) Done() bool {
	return c.halted != nil || (len(c.queue) == 0 && !c.rob.head().busy)
}

// Step runs one clock cycle. The phase order decides what each phase can
// see: results broadcast at the start of cycle N reach instructions issued
// in cycle N, while work dispatched in cycle N finishes no earlier than the
// start of cycle N+1.
func (c *Tomasulo) Step() error {
	if c.halted != nil {
		return c.halted
	}
	c.cycle++
	c.stats.Cycles = c.cycle

	c.broadcast()
	if err := c.commit(); err != nil {
		c.halted = err
		return err
	}
	c.issue()
	c.dispatch()
	c.units.tick()
	return nil
}

func (c *Tomasulo) Run() error {
	for !c.Done() {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return c.halted
}

// issue moves up to IssueWidth instructions from the queue into reservation
// stations, in program order. The first instruction that finds no station
// of its class or no reorder buffer slot stops issue for the cycle, even if
// younger instructions could have gone.
func (c *Tomasulo) issue() {
	for n := 0; n < c.cfg.IssueWidth && len(c.queue) > 0; n++ {
		ins := c.queue[0]
		idx := c.stations.free(ins.Opcode().Class())
		if idx < 0 || !c.rob.hasFree() {
			c.stats.IssueStalls++
			return
		}
		c.queue = c.queue[1:]

		entry := c.rob.allocate(ins)
		s := &c.stations.stations[idx]
		s.busy = true
		s.inst = ins
		s.tag = entry.tag

		// Sources are renamed before the destination so that an
		// instruction reading its own destination sees the old producer.
		dst, srcs := ins.regs()
		if len(srcs) > 0 {
			s.j = c.rename(srcs[0])
		}
		if len(srcs) > 1 {
			s.k = c.rename(srcs[1])
		}
		if dst != nil {
			c.regs.claim(*dst, entry.tag)
		}
		c.stats.Issued++
	}
}

// rename resolves a source register to a value, forwarding from a finished
// but uncommitted producer, or to the producer's tag.
func (c *Tomasulo) rename(r Reg) operand {
	st := c.regs.status[r]
	if !st.Busy {
		return operand{value: c.regs.values[r]}
	}
	if e := c.rob.lookup(st.Producer); e != nil && e.ready {
		return operand{value: e.value}
	}
	return operand{tag: st.Producer}
}

// dispatch hands eligible stations, oldest first, to free units of their
// class. A station with no free unit waits without blocking the others.
func (c *Tomasulo) dispatch() {
	for _, idx := range c.stations.eligible() {
		s := &c.stations.stations[idx]
		if _, ok := s.inst.(Load); ok && !c.loadMayProceed(s) {
			c.stats.OrderingStalls++
			continue
		}
		u := c.units.free(s.class)
		if u < 0 {
			c.stats.DispatchStalls++
			continue
		}
		if addr, ok := s.address(); ok {
			s.addr = addr
		}
		s.dispatched = true
		c.units.start(u, idx, c.cfg.Latencies.Latency(s.inst.Opcode()))
	}
}

// loadMayProceed holds a load back while any older uncommitted store has an
// unknown address or writes the word the load reads. Stores only reach
// memory at commit, so once no such store remains the load reads the value
// program order requires.
func (c *Tomasulo) loadMayProceed(load *station) bool {
	addr, _ := load.address()
	addr = alignDown(addr)
	for _, e := range c.rob.olderStores(load.tag) {
		storeAddr := e.addr
		if !e.ready {
			s := c.stations.byTag(e.tag)
			if s == nil {
				panic(fmt.Sprintf("store %d has neither a result nor a station", e.tag))
			}
			var ok bool
			if storeAddr, ok = s.address(); !ok {
				return false
			}
		}
		if alignDown(storeAddr) == addr {
			return false
		}
	}
	return true
}

// commit retires finished instructions from the head of the reorder buffer
// in program order. Any number may retire in one cycle.
func (c *Tomasulo) commit() error {
	for {
		e := c.rob.head()
		if !e.busy || !e.ready {
			return nil
		}
		if err := c.retire(e); err != nil {
			return err
		}
	}
}

func (c *Tomasulo) retire(e *robEntry) error {
	if e.fault != FaultNone {
		c.stats.Faults++
		if e.fault == FaultMisaligned {
			return fmt.Errorf("%s: %w", e.inst, &MisalignedAccessError{Addr: e.addr})
		}
		if c.cfg.FaultMode == Trap {
			return &ArithmeticError{Kind: e.fault, Inst: e.inst, Tag: e.tag}
		}
	}

	rec := CommitRecord{Cycle: c.cycle, Inst: e.inst}
	switch {
	case e.inst.Opcode() == OpStore:
		if err := c.mem.Write(e.addr, e.value); err != nil {
			return fmt.Errorf("%s: %w", e.inst, err)
		}
		rec.Store, rec.Addr, rec.Value = true, e.addr, e.value
	case e.hasDest:
		// A newer instruction that writes the same register may already
		// own it; then this value is dead and the register is left alone.
		c.regs.writeback(e.dest, e.tag, e.value)
		rec.Dest, rec.HasDest, rec.Value = e.dest, true, e.value
	}
	rec.Registers = c.regs.values

	c.rob.retire()
	c.stats.Committed++

	if c.cfg.Tracer != nil {
		if err := c.cfg.Tracer.Commit(rec); err != nil {
			return fmt.Errorf("trace: %w", err)
		}
	}
	return nil
}

func (c *Tomasulo) DumpState() State {
	s := newState()
	s.Cycle = c.cycle
	s.Registers = c.regs.values
	s.RegisterStatus = c.regs.status
	s.InstructionQueue = append(s.InstructionQueue, c.queue...)
	for _, rs := range c.stations.stations {
		s.ReservationStations = append(s.ReservationStations, StationState{
			Class:       rs.class,
			Busy:        rs.busy,
			Dispatched:  rs.dispatched,
			Instruction: rs.inst,
			Tag:         rs.tag,
			Qj:          rs.j.tag,
			Qk:          rs.k.tag,
			Vj:          rs.j.value,
			Vk:          rs.k.value,
			Address:     rs.addr,
		})
	}
	for _, u := range c.units.units {
		s.ExecutionUnits = append(s.ExecutionUnits, UnitState{
			Class:           u.class,
			Busy:            u.busy,
			RemainingCycles: u.remaining,
			Station:         u.station,
		})
	}
	for _, e := range c.rob.entries {
		entry := ROBEntryState{
			Tag:         e.tag,
			Busy:        e.busy,
			Ready:       e.ready,
			Instruction: e.inst,
			Value:       e.value,
			Fault:       e.fault,
		}
		if e.busy && e.hasDest {
			dest := e.dest
			entry.Destination = &dest
		}
		s.ReorderBuffer = append(s.ReorderBuffer, entry)
	}
	return s
}
