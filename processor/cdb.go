package processor

// result is one transfer on the common data bus.
type result struct {
	tag   Tag
	value int32
	addr  uint32
	fault FaultKind
}

// broadcast collects the result of every unit that finished its countdown
// in the previous cycle and delivers all of them at once: to each waiting
// reservation station and to the owning reorder buffer entry. The bus has
// no width limit. Finished stations and units are released.
func (c *Tomasulo) broadcast() {
	finished := c.units.finished()
	if len(finished) == 0 {
		return
	}

	bus := make([]result, 0, len(finished))
	for _, u := range finished {
		idx := c.units.units[u].station
		s := &c.stations.stations[idx]
		bus = append(bus, c.execute(s))
		s.release()
		c.units.release(u)
	}

	for _, r := range bus {
		c.stations.snoop(r.tag, r.value)
		e := c.rob.lookup(r.tag)
		if e == nil {
			panic("broadcast for a tag with no reorder buffer entry")
		}
		e.ready = true
		e.value = r.value
		e.addr = r.addr
		e.fault = r.fault
	}
}

// execute produces the value a finished station puts on the bus.
func (c *Tomasulo) execute(s *station) result {
	r := result{tag: s.tag, addr: s.addr}
	switch ins := s.inst.(type) {
	case ALU:
		r.value, r.fault = compute(ins.Op, s.j.value, s.k.value)
	case Load:
		v, err := c.mem.Read(s.addr)
		if err != nil {
			r.fault = FaultMisaligned
		}
		r.value = v
	case Store:
		r.value = s.k.value
	case Jump:
	default:
		panic("unexpected instruction in reservation station")
	}
	return r
}
