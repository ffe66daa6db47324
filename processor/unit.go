package processor

type unit struct {
	class     Class
	busy      bool
	remaining int
	station   int
}

type unitPool struct {
	units []unit
}

func newUnitPool(sizes [NumClasses]int) unitPool {
	var p unitPool
	for c, n := range sizes {
		for i := 0; i < n; i++ {
			p.units = append(p.units, unit{class: Class(c), station: -1})
		}
	}
	return p
}

func (p *unitPool) free(c Class) int {
	for i := range p.units {
		if u := &p.units[i]; u.class == c && !u.busy {
			return i
		}
	}
	return -1
}

func (p *unitPool) start(i, station, latency int) {
	p.units[i] = unit{class: p.units[i].class, busy: true, remaining: latency, station: station}
}

// tick advances every running unit by one cycle.
func (p *unitPool) tick() {
	for i := range p.units {
		if u := &p.units[i]; u.busy && u.remaining > 0 {
			u.remaining--
		}
	}
}

// finished returns the units whose countdown has run out.
func (p *unitPool) finished() []int {
	var res []int
	for i := range p.units {
		if u := &p.units[i]; u.busy && u.remaining == 0 {
			res = append(res, i)
		}
	}
	return res
}

func (p *unitPool) release(i int) {
	p.units[i] = unit{class: p.units[i].class, station: -1}
}
