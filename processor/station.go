package processor

// operand is either a resolved value (tag == NoTag) or the tag of the
// instruction that will produce it. These are the Qj/Vj and Qk/Vk pairs.
type operand struct {
	tag   Tag
	value int32
}

func (o operand) ready() bool {
	return o.tag == NoTag
}

// capture takes the value off the bus if o is waiting for t.
func (o *operand) capture(t Tag, v int32) bool {
	if o.tag == NoTag || o.tag != t {
		return false
	}
	o.tag = NoTag
	o.value = v
	return true
}

type station struct {
	class      Class
	busy       bool
	dispatched bool
	inst       Instruction
	tag        Tag // reorder buffer entry that receives the result

	j, k operand
	addr uint32 // loads and stores, set at dispatch
}

func (s *station) eligible() bool {
	return s.busy && !s.dispatched && s.j.ready() && s.k.ready()
}

// address returns the effective address of a load or store once its base
// operand has resolved.
func (s *station) address() (uint32, bool) {
	if !s.j.ready() {
		return 0, false
	}
	switch ins := s.inst.(type) {
	case Load:
		return effectiveAddress(s.j.value, ins.Offset), true
	case Store:
		return effectiveAddress(s.j.value, ins.Offset), true
	}
	return 0, false
}

func (s *station) release() {
	*s = station{class: s.class}
}

type stationPool struct {
	stations []station
}

func newStationPool(sizes [NumClasses]int) stationPool {
	var p stationPool
	for c, n := range sizes {
		for i := 0; i < n; i++ {
			p.stations = append(p.stations, station{class: Class(c)})
		}
	}
	return p
}

// free returns the index of an idle station of class c, or -1.
func (p *stationPool) free(c Class) int {
	for i := range p.stations {
		if s := &p.stations[i]; s.class == c && !s.busy {
			return i
		}
	}
	return -1
}

func (p *stationPool) byTag(t Tag) *station {
	for i := range p.stations {
		if s := &p.stations[i]; s.busy && s.tag == t {
			return s
		}
	}
	return nil
}

// snoop delivers a broadcast result to every station waiting on t.
func (p *stationPool) snoop(t Tag, v int32) {
	for i := range p.stations {
		s := &p.stations[i]
		if !s.busy {
			continue
		}
		s.j.capture(t, v)
		s.k.capture(t, v)
	}
}

// eligible returns the stations ready to execute, oldest instruction first.
func (p *stationPool) eligible() []int {
	var res []int
	for i := range p.stations {
		if p.stations[i].eligible() {
			res = append(res, i)
		}
	}
	// Insertion sort on tag; pools are a handful of entries.
	for i := 1; i < len(res); i++ {
		for j := i; j > 0 && p.stations[res[j]].tag < p.stations[res[j-1]].tag; j-- {
			res[j], res[j-1] = res[j-1], res[j]
		}
	}
	return res
}
