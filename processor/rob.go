package processor

// Tag names the result of one issued instruction. Tags come from a monotonic
// per-core counter and are never reused, so a stale producer can never alias
// a newer instruction that landed in the same buffer slot.
type Tag uint64

// NoTag marks an operand that already holds its value.
const NoTag Tag = 0

type tagAllocator struct {
	last Tag
}

func (a *tagAllocator) next() Tag {
	a.last++
	return a.last
}

type robEntry struct {
	tag   Tag
	busy  bool
	ready bool
	inst  Instruction

	dest    Reg
	hasDest bool

	value int32
	addr  uint32 // stores and loads, valid once ready
	fault FaultKind
}

// reorderBuffer is a fixed-depth FIFO. Busy entries always form a prefix:
// allocation takes the first free entry and retirement pops the head and
// appends a fresh entry at the tail. Tags therefore increase in program order.
type reorderBuffer struct {
	entries []robEntry
	tags    *tagAllocator
}

func newReorderBuffer(depth int, tags *tagAllocator) reorderBuffer {
	b := reorderBuffer{
		entries: make([]robEntry, 0, depth),
		tags:    tags,
	}
	for i := 0; i < depth; i++ {
		b.entries = append(b.entries, robEntry{tag: tags.next()})
	}
	return b
}

func (b *reorderBuffer) head() *robEntry {
	return &b.entries[0]
}

func (b *reorderBuffer) hasFree() bool {
	return !b.entries[len(b.entries)-1].busy
}

func (b *reorderBuffer) allocate(ins Instruction) *robEntry {
	for i := range b.entries {
		e := &b.entries[i]
		if e.busy {
			continue
		}
		e.busy = true
		e.ready = false
		e.inst = ins
		if dst, _ := ins.regs(); dst != nil {
			e.dest, e.hasDest = *dst, true
		}
		return e
	}
	return nil
}

func (b *reorderBuffer) lookup(t Tag) *robEntry {
	for i := range b.entries {
		e := &b.entries[i]
		if e.busy && e.tag == t {
			return e
		}
	}
	return nil
}

// retire drops the head and recycles its slot under a new tag.
func (b *reorderBuffer) retire() {
	n := copy(b.entries, b.entries[1:])
	b.entries[n] = robEntry{tag: b.tags.next()}
}

// olderStores returns the in-flight stores issued before t, oldest first.
func (b *reorderBuffer) olderStores(t Tag) []*robEntry {
	var res []*robEntry
	for i := range b.entries {
		e := &b.entries[i]
		if !e.busy || e.tag >= t {
			break
		}
		if e.inst.Opcode() == OpStore {
			res = append(res, e)
		}
	}
	return res
}
