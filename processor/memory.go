package processor

import "sort"

// WordSize is the number of bytes per addressable word.
const WordSize = 4

// AlignmentPolicy decides what a misaligned read does. Misaligned writes
// always fail.
type AlignmentPolicy uint8

const (
	// AlignDown rounds a misaligned read down to its word boundary.
	AlignDown AlignmentPolicy = iota
	// Strict fails misaligned reads the same way as misaligned writes.
	Strict
)

// Word is one mapped memory location.
type Word struct {
	Addr  uint32
	Value int32
}

// Memory is a sparse word-addressable store. Unmapped words read as 0.
type Memory struct {
	words  map[uint32]int32
	policy AlignmentPolicy
}

func NewMemory(policy AlignmentPolicy) *Memory {
	return &Memory{
		words:  make(map[uint32]int32),
		policy: policy,
	}
}

func (m *Memory) Read(addr uint32) (int32, error) {
	if !aligned(addr) {
		if m.policy == Strict {
			return 0, &MisalignedAccessError{Addr: addr}
		}
		addr = alignDown(addr)
	}
	return m.words[addr], nil
}

func (m *Memory) Write(addr uint32, value int32) error {
	if !aligned(addr) {
		return &MisalignedAccessError{Addr: addr, Write: true}
	}
	m.words[addr] = value
	return nil
}

// Words returns every mapped word in address order.
func (m *Memory) Words() []Word {
	res := make([]Word, 0, len(m.words))
	for addr, v := range m.words {
		res = append(res, Word{Addr: addr, Value: v})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Addr < res[j].Addr })
	return res
}
