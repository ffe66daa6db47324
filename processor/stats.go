package processor

type Statistics struct {
	Cycles    uint64
	Issued    uint64
	Committed uint64

	// IssueStalls counts cycles whose issue stopped on a missing
	// reservation station or reorder buffer slot.
	IssueStalls uint64
	// DispatchStalls counts ready stations left waiting for a free unit.
	DispatchStalls uint64
	// OrderingStalls counts ready loads held back by an older store.
	OrderingStalls uint64

	Faults uint64
}

// IPC returns committed instructions per cycle.
func (s Statistics) IPC() float64 {
	if s.Cycles == 0 {
		return 0
	}
	return float64(s.Committed) / float64(s.Cycles)
}
