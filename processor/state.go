package processor

// State is a snapshot of a machine between two cycles. It is what the JSON
// state log is made of, one State per cycle.
type State struct {
	Cycle uint64

	Registers      [NumRegisters]int32
	RegisterStatus [NumRegisters]RegisterStatus

	InstructionQueue    []Instruction
	ReservationStations []StationState
	ExecutionUnits      []UnitState
	ReorderBuffer       []ROBEntryState
}

type StationState struct {
	Class       Class
	Busy        bool
	Dispatched  bool
	Instruction Instruction
	Tag         Tag
	Qj, Qk      Tag
	Vj, Vk      int32
	Address     uint32
}

type UnitState struct {
	Class           Class
	Busy            bool
	RemainingCycles int
	Station         int
}

type ROBEntryState struct {
	Tag         Tag
	Busy        bool
	Ready       bool
	Instruction Instruction
	Destination *Reg
	Value       int32
	Fault       FaultKind
}

// BusyStations counts the occupied reservation stations of class c.
func (s State) BusyStations(c Class) int {
	n := 0
	for _, rs := range s.ReservationStations {
		if rs.Class == c && rs.Busy {
			n++
		}
	}
	return n
}

func newState() State {
	// Empty slices, not nil, so the JSON log shows [] rather than null.
	return State{
		InstructionQueue:    make([]Instruction, 0),
		ReservationStations: make([]StationState, 0),
		ExecutionUnits:      make([]UnitState, 0),
		ReorderBuffer:       make([]ROBEntryState, 0),
	}
}
