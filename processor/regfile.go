package processor

// RegisterStatus is one row of the renaming table. A register is busy iff
// Producer names the newest in-flight instruction that writes it.
type RegisterStatus struct {
	Busy     bool
	Producer Tag
}

type registerFile struct {
	values [NumRegisters]int32
	status [NumRegisters]RegisterStatus
}

// claim makes t the newest producer of r, replacing any older one.
func (rf *registerFile) claim(r Reg, t Tag) {
	rf.status[r] = RegisterStatus{Busy: true, Producer: t}
}

// writeback stores v into r if t is still r's newest producer and reports
// whether it did. A superseded producer leaves r alone.
func (rf *registerFile) writeback(r Reg, t Tag, v int32) bool {
	if !rf.status[r].Busy || rf.status[r].Producer != t {
		return false
	}
	rf.values[r] = v
	rf.status[r] = RegisterStatus{}
	return true
}
