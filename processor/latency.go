package processor

// LatencyTable holds the execution latency, in cycles, of every opcode.
type LatencyTable struct {
	Add   int
	Sub   int
	Mul   int
	Div   int
	Load  int
	Store int
	Jump  int
}

// DefaultLatencies returns the canonical latencies.
func DefaultLatencies() LatencyTable {
	return LatencyTable{
		Add:   2,
		Sub:   2,
		Mul:   12,
		Div:   24,
		Load:  2,
		Store: 2,
		Jump:  1,
	}
}

func (t LatencyTable) Latency(op Opcode) int {
	switch op {
	case OpAdd:
		return t.Add
	case OpSub:
		return t.Sub
	case OpMul:
		return t.Mul
	case OpDiv:
		return t.Div
	case OpLoad:
		return t.Load
	case OpStore:
		return t.Store
	case OpJump:
		return t.Jump
	default:
		panic("unexpected opcode: " + string(op))
	}
}
