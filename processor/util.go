package processor

import "math"

// compute evaluates an ALU opcode. On overflow or division by zero the
// result is 0 and the fault kind says why.
func compute(op Opcode, a, b int32) (int32, FaultKind) {
	var wide int64
	switch op {
	case OpAdd:
		wide = int64(a) + int64(b)
	case OpSub:
		wide = int64(a) - int64(b)
	case OpMul:
		wide = int64(a) * int64(b)
	case OpDiv:
		if b == 0 {
			return 0, FaultDivideByZero
		}
		wide = int64(a) / int64(b)
	default:
		panic("unexpected opcode: " + string(op))
	}
	if wide > math.MaxInt32 || wide < math.MinInt32 {
		return 0, FaultOverflow
	}
	return int32(wide), FaultNone
}

// effectiveAddress wraps base+offset to 32 bits.
func effectiveAddress(base, offset int32) uint32 {
	return uint32(base) + uint32(offset)
}

func alignDown(addr uint32) uint32 {
	return addr &^ (WordSize - 1)
}

func aligned(addr uint32) bool {
	return addr%WordSize == 0
}
