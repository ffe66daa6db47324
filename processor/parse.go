package processor

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

func parseMnemonic(op string) (Opcode, error) {
	o := Opcode(strings.ToUpper(op))
	for _, mnemonic := range allOpcodes {
		if o == mnemonic {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown mnemonic: %s", op)
}

func parseReg(op string) (Reg, error) {
	if len(op) < 2 || (op[0] != 'R' && op[0] != 'r') {
		return 0, fmt.Errorf("invalid register: %s", op)
	}
	regNum, err := strconv.ParseUint(op[1:], 10, 8)
	if err != nil || regNum >= NumRegisters {
		return 0, fmt.Errorf("invalid register: %s", op)
	}
	return Reg(regNum), nil
}

// ParseRegister reads a register name such as "R7" or "r7".
func ParseRegister(s string) (Reg, error) {
	r, err := parseReg(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRegister, s)
	}
	return r, nil
}

// parseImm accepts decimal, 0x hex and the other Go integer prefixes.
func parseImm(op string) (int32, error) {
	imm, err := strconv.ParseInt(op, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed immediate: %s", op)
	}
	return int32(imm), nil
}

// ParseInstruction decodes one line of assembly:
//
//	ADD,Rd,Rs,Rt   SUB,Rd,Rs,Rt   MUL,Rd,Rs,Rt   DIV,Rd,Rs,Rt
//	LD,Rd,Rs,imm   ST,Rt,Rs,imm   JMP,Rs
//
// Operands may be separated by commas, spaces or both.
func ParseInstruction(asm string) (Instruction, error) {
	parts := strings.FieldsFunc(asm, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedInstruction, asm)
	}

	op, err := parseMnemonic(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInstruction, err)
	}

	want := 4
	if op == OpJump {
		want = 2
	}
	if len(parts) != want {
		return nil, fmt.Errorf("%w: %q", ErrMalformedInstruction, asm)
	}

	var regs []Reg
	switch op {
	case OpLoad, OpStore:
		regs = make([]Reg, 2)
	case OpJump:
		regs = make([]Reg, 1)
	default:
		regs = make([]Reg, 3)
	}
	for i := range regs {
		if regs[i], err = parseReg(parts[i+1]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInstruction, err)
		}
	}

	switch op {
	case OpLoad, OpStore:
		imm, err := parseImm(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInstruction, err)
		}
		if op == OpLoad {
			return Load{Rd: regs[0], Base: regs[1], Offset: imm}, nil
		}
		return Store{Rt: regs[0], Base: regs[1], Offset: imm}, nil
	case OpJump:
		return Jump{Rs: regs[0]}, nil
	default:
		return ALU{Op: op, Rd: regs[0], Rs: regs[1], Rt: regs[2]}, nil
	}
}

// ParseInstructions decodes a program given one instruction per string.
func ParseInstructions(lines []string) ([]Instruction, error) {
	res := make([]Instruction, len(lines))
	for i, line := range lines {
		ins, err := ParseInstruction(line)
		if err != nil {
			return nil, fmt.Errorf("error parsing instruction %d, %w", i, err)
		}
		res[i] = ins
	}
	return res, nil
}

// ParseProgram reads one instruction per line. Blank lines and lines
// starting with '#' are skipped.
func ParseProgram(r io.Reader) ([]Instruction, error) {
	var res []Instruction
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ins, err := ParseInstruction(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		res = append(res, ins)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ParseData reads memory contents as "addr: value" lines.
func ParseData(r io.Reader) ([]Word, error) {
	var res []Word
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		addrStr, valStr, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: malformed data: %q", n, line)
		}
		addr, err := strconv.ParseUint(strings.TrimSpace(addrStr), 0, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: malformed address: %q", n, addrStr)
		}
		val, err := strconv.ParseInt(strings.TrimSpace(valStr), 0, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: malformed value: %q", n, valStr)
		}
		res = append(res, Word{Addr: uint32(addr), Value: int32(val)})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
