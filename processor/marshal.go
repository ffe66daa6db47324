package processor

import "fmt"

// The textual forms below are the ones ParseInstruction accepts.

func (i ALU) String() string {
	return fmt.Sprintf("%s,%s,%s,%s", i.Op, i.Rd, i.Rs, i.Rt)
}

func (i Load) String() string {
	return fmt.Sprintf("%s,%s,%s,%d", OpLoad, i.Rd, i.Base, i.Offset)
}

func (i Store) String() string {
	return fmt.Sprintf("%s,%s,%s,%d", OpStore, i.Rt, i.Base, i.Offset)
}

func (i Jump) String() string {
	return fmt.Sprintf("%s,%s", OpJump, i.Rs)
}

func (i ALU) MarshalText() ([]byte, error)   { return []byte(i.String()), nil }
func (i Load) MarshalText() ([]byte, error)  { return []byte(i.String()), nil }
func (i Store) MarshalText() ([]byte, error) { return []byte(i.String()), nil }
func (i Jump) MarshalText() ([]byte, error)  { return []byte(i.String()), nil }
