package cpu

// Register is a 3-bit register selector, as encoded in an opcode.
// REG_M selects the memory byte addressed by HL.
type Register uint8

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_B = Register(0) // B
	REG_C = Register(1) // C
	REG_D = Register(2) // D
	REG_E = Register(3) // E
	REG_H = Register(4) // H
	REG_L = Register(5) // L
	REG_M = Register(6) // M
	REG_A = Register(7) // A
)

// Pair is a 2-bit register pair selector, as encoded in an opcode.
//
// The fourth encoding is the stack pointer everywhere except PUSH and POP,
// where it is the program status word.
type Pair uint8

//go:generate go tool stringer -linecomment -type=Pair
const (
	PAIR_BC  = Pair(0) // B
	PAIR_DE  = Pair(1) // D
	PAIR_HL  = Pair(2) // H
	PAIR_SP  = Pair(3) // SP
	PAIR_PSW = Pair(3) // PSW
)

// StackString names the pair as PUSH and POP see it.
func (p Pair) StackString() string {
	if p == PAIR_PSW {
		return "PSW"
	}
	return p.String()
}

// Registers is the 8-bit register file.
type Registers struct {
	A, B, C, D, E, H, L uint8
}

// BC returns the BC register pair.
func (r Registers) BC() uint16 {
	return uint16(r.B)<<8 | uint16(r.C)
}

// DE returns the DE register pair.
func (r Registers) DE() uint16 {
	return uint16(r.D)<<8 | uint16(r.E)
}

// HL returns the HL register pair.
func (r Registers) HL() uint16 {
	return uint16(r.H)<<8 | uint16(r.L)
}

// ref returns the storage for a named register. REG_M and unknown
// selectors have none.
func (r *Registers) ref(reg Register) *uint8 {
	switch reg {
	case REG_B:
		return &r.B
	case REG_C:
		return &r.C
	case REG_D:
		return &r.D
	case REG_E:
		return &r.E
	case REG_H:
		return &r.H
	case REG_L:
		return &r.L
	case REG_A:
		return &r.A
	}
	return nil
}

// pairRefs returns the high and low storage of BC, DE or HL.
func (r *Registers) pairRefs(p Pair) (hi, lo *uint8) {
	switch p {
	case PAIR_BC:
		return &r.B, &r.C
	case PAIR_DE:
		return &r.D, &r.E
	case PAIR_HL:
		return &r.H, &r.L
	}
	return nil, nil
}
