package cpu

import "math/bits"

// Flag bit positions in the program status word.
const (
	FLAG_CY = uint8(1 << 0) // Carry
	FLAG_1  = uint8(1 << 1) // Always set
	FLAG_P  = uint8(1 << 2) // Parity
	FLAG_AC = uint8(1 << 4) // Auxiliary carry
	FLAG_Z  = uint8(1 << 6) // Zero
	FLAG_S  = uint8(1 << 7) // Sign
)

// Condition is the 3-bit condition code of a conditional jump, call or return.
type Condition uint8

//go:generate go tool stringer -linecomment -type=Condition
const (
	COND_NZ = Condition(0) // NZ
	COND_Z  = Condition(1) // Z
	COND_NC = Condition(2) // NC
	COND_C  = Condition(3) // C
	COND_PO = Condition(4) // PO
	COND_PE = Condition(5) // PE
	COND_P  = Condition(6) // P
	COND_M  = Condition(7) // M
)

// Flags are the processor status flags.
type Flags struct {
	Sign     bool
	Zero     bool
	AuxCarry bool
	Parity   bool // Set on an even population count.
	Carry    bool
}

// Byte packs the flags into the program status word layout.
func (fl Flags) Byte() (psw uint8) {
	psw = FLAG_1
	if fl.Sign {
		psw |= FLAG_S
	}
	if fl.Zero {
		psw |= FLAG_Z
	}
	if fl.AuxCarry {
		psw |= FLAG_AC
	}
	if fl.Parity {
		psw |= FLAG_P
	}
	if fl.Carry {
		psw |= FLAG_CY
	}
	return
}

// SetByte unpacks a program status word. Reserved bits are ignored.
func (fl *Flags) SetByte(psw uint8) {
	fl.Sign = psw&FLAG_S != 0
	fl.Zero = psw&FLAG_Z != 0
	fl.AuxCarry = psw&FLAG_AC != 0
	fl.Parity = psw&FLAG_P != 0
	fl.Carry = psw&FLAG_CY != 0
}

// setZSP updates zero, sign and parity from a result byte.
func (fl *Flags) setZSP(value uint8) {
	fl.Zero = value == 0
	fl.Sign = value&0x80 != 0
	fl.Parity = bits.OnesCount8(value)%2 == 0
}

// Test evaluates a condition code.
func (fl Flags) Test(cond Condition) (ok bool, err error) {
	switch cond {
	case COND_NZ:
		ok = !fl.Zero
	case COND_Z:
		ok = fl.Zero
	case COND_NC:
		ok = !fl.Carry
	case COND_C:
		ok = fl.Carry
	case COND_PO:
		ok = !fl.Parity
	case COND_PE:
		ok = fl.Parity
	case COND_P:
		ok = !fl.Sign
	case COND_M:
		ok = fl.Sign
	default:
		err = ErrConditionCode
	}
	return
}

// String returns the flags in "SZAPC" form, lower case when clear.
func (fl Flags) String() string {
	out := []byte("szapc")
	for n, set := range []bool{fl.Sign, fl.Zero, fl.AuxCarry, fl.Parity, fl.Carry} {
		if set {
			out[n] -= 'a' - 'A'
		}
	}
	return string(out)
}
