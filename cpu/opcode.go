package cpu

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the instruction mnemonic.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_UNKNOWN = Kind(iota) // ???
	KIND_NOP                  // NOP
	KIND_LXI                  // LXI
	KIND_STAX                 // STAX
	KIND_INX                  // INX
	KIND_INR                  // INR
	KIND_DCR                  // DCR
	KIND_MVI                  // MVI
	KIND_RLC                  // RLC
	KIND_DAD                  // DAD
	KIND_LDAX                 // LDAX
	KIND_DCX                  // DCX
	KIND_RRC                  // RRC
	KIND_RAL                  // RAL
	KIND_RAR                  // RAR
	KIND_SHLD                 // SHLD
	KIND_DAA                  // DAA
	KIND_LHLD                 // LHLD
	KIND_CMA                  // CMA
	KIND_STA                  // STA
	KIND_STC                  // STC
	KIND_LDA                  // LDA
	KIND_CMC                  // CMC
	KIND_MOV                  // MOV
	KIND_HLT                  // HLT
	KIND_ADD                  // ADD
	KIND_ADC                  // ADC
	KIND_SUB                  // SUB
	KIND_SBB                  // SBB
	KIND_ANA                  // ANA
	KIND_XRA                  // XRA
	KIND_ORA                  // ORA
	KIND_CMP                  // CMP
	KIND_RNZ                  // RNZ
	KIND_RZ                   // RZ
	KIND_RNC                  // RNC
	KIND_RC                   // RC
	KIND_RPO                  // RPO
	KIND_RPE                  // RPE
	KIND_RP                   // RP
	KIND_RM                   // RM
	KIND_RET                  // RET
	KIND_POP                  // POP
	KIND_PUSH                 // PUSH
	KIND_JNZ                  // JNZ
	KIND_JZ                   // JZ
	KIND_JNC                  // JNC
	KIND_JC                   // JC
	KIND_JPO                  // JPO
	KIND_JPE                  // JPE
	KIND_JP                   // JP
	KIND_JM                   // JM
	KIND_JMP                  // JMP
	KIND_CNZ                  // CNZ
	KIND_CZ                   // CZ
	KIND_CNC                  // CNC
	KIND_CC                   // CC
	KIND_CPO                  // CPO
	KIND_CPE                  // CPE
	KIND_CP                   // CP
	KIND_CM                   // CM
	KIND_CALL                 // CALL
	KIND_ADI                  // ADI
	KIND_ACI                  // ACI
	KIND_SUI                  // SUI
	KIND_SBI                  // SBI
	KIND_ANI                  // ANI
	KIND_XRI                  // XRI
	KIND_ORI                  // ORI
	KIND_CPI                  // CPI
	KIND_RST                  // RST
	KIND_OUT                  // OUT
	KIND_IN                   // IN
	KIND_XTHL                 // XTHL
	KIND_PCHL                 // PCHL
	KIND_XCHG                 // XCHG
	KIND_SPHL                 // SPHL
	KIND_DI                   // DI
	KIND_EI                   // EI
)

// KIND_COUNT is the number of instruction kinds.
const KIND_COUNT = int(KIND_EI) + 1

// Mode is the addressing mode, which also fixes the instruction length.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_UNKNOWN      = Mode(0) // unknown
	MODE_DIRECT       = Mode(1) // direct
	MODE_PAIR         = Mode(2) // pair
	MODE_STACK        = Mode(3) // stack
	MODE_IMMEDIATE_8  = Mode(4) // d8
	MODE_IMMEDIATE_16 = Mode(5) // d16
)

// Length is the number of instruction stream bytes consumed in this mode.
func (m Mode) Length() int {
	switch m {
	case MODE_IMMEDIATE_8:
		return 2
	case MODE_IMMEDIATE_16:
		return 3
	}
	return 1
}

// Instruction is a decoded instruction.
type Instruction struct {
	Address uint16   // Fetch address, set by the processor.
	Opcode  uint8    // First byte.
	Data    [2]uint8 // Trailing bytes; zero unless the mode consumes them.
	Kind    Kind
	Mode    Mode
	Op1     uint8 // Bits 5-3 or 5-4: destination, pair, condition or vector.
	Op2     uint8 // Bits 2-0: source register.
}

// Length returns the instruction length in bytes.
func (ins Instruction) Length() int {
	return ins.Mode.Length()
}

// Data8 returns the one byte immediate.
func (ins Instruction) Data8() uint8 {
	return ins.Data[0]
}

// Data16 returns the little-endian two byte immediate or address.
func (ins Instruction) Data16() uint16 {
	return uint16(ins.Data[1])<<8 | uint16(ins.Data[0])
}

// Dst returns the destination register selector.
func (ins Instruction) Dst() Register {
	return Register(ins.Op1)
}

// Src returns the source register selector.
func (ins Instruction) Src() Register {
	return Register(ins.Op2)
}

// Pair returns the register pair selector.
func (ins Instruction) Pair() Pair {
	return Pair(ins.Op1)
}

// Cond returns the condition code of a conditional jump, call or return.
func (ins Instruction) Cond() Condition {
	return Condition(ins.Op1)
}

// Vector returns the RST restart address.
func (ins Instruction) Vector() uint16 {
	return uint16(ins.Op1) * 8
}

var (
	aluKinds  = [8]Kind{KIND_ADD, KIND_ADC, KIND_SUB, KIND_SBB, KIND_ANA, KIND_XRA, KIND_ORA, KIND_CMP}
	retKinds  = [8]Kind{KIND_RNZ, KIND_RZ, KIND_RNC, KIND_RC, KIND_RPO, KIND_RPE, KIND_RP, KIND_RM}
	jumpKinds = [8]Kind{KIND_JNZ, KIND_JZ, KIND_JNC, KIND_JC, KIND_JPO, KIND_JPE, KIND_JP, KIND_JM}
	callKinds = [8]Kind{KIND_CNZ, KIND_CZ, KIND_CNC, KIND_CC, KIND_CPO, KIND_CPE, KIND_CP, KIND_CM}
	immKinds  = [8]Kind{KIND_ADI, KIND_ACI, KIND_SUI, KIND_SBI, KIND_ANI, KIND_XRI, KIND_ORI, KIND_CPI}
)

// Decode classifies an opcode and its two following bytes.
// The same bytes always decode identically.
func Decode(opcode, b1, b2 uint8) (ins Instruction, err error) {
	ins = Instruction{Opcode: opcode}

	switch opcode >> 6 {
	case 0b00:
		err = ins.decodeMisc()
	case 0b01:
		ins.decodeMove()
	case 0b10:
		ins.decodeAlu()
	case 0b11:
		err = ins.decodeBranch()
	}

	if err != nil {
		ins = Instruction{Opcode: opcode}
		return
	}

	switch ins.Mode {
	case MODE_IMMEDIATE_8:
		ins.Data = [2]uint8{b1, 0}
	case MODE_IMMEDIATE_16:
		ins.Data = [2]uint8{b1, b2}
	}

	return
}

// set fills in the kind, mode and high operand selector.
func (ins *Instruction) set(kind Kind, mode Mode, op1 uint8) {
	ins.Kind = kind
	ins.Mode = mode
	ins.Op1 = op1
}

// decodeMisc decodes the 00xxxxxx group by its low 6 bits.
func (ins *Instruction) decodeMisc() (err error) {
	op := ins.Opcode
	reg := (op >> 3) & 0b111
	pair := (op >> 4) & 0b11

	switch {
	case op&0x07 == 0x00:
		// 0x08-0x38 are undocumented NOPs.
		ins.set(KIND_NOP, MODE_DIRECT, 0)
	case op&0x0f == 0x01:
		ins.set(KIND_LXI, MODE_IMMEDIATE_16, pair)
	case op&0x0f == 0x03:
		ins.set(KIND_INX, MODE_PAIR, pair)
	case op&0x0f == 0x09:
		ins.set(KIND_DAD, MODE_PAIR, pair)
	case op&0x0f == 0x0b:
		ins.set(KIND_DCX, MODE_PAIR, pair)
	case op&0x07 == 0x04:
		ins.set(KIND_INR, MODE_DIRECT, reg)
	case op&0x07 == 0x05:
		ins.set(KIND_DCR, MODE_DIRECT, reg)
	case op&0x07 == 0x06:
		ins.set(KIND_MVI, MODE_IMMEDIATE_8, reg)
	default:
		switch op {
		case 0x02, 0x12:
			ins.set(KIND_STAX, MODE_PAIR, pair)
		case 0x0a, 0x1a:
			ins.set(KIND_LDAX, MODE_PAIR, pair)
		case 0x22:
			ins.set(KIND_SHLD, MODE_IMMEDIATE_16, 0)
		case 0x2a:
			ins.set(KIND_LHLD, MODE_IMMEDIATE_16, 0)
		case 0x32:
			ins.set(KIND_STA, MODE_IMMEDIATE_16, 0)
		case 0x3a:
			ins.set(KIND_LDA, MODE_IMMEDIATE_16, 0)
		case 0x07:
			ins.set(KIND_RLC, MODE_DIRECT, 0)
		case 0x0f:
			ins.set(KIND_RRC, MODE_DIRECT, 0)
		case 0x17:
			ins.set(KIND_RAL, MODE_DIRECT, 0)
		case 0x1f:
			ins.set(KIND_RAR, MODE_DIRECT, 0)
		case 0x27:
			ins.set(KIND_DAA, MODE_DIRECT, 0)
		case 0x2f:
			ins.set(KIND_CMA, MODE_DIRECT, 0)
		case 0x37:
			ins.set(KIND_STC, MODE_DIRECT, 0)
		case 0x3f:
			ins.set(KIND_CMC, MODE_DIRECT, 0)
		default:
			err = ErrDecode(op)
		}
	}

	return
}

// decodeMove decodes the 01dddsss register-to-register group.
func (ins *Instruction) decodeMove() {
	op := ins.Opcode
	if op == 0x76 {
		// MOV M,M
		ins.set(KIND_HLT, MODE_DIRECT, 0)
		return
	}
	ins.set(KIND_MOV, MODE_DIRECT, (op>>3)&0b111)
	ins.Op2 = op & 0b111
}

// decodeAlu decodes the 10ooosss arithmetic/logical group.
func (ins *Instruction) decodeAlu() {
	op := ins.Opcode
	ins.set(aluKinds[(op>>3)&0b111], MODE_DIRECT, 0)
	ins.Op2 = op & 0b111
}

// decodeBranch decodes the irregular 11xxxxxx group on the full opcode.
func (ins *Instruction) decodeBranch() (err error) {
	op := ins.Opcode
	sel := (op >> 3) & 0b111
	pair := (op >> 4) & 0b11

	switch op {
	case 0xc0, 0xc8, 0xd0, 0xd8, 0xe0, 0xe8, 0xf0, 0xf8:
		ins.set(retKinds[sel], MODE_STACK, sel)
	case 0xc2, 0xca, 0xd2, 0xda, 0xe2, 0xea, 0xf2, 0xfa:
		ins.set(jumpKinds[sel], MODE_IMMEDIATE_16, sel)
	case 0xc4, 0xcc, 0xd4, 0xdc, 0xe4, 0xec, 0xf4, 0xfc:
		ins.set(callKinds[sel], MODE_IMMEDIATE_16, sel)
	case 0xc6, 0xce, 0xd6, 0xde, 0xe6, 0xee, 0xf6, 0xfe:
		ins.set(immKinds[sel], MODE_IMMEDIATE_8, 0)
	case 0xc7, 0xcf, 0xd7, 0xdf, 0xe7, 0xef, 0xf7, 0xff:
		ins.set(KIND_RST, MODE_STACK, sel)
	case 0xc1, 0xd1, 0xe1, 0xf1:
		ins.set(KIND_POP, MODE_STACK, pair)
	case 0xc5, 0xd5, 0xe5, 0xf5:
		ins.set(KIND_PUSH, MODE_STACK, pair)
	case 0xc3, 0xcb:
		// 0xcb is an undocumented JMP.
		ins.set(KIND_JMP, MODE_IMMEDIATE_16, 0)
	case 0xc9, 0xd9:
		// 0xd9 is an undocumented RET.
		ins.set(KIND_RET, MODE_STACK, 0)
	case 0xcd, 0xdd, 0xed, 0xfd:
		// 0xdd, 0xed and 0xfd are undocumented CALLs.
		ins.set(KIND_CALL, MODE_IMMEDIATE_16, 0)
	case 0xd3:
		ins.set(KIND_OUT, MODE_IMMEDIATE_8, 0)
	case 0xdb:
		ins.set(KIND_IN, MODE_IMMEDIATE_8, 0)
	case 0xe3:
		ins.set(KIND_XTHL, MODE_STACK, 0)
	case 0xe9:
		ins.set(KIND_PCHL, MODE_PAIR, 0)
	case 0xeb:
		ins.set(KIND_XCHG, MODE_PAIR, 0)
	case 0xf3:
		ins.set(KIND_DI, MODE_DIRECT, 0)
	case 0xf9:
		ins.set(KIND_SPHL, MODE_STACK, 0)
	case 0xfb:
		ins.set(KIND_EI, MODE_DIRECT, 0)
	default:
		err = ErrDecode(op)
	}

	return
}

// Operands returns the symbolic (non-immediate) operands.
func (ins Instruction) Operands() (ops []string) {
	switch ins.Kind {
	case KIND_MOV:
		ops = []string{ins.Dst().String(), ins.Src().String()}
	case KIND_INR, KIND_DCR, KIND_MVI:
		ops = []string{ins.Dst().String()}
	case KIND_ADD, KIND_ADC, KIND_SUB, KIND_SBB, KIND_ANA, KIND_XRA, KIND_ORA, KIND_CMP:
		ops = []string{ins.Src().String()}
	case KIND_LXI, KIND_INX, KIND_DCX, KIND_DAD, KIND_STAX, KIND_LDAX:
		ops = []string{ins.Pair().String()}
	case KIND_PUSH, KIND_POP:
		ops = []string{ins.Pair().StackString()}
	case KIND_RST:
		ops = []string{strconv.Itoa(int(ins.Op1))}
	}
	return
}

// String returns the assembly language representation of the instruction.
func (ins Instruction) String() string {
	ops := ins.Operands()
	switch ins.Mode {
	case MODE_IMMEDIATE_8:
		ops = append(ops, fmt.Sprintf("0x%02x", ins.Data8()))
	case MODE_IMMEDIATE_16:
		ops = append(ops, fmt.Sprintf("0x%04x", ins.Data16()))
	}

	if len(ops) == 0 {
		return ins.Kind.String()
	}

	return ins.Kind.String() + " " + strings.Join(ops, ",")
}
