package cpu

import (
	"errors"
)

// handler executes one instruction kind and returns the next program
// counter. A value past PC_LIMIT means execution ran off the end of memory.
type handler func(cpu *Cpu, ins Instruction) (next uint32, err error)

// handlers has an entry for every Kind.
var handlers = [KIND_COUNT]handler{
	KIND_UNKNOWN: (*Cpu).opUnknown,
	KIND_NOP:     (*Cpu).opNop,
	KIND_LXI:     (*Cpu).opLxi,
	KIND_STAX:    (*Cpu).opStax,
	KIND_INX:     (*Cpu).opInx,
	KIND_INR:     (*Cpu).opInr,
	KIND_DCR:     (*Cpu).opDcr,
	KIND_MVI:     (*Cpu).opMvi,
	KIND_RLC:     (*Cpu).opRotate,
	KIND_DAD:     (*Cpu).opDad,
	KIND_LDAX:    (*Cpu).opLdax,
	KIND_DCX:     (*Cpu).opDcx,
	KIND_RRC:     (*Cpu).opRotate,
	KIND_RAL:     (*Cpu).opRotate,
	KIND_RAR:     (*Cpu).opRotate,
	KIND_SHLD:    (*Cpu).opShld,
	KIND_DAA:     (*Cpu).opDaa,
	KIND_LHLD:    (*Cpu).opLhld,
	KIND_CMA:     (*Cpu).opCma,
	KIND_STA:     (*Cpu).opSta,
	KIND_STC:     (*Cpu).opStc,
	KIND_LDA:     (*Cpu).opLda,
	KIND_CMC:     (*Cpu).opCmc,
	KIND_MOV:     (*Cpu).opMov,
	KIND_HLT:     (*Cpu).opHlt,
	KIND_ADD:     (*Cpu).opAlu,
	KIND_ADC:     (*Cpu).opAlu,
	KIND_SUB:     (*Cpu).opAlu,
	KIND_SBB:     (*Cpu).opAlu,
	KIND_ANA:     (*Cpu).opAlu,
	KIND_XRA:     (*Cpu).opAlu,
	KIND_ORA:     (*Cpu).opAlu,
	KIND_CMP:     (*Cpu).opAlu,
	KIND_RNZ:     (*Cpu).opRetIf,
	KIND_RZ:      (*Cpu).opRetIf,
	KIND_RNC:     (*Cpu).opRetIf,
	KIND_RC:      (*Cpu).opRetIf,
	KIND_RPO:     (*Cpu).opRetIf,
	KIND_RPE:     (*Cpu).opRetIf,
	KIND_RP:      (*Cpu).opRetIf,
	KIND_RM:      (*Cpu).opRetIf,
	KIND_RET:     (*Cpu).opRet,
	KIND_POP:     (*Cpu).opPop,
	KIND_PUSH:    (*Cpu).opPush,
	KIND_JNZ:     (*Cpu).opJumpIf,
	KIND_JZ:      (*Cpu).opJumpIf,
	KIND_JNC:     (*Cpu).opJumpIf,
	KIND_JC:      (*Cpu).opJumpIf,
	KIND_JPO:     (*Cpu).opJumpIf,
	KIND_JPE:     (*Cpu).opJumpIf,
	KIND_JP:      (*Cpu).opJumpIf,
	KIND_JM:      (*Cpu).opJumpIf,
	KIND_JMP:     (*Cpu).opJmp,
	KIND_CNZ:     (*Cpu).opCallIf,
	KIND_CZ:      (*Cpu).opCallIf,
	KIND_CNC:     (*Cpu).opCallIf,
	KIND_CC:      (*Cpu).opCallIf,
	KIND_CPO:     (*Cpu).opCallIf,
	KIND_CPE:     (*Cpu).opCallIf,
	KIND_CP:      (*Cpu).opCallIf,
	KIND_CM:      (*Cpu).opCallIf,
	KIND_CALL:    (*Cpu).opCall,
	KIND_ADI:     (*Cpu).opAluImmediate,
	KIND_ACI:     (*Cpu).opAluImmediate,
	KIND_SUI:     (*Cpu).opAluImmediate,
	KIND_SBI:     (*Cpu).opAluImmediate,
	KIND_ANI:     (*Cpu).opAluImmediate,
	KIND_XRI:     (*Cpu).opAluImmediate,
	KIND_ORI:     (*Cpu).opAluImmediate,
	KIND_CPI:     (*Cpu).opAluImmediate,
	KIND_RST:     (*Cpu).opRst,
	KIND_OUT:     (*Cpu).opOut,
	KIND_IN:      (*Cpu).opIn,
	KIND_XTHL:    (*Cpu).opXthl,
	KIND_PCHL:    (*Cpu).opPchl,
	KIND_XCHG:    (*Cpu).opXchg,
	KIND_SPHL:    (*Cpu).opSphl,
	KIND_DI:      (*Cpu).opDi,
	KIND_EI:      (*Cpu).opEi,
}

// Next returns the address following the instruction, which may be past
// PC_LIMIT.
func (ins Instruction) Next() uint32 {
	return uint32(ins.Address) + uint32(ins.Length())
}

// getReg reads a register, or the memory byte at HL for REG_M.
func (cpu *Cpu) getReg(reg Register) (value uint8, err error) {
	if reg == REG_M {
		value = cpu.memory.Read(cpu.reg.HL())
		return
	}

	ref := cpu.reg.ref(reg)
	if ref == nil {
		err = ErrRegisterInvalid
		return
	}

	value = *ref
	return
}

// setReg writes a register, or the memory byte at HL for REG_M.
func (cpu *Cpu) setReg(reg Register, value uint8) (err error) {
	if reg == REG_M {
		cpu.memory.Write(cpu.reg.HL(), value)
		return
	}

	ref := cpu.reg.ref(reg)
	if ref == nil {
		err = ErrRegisterInvalid
		return
	}

	*ref = value
	return
}

// getPair reads BC, DE, HL or SP.
func (cpu *Cpu) getPair(pair Pair) (value uint16, err error) {
	if pair == PAIR_SP {
		value = cpu.sp
		return
	}

	hi, lo := cpu.reg.pairRefs(pair)
	if hi == nil {
		err = ErrPairInvalid
		return
	}

	value = uint16(*hi)<<8 | uint16(*lo)
	return
}

// setPair writes BC, DE, HL or SP.
func (cpu *Cpu) setPair(pair Pair, value uint16) (err error) {
	if pair == PAIR_SP {
		cpu.sp = value
		return
	}

	hi, lo := cpu.reg.pairRefs(pair)
	if hi == nil {
		err = ErrPairInvalid
		return
	}

	*hi = uint8(value >> 8)
	*lo = uint8(value)
	return
}

// getStackPair reads BC, DE, HL or PSW, as PUSH sees them.
// PSW is the flags byte (high) and the accumulator (low).
func (cpu *Cpu) getStackPair(pair Pair) (value uint16, err error) {
	if pair == PAIR_PSW {
		value = uint16(cpu.flags.Byte())<<8 | uint16(cpu.reg.A)
		return
	}

	return cpu.getPair(pair)
}

// setStackPair writes BC, DE, HL or PSW, as POP sees them.
func (cpu *Cpu) setStackPair(pair Pair, value uint16) (err error) {
	if pair == PAIR_PSW {
		cpu.flags.SetByte(uint8(value >> 8))
		cpu.reg.A = uint8(value)
		return
	}

	return cpu.setPair(pair, value)
}

func (cpu *Cpu) opUnknown(ins Instruction) (next uint32, err error) {
	err = ErrDecode(ins.Opcode)
	return
}

func (cpu *Cpu) opNop(ins Instruction) (next uint32, err error) {
	return ins.Next(), nil
}

func (cpu *Cpu) opHlt(ins Instruction) (next uint32, err error) {
	// Interrupts are never delivered, so a halt is final.
	return uint32(ins.Address), ErrHalt
}

func (cpu *Cpu) opMov(ins Instruction) (next uint32, err error) {
	value, err := cpu.getReg(ins.Src())
	if err != nil {
		return
	}
	err = cpu.setReg(ins.Dst(), value)
	return ins.Next(), err
}

func (cpu *Cpu) opMvi(ins Instruction) (next uint32, err error) {
	err = cpu.setReg(ins.Dst(), ins.Data8())
	return ins.Next(), err
}

func (cpu *Cpu) opLxi(ins Instruction) (next uint32, err error) {
	err = cpu.setPair(ins.Pair(), ins.Data16())
	return ins.Next(), err
}

func (cpu *Cpu) opStax(ins Instruction) (next uint32, err error) {
	addr, err := cpu.getPair(ins.Pair())
	if err != nil {
		return
	}
	cpu.memory.Write(addr, cpu.reg.A)
	return ins.Next(), nil
}

func (cpu *Cpu) opLdax(ins Instruction) (next uint32, err error) {
	addr, err := cpu.getPair(ins.Pair())
	if err != nil {
		return
	}
	cpu.reg.A = cpu.memory.Read(addr)
	return ins.Next(), nil
}

func (cpu *Cpu) opInx(ins Instruction) (next uint32, err error) {
	value, err := cpu.getPair(ins.Pair())
	if err != nil {
		return
	}
	err = cpu.setPair(ins.Pair(), value+1)
	return ins.Next(), err
}

func (cpu *Cpu) opDcx(ins Instruction) (next uint32, err error) {
	value, err := cpu.getPair(ins.Pair())
	if err != nil {
		return
	}
	err = cpu.setPair(ins.Pair(), value-1)
	return ins.Next(), err
}

func (cpu *Cpu) opInr(ins Instruction) (next uint32, err error) {
	value, err := cpu.getReg(ins.Dst())
	if err != nil {
		return
	}
	err = cpu.setReg(ins.Dst(), cpu.flags.inc(value))
	return ins.Next(), err
}

func (cpu *Cpu) opDcr(ins Instruction) (next uint32, err error) {
	value, err := cpu.getReg(ins.Dst())
	if err != nil {
		return
	}
	err = cpu.setReg(ins.Dst(), cpu.flags.dec(value))
	return ins.Next(), err
}

func (cpu *Cpu) opDad(ins Instruction) (next uint32, err error) {
	value, err := cpu.getPair(ins.Pair())
	if err != nil {
		return
	}
	sum := uint32(cpu.reg.HL()) + uint32(value)
	cpu.flags.Carry = sum > 0xffff
	err = cpu.setPair(PAIR_HL, uint16(sum))
	return ins.Next(), err
}

func (cpu *Cpu) opRotate(ins Instruction) (next uint32, err error) {
	fl := &cpu.flags
	switch ins.Kind {
	case KIND_RLC:
		cpu.reg.A = fl.rlc(cpu.reg.A)
	case KIND_RRC:
		cpu.reg.A = fl.rrc(cpu.reg.A)
	case KIND_RAL:
		cpu.reg.A = fl.ral(cpu.reg.A)
	case KIND_RAR:
		cpu.reg.A = fl.rar(cpu.reg.A)
	}
	return ins.Next(), nil
}

func (cpu *Cpu) opShld(ins Instruction) (next uint32, err error) {
	cpu.memory.Write16(ins.Data16(), cpu.reg.HL())
	return ins.Next(), nil
}

func (cpu *Cpu) opLhld(ins Instruction) (next uint32, err error) {
	err = cpu.setPair(PAIR_HL, cpu.memory.Read16(ins.Data16()))
	return ins.Next(), err
}

func (cpu *Cpu) opSta(ins Instruction) (next uint32, err error) {
	cpu.memory.Write(ins.Data16(), cpu.reg.A)
	return ins.Next(), nil
}

func (cpu *Cpu) opLda(ins Instruction) (next uint32, err error) {
	cpu.reg.A = cpu.memory.Read(ins.Data16())
	return ins.Next(), nil
}

func (cpu *Cpu) opDaa(ins Instruction) (next uint32, err error) {
	cpu.reg.A = cpu.flags.daa(cpu.reg.A)
	return ins.Next(), nil
}

func (cpu *Cpu) opCma(ins Instruction) (next uint32, err error) {
	cpu.reg.A = ^cpu.reg.A
	return ins.Next(), nil
}

func (cpu *Cpu) opStc(ins Instruction) (next uint32, err error) {
	cpu.flags.Carry = true
	return ins.Next(), nil
}

func (cpu *Cpu) opCmc(ins Instruction) (next uint32, err error) {
	cpu.flags.Carry = !cpu.flags.Carry
	return ins.Next(), nil
}

func (cpu *Cpu) opAlu(ins Instruction) (next uint32, err error) {
	operand, err := cpu.getReg(ins.Src())
	if err != nil {
		return
	}
	cpu.alu(ins.Kind, operand)
	return ins.Next(), nil
}

func (cpu *Cpu) opAluImmediate(ins Instruction) (next uint32, err error) {
	cpu.alu(ins.Kind, ins.Data8())
	return ins.Next(), nil
}

func (cpu *Cpu) opJmp(ins Instruction) (next uint32, err error) {
	return uint32(ins.Data16()), nil
}

func (cpu *Cpu) opJumpIf(ins Instruction) (next uint32, err error) {
	taken, err := cpu.flags.Test(ins.Cond())
	if err != nil {
		return
	}
	if !taken {
		return ins.Next(), nil
	}
	return cpu.opJmp(ins)
}

func (cpu *Cpu) opCall(ins Instruction) (next uint32, err error) {
	cpu.push(uint16(ins.Next()))
	return uint32(ins.Data16()), nil
}

func (cpu *Cpu) opCallIf(ins Instruction) (next uint32, err error) {
	taken, err := cpu.flags.Test(ins.Cond())
	if err != nil {
		return
	}
	if !taken {
		return ins.Next(), nil
	}
	return cpu.opCall(ins)
}

func (cpu *Cpu) opRet(ins Instruction) (next uint32, err error) {
	return uint32(cpu.pop()), nil
}

func (cpu *Cpu) opRetIf(ins Instruction) (next uint32, err error) {
	taken, err := cpu.flags.Test(ins.Cond())
	if err != nil {
		return
	}
	if !taken {
		return ins.Next(), nil
	}
	return cpu.opRet(ins)
}

func (cpu *Cpu) opRst(ins Instruction) (next uint32, err error) {
	cpu.push(uint16(ins.Next()))
	return uint32(ins.Vector()), nil
}

func (cpu *Cpu) opPush(ins Instruction) (next uint32, err error) {
	value, err := cpu.getStackPair(ins.Pair())
	if err != nil {
		return
	}
	cpu.push(value)
	return ins.Next(), nil
}

func (cpu *Cpu) opPop(ins Instruction) (next uint32, err error) {
	err = cpu.setStackPair(ins.Pair(), cpu.pop())
	return ins.Next(), err
}

func (cpu *Cpu) opXthl(ins Instruction) (next uint32, err error) {
	top := cpu.memory.Read16(cpu.sp)
	cpu.memory.Write16(cpu.sp, cpu.reg.HL())
	err = cpu.setPair(PAIR_HL, top)
	return ins.Next(), err
}

func (cpu *Cpu) opPchl(ins Instruction) (next uint32, err error) {
	return uint32(cpu.reg.HL()), nil
}

func (cpu *Cpu) opSphl(ins Instruction) (next uint32, err error) {
	cpu.sp = cpu.reg.HL()
	return ins.Next(), nil
}

func (cpu *Cpu) opXchg(ins Instruction) (next uint32, err error) {
	r := &cpu.reg
	r.D, r.H = r.H, r.D
	r.E, r.L = r.L, r.E
	return ins.Next(), nil
}

func (cpu *Cpu) opOut(ins Instruction) (next uint32, err error) {
	cpu.output = cpu.reg.A
	if cpu.port != nil {
		err = cpu.port.Send(ins.Data8(), cpu.reg.A)
		if err != nil {
			err = errors.Join(ErrPortWrite, err)
			return
		}
	}
	return ins.Next(), nil
}

func (cpu *Cpu) opIn(ins Instruction) (next uint32, err error) {
	// No input devices; the bus floats low.
	cpu.reg.A = 0
	return ins.Next(), nil
}

func (cpu *Cpu) opDi(ins Instruction) (next uint32, err error) {
	cpu.interrupts = false
	return ins.Next(), nil
}

func (cpu *Cpu) opEi(ins Instruction) (next uint32, err error) {
	cpu.interrupts = true
	return ins.Next(), nil
}
