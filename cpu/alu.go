package cpu

// add returns a + b + carry-in and sets all five flags.
func (fl *Flags) add(a, b uint8, carry bool) uint8 {
	var cin uint8
	if carry {
		cin = 1
	}
	sum := uint16(a) + uint16(b) + uint16(cin)
	result := uint8(sum)

	fl.Carry = sum > 0xff
	fl.AuxCarry = (a&0xf)+(b&0xf)+cin > 0xf
	fl.setZSP(result)

	return result
}

// sub returns a - b - borrow-in and sets all five flags. Carry is the
// borrow out; auxiliary carry is the borrow out of the low nibble.
func (fl *Flags) sub(a, b uint8, borrow bool) uint8 {
	var bin int
	if borrow {
		bin = 1
	}
	diff := int(a) - int(b) - bin
	result := uint8(diff)

	fl.Carry = diff < 0
	fl.AuxCarry = int(b&0xf)+bin > int(a&0xf)
	fl.setZSP(result)

	return result
}

// logic sets flags for a bitwise result. Carry and auxiliary carry clear.
func (fl *Flags) logic(result uint8) uint8 {
	fl.Carry = false
	fl.AuxCarry = false
	fl.setZSP(result)

	return result
}

// inc and dec never touch carry.
func (fl *Flags) inc(value uint8) uint8 {
	result := value + 1
	fl.AuxCarry = value&0xf == 0xf
	fl.setZSP(result)
	return result
}

func (fl *Flags) dec(value uint8) uint8 {
	result := value - 1
	fl.AuxCarry = value&0xf == 0
	fl.setZSP(result)
	return result
}

// daa adjusts the accumulator to two packed BCD digits.
func (fl *Flags) daa(a uint8) uint8 {
	var correction uint8
	carry := fl.Carry

	lsb := a & 0x0f
	msb := a >> 4

	if fl.AuxCarry || lsb > 9 {
		correction += 0x06
	}
	if fl.Carry || msb > 9 || (msb >= 9 && lsb > 9) {
		correction += 0x60
		carry = true
	}

	result := fl.add(a, correction, false)
	fl.Carry = carry

	return result
}

// Rotates only touch carry.

func (fl *Flags) rlc(a uint8) uint8 {
	fl.Carry = a&0x80 != 0
	return a<<1 | a>>7
}

func (fl *Flags) rrc(a uint8) uint8 {
	fl.Carry = a&0x01 != 0
	return a>>1 | a<<7
}

func (fl *Flags) ral(a uint8) uint8 {
	var cin uint8
	if fl.Carry {
		cin = 0x01
	}
	fl.Carry = a&0x80 != 0
	return a<<1 | cin
}

func (fl *Flags) rar(a uint8) uint8 {
	var cin uint8
	if fl.Carry {
		cin = 0x80
	}
	fl.Carry = a&0x01 != 0
	return a>>1 | cin
}

// alu performs one of the eight accumulator operations. CMP and CPI only
// update flags.
func (cpu *Cpu) alu(kind Kind, operand uint8) {
	fl := &cpu.flags
	a := cpu.reg.A

	switch kind {
	case KIND_ADD, KIND_ADI:
		cpu.reg.A = fl.add(a, operand, false)
	case KIND_ADC, KIND_ACI:
		cpu.reg.A = fl.add(a, operand, fl.Carry)
	case KIND_SUB, KIND_SUI:
		cpu.reg.A = fl.sub(a, operand, false)
	case KIND_SBB, KIND_SBI:
		cpu.reg.A = fl.sub(a, operand, fl.Carry)
	case KIND_ANA, KIND_ANI:
		cpu.reg.A = fl.logic(a & operand)
	case KIND_XRA, KIND_XRI:
		cpu.reg.A = fl.logic(a ^ operand)
	case KIND_ORA, KIND_ORI:
		cpu.reg.A = fl.logic(a | operand)
	case KIND_CMP, KIND_CPI:
		fl.sub(a, operand, false)
	}
}
