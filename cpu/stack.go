package cpu

// push stores a word below the stack pointer: high byte at SP-1, low byte
// at SP-2.
func (cpu *Cpu) push(value uint16) {
	cpu.sp--
	cpu.memory.Write(cpu.sp, uint8(value>>8))
	cpu.sp--
	cpu.memory.Write(cpu.sp, uint8(value))
}

// pop loads the word at the stack pointer: low byte at SP, high byte at
// SP+1.
func (cpu *Cpu) pop() (value uint16) {
	value = uint16(cpu.memory.Read(cpu.sp))
	cpu.sp++
	value |= uint16(cpu.memory.Read(cpu.sp)) << 8
	cpu.sp++
	return
}

// Top returns the word at the top of the stack, without popping it.
func (cpu *Cpu) Top() uint16 {
	return cpu.memory.Read16(cpu.sp)
}
