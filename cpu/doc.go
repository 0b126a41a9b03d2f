// Package cpu implements an Intel 8080 instruction-set simulator and assembler.
//
// The processor consists of an accumulator and six general-purpose 8-bit
// registers (B, C, D, E, H, L), five status flags, a 16-bit stack pointer and
// program counter, a flat 64KiB memory, an output latch and an
// interrupt-enable flag. Each Tick fetches three bytes at the program counter,
// decodes them into an Instruction, and dispatches to the handler for the
// instruction kind. Handlers return the address of the next instruction.
//
// The assembler provides a small macro assembler for 8080 mnemonics,
// supporting labels, equates, origin and data directives, and compile-time
// expression evaluation.
package cpu
