package cpu

import (
	"iter"
)

// Link is a forward reference to a label, patched as a little-endian word
// at Offset within the opcode bytes.
type Link struct {
	Offset int
	Label  string
}

// Opcode represents a line of assembled code with its source location and
// generated bytes.
type Opcode struct {
	LineNo  int
	Address int
	Words   []string
	Bytes   []uint8
	Links   []Link
}

// Program is the output of the assembler.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the opcode that produced an address.
type Debug struct {
	*Opcode
	Index int
}

func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(addr) >= op.Address && int(addr) < op.Address+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(addr) - op.Address,
			}
			break
		}
	}

	return
}

// Binary returns the memory image, from address 0 up to the last byte
// generated. Gaps are zero.
func (prog *Program) Binary() (image []byte) {
	var size int
	for _, op := range prog.Opcodes {
		end := op.Address + len(op.Bytes)
		if end > size {
			size = end
		}
	}

	image = make([]byte, size)
	for addr, value := range prog.Bytes() {
		image[addr] = value
	}

	return
}

// Bytes iterates over every generated byte and its address.
func (prog *Program) Bytes() iter.Seq2[uint16, uint8] {
	return func(yield func(addr uint16, value uint8) bool) {
		for _, op := range prog.Opcodes {
			for n, value := range op.Bytes {
				if !yield(uint16(op.Address+n), value) {
					return
				}
			}
		}
	}
}
