package cpu

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func isTransfer(kind Kind) bool {
	switch kind {
	case KIND_JMP, KIND_CALL, KIND_RET, KIND_RST, KIND_PCHL, KIND_HLT:
		return true
	}
	return slices.Contains(retKinds[:], kind) ||
		slices.Contains(jumpKinds[:], kind) ||
		slices.Contains(callKinds[:], kind)
}

func FuzzCpu(f *testing.F) {
	for op := range 256 {
		f.Add(uint8(op), uint8(0x34), uint8(0x12), uint8(0))
		f.Add(uint8(op), uint8(0xff), uint8(0xff), uint8(0xff))
	}

	f.Fuzz(func(t *testing.T, opcode uint8, b1 uint8, b2 uint8, psw uint8) {
		assert := assert.New(t)

		cpu := newTestCpu(t)
		cpu.SetSp(0x8000)
		cpu.SetRegisters(Registers{A: b1, B: b2, C: b1, D: b2, E: b1, H: 0x40, L: b2})
		var fl Flags
		fl.SetByte(psw)
		cpu.SetFlags(fl)

		cpu.Write(0x0100, opcode)
		cpu.Write(0x0101, b1)
		cpu.Write(0x0102, b2)
		cpu.SetPc(0x0100)

		ins, err := cpu.Fetch(0x0100)
		assert.NoError(err)

		err = cpu.Tick()
		if ins.Kind == KIND_HLT {
			assert.ErrorIs(err, ErrHalt)
			assert.Equal(uint16(0x0100), cpu.Pc())
			return
		}
		assert.NoError(err)
		assert.Equal(1, cpu.Ticks())

		if !isTransfer(ins.Kind) {
			assert.Equal(uint16(0x0100+ins.Length()), cpu.Pc(), ins.String())
		}

		assert.NotZero(cpu.Flags().Byte() & FLAG_1)
	})
}
