package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Write(0x1000, 0xaa)
	assert.Equal(uint8(0xaa), mem.Read(0x1000))

	mem.Write16(0x2000, 0x1234)
	assert.Equal(uint8(0x34), mem.Read(0x2000))
	assert.Equal(uint8(0x12), mem.Read(0x2001))
	assert.Equal(uint16(0x1234), mem.Read16(0x2000))

	mem.Write16(0xffff, 0xabcd)
	assert.Equal(uint8(0xcd), mem.Read(0xffff))
	assert.Equal(uint8(0xab), mem.Read(0x0000))

	assert.Equal([]byte{0xcd, 0xab, 0x00}, mem.Dump(0xffff, 3))
}

func TestMemoryLoad(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Write(0x8000, 0xff)

	assert.NoError(mem.Load([]byte{1, 2, 3}))
	assert.Equal([]byte{1, 2, 3, 0}, mem.Dump(0, 4))
	assert.Equal(uint8(0), mem.Read(0x8000))

	assert.ErrorIs(mem.Load(make([]byte, MEMORY_SIZE+1)), ErrImageSize)
}
