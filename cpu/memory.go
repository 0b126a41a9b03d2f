package cpu

const (
	MEMORY_SIZE = 0x10000 // Full 16-bit address space.
)

// Memory is the flat processor address space. Addresses are 16 bits, so
// every access is in range; multi-byte accesses wrap at the top.
type Memory [MEMORY_SIZE]uint8

// Read a byte.
func (m *Memory) Read(addr uint16) uint8 {
	return m[addr]
}

// Write a byte.
func (m *Memory) Write(addr uint16, value uint8) {
	m[addr] = value
}

// Read16 reads a little-endian word.
func (m *Memory) Read16(addr uint16) uint16 {
	return uint16(m[addr+1])<<8 | uint16(m[addr])
}

// Write16 writes a little-endian word.
func (m *Memory) Write16(addr uint16, value uint16) {
	m[addr] = uint8(value)
	m[addr+1] = uint8(value >> 8)
}

// Load copies an image to address 0. The rest of memory is zeroed.
func (m *Memory) Load(image []byte) (err error) {
	if len(image) > MEMORY_SIZE {
		err = ErrImageSize
		return
	}

	clear(m[:])
	copy(m[:], image)

	return
}

// Dump copies length bytes starting at addr, wrapping at the top.
func (m *Memory) Dump(addr uint16, length int) (data []byte) {
	data = make([]byte, length)
	for n := range data {
		data[n] = m[addr+uint16(n)]
	}
	return
}
