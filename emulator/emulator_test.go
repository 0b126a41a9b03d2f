package emulator

import (
	"bytes"
	"context"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/i8080/cpu"
	"github.com/ezrec/i8080/io"
)

func doAssemble(t *testing.T, emu *Emulator, program ...string) {
	err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(0, len(emu.Program.Opcodes))
	assert.Equal(cpu.DEFAULT_SP, emu.Sp())
	assert.Equal(0, len(emu.Breakpoints()))

	defines := maps.Collect(emu.Defines())
	assert.Equal("0x0000", defines["ORIGIN"])
	assert.Equal("0x0020", defines["DEFAULT_SP"])
	assert.Equal("0x10000", defines["MEMORY_SIZE"])
}

func TestEmulatorHello(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output := &bytes.Buffer{}
	emu.SetOutput(output, 1)

	doAssemble(t, emu,
		".macro PUTC c",
		"  MVI A,c",
		"  OUT 1",
		".endm",
		"  PUTC 'H'",
		"  PUTC 'i'",
		"  MVI A,'!'",
		"  OUT 2",
		"  HLT",
	)

	var lines []int
	var done bool
	var err error
	for !done {
		lines = append(lines, emu.LineNo())
		done, err = emu.Tick()
		assert.NoError(err)
	}

	assert.Equal("Hi", output.String())
	assert.Equal(uint8('!'), emu.Output())
	assert.Equal([]int{2, 3, 2, 3, 7, 8, 9}, lines)
	assert.True(emu.Halted())

	// Still done.
	done, err = emu.Tick()
	assert.True(done)
	assert.NoError(err)
}

func TestEmulatorCountdown(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.SetRecord(true)

	doAssemble(t, emu,
		"        LXI SP,$(DEFAULT_SP + 0x100)",
		"        MVI B,5",
		"loop:   MOV A,B",
		"        CALL emit",
		"        DCR B",
		"        JNZ loop",
		"        HLT",
		"emit:   OUT 0",
		"        RET",
	)

	done, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.True(done)
	assert.Equal([]uint8{5, 4, 3, 2, 1}, emu.Recorder.Values(0))
	assert.Equal(uint16(0x0120), emu.Sp())
}

func TestEmulatorBreakpoint(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(t, emu,
		"        MVI B,3",
		"loop:   DCR B",
		"        JNZ loop",
		"        HLT",
	)

	emu.Breakpoint(0x0002)
	emu.Breakpoint(0x0001)
	emu.ClearBreakpoint(0x0001)
	assert.Equal([]uint16{0x0002}, emu.Breakpoints())

	for n := range 3 {
		done, err := emu.Run(context.Background())
		assert.NoError(err)
		assert.False(done, "pass %d", n)
		assert.Equal(uint16(0x0002), emu.Pc())
		assert.Equal(2, emu.LineNo())
	}
	assert.Equal(uint8(1), emu.Registers().B)

	done, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.True(done)
	assert.Equal(uint8(0), emu.Registers().B)
}

func TestEmulatorCancel(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(t, emu, "spin: JMP spin")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done, err := emu.Run(ctx)
	assert.False(done)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(1, emu.Ticks())
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.SetPort(&io.Recorder{Limit: 1})
	doAssemble(t, emu,
		"OUT 0",
		"NOP",
		"OUT 0",
	)

	_, err := emu.Tick()
	assert.NoError(err)
	_, err = emu.Tick()
	assert.NoError(err)
	_, err = emu.Tick()
	assert.ErrorIs(err, cpu.ErrPortWrite)

	var rt *ErrRuntime
	if assert.True(errors.As(err, &rt)) {
		assert.Equal(3, rt.LineNo)
		assert.Equal(uint16(0x0003), rt.Pc)
	}

	var fault *cpu.ErrFault
	assert.True(errors.As(err, &fault))

	// The processor stays stopped at the faulting OUT.
	_, again := emu.Tick()
	var latched *cpu.ErrFault
	if assert.True(errors.As(again, &latched)) {
		assert.Same(fault, latched)
	}
	assert.Equal(uint16(0x0003), emu.Pc())
	assert.Equal(2, emu.Ticks())

	done, err := emu.Run(context.Background())
	assert.False(done)
	assert.ErrorIs(err, cpu.ErrPortWrite)
	assert.Equal(2, emu.Ticks())
}

func TestEmulatorRecord(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output := &bytes.Buffer{}
	emu.SetOutput(output, 1)
	emu.SetRecord(true)

	doAssemble(t, emu,
		"MVI A,'o'",
		"OUT 1",
		"MVI A,'k'",
		"OUT 1",
		"OUT 7",
		"HLT",
	)

	done, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.True(done)
	assert.Equal("ok", output.String())
	assert.Equal([]io.Write{
		{Port: 1, Value: 'o'},
		{Port: 1, Value: 'k'},
		{Port: 7, Value: 'k'},
	}, emu.Recorder.Writes)

	emu.Reset()
	assert.Empty(emu.Recorder.Writes)

	emu.SetRecord(false)
	_, err = emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal("okok", output.String())
	assert.Empty(emu.Recorder.Writes)
}

func TestEmulatorLoad(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(t, emu, "NOP")
	assert.Equal(1, len(emu.Program.Opcodes))

	assert.NoError(emu.Load([]byte{0x3e, 0x07, 0x76}))
	assert.Equal(0, len(emu.Program.Opcodes))
	assert.Equal(0, emu.LineNo())

	done, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.True(done)
	assert.Equal(uint8(7), emu.Registers().A)

	emu.Reset()
	assert.False(emu.Halted())
	assert.Equal(uint16(0), emu.Pc())
	assert.Equal(uint8(0), emu.Registers().A)

	assert.ErrorIs(emu.Load(make([]byte, cpu.MEMORY_SIZE+1)), cpu.ErrImageSize)
}

func TestEmulatorLoadFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	bin := filepath.Join(dir, "rom.bin")
	src := filepath.Join(dir, "rom.asm")
	assert.NoError(os.WriteFile(bin, []byte{0x06, 0x09, 0x76}, 0o644))
	assert.NoError(os.WriteFile(src, []byte("MVI C,9\nHLT\n"), 0o644))

	emu := NewEmulator()
	assert.NoError(emu.LoadFile(bin))
	_, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(uint8(9), emu.Registers().B)

	assert.NoError(emu.LoadFile(src))
	assert.Equal(2, len(emu.Program.Opcodes))
	_, err = emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(uint8(9), emu.Registers().C)

	err = emu.LoadFile(filepath.Join(dir, "missing.asm"))
	assert.ErrorIs(err, cpu.ErrImageRead)

	err = emu.Assemble(strings.NewReader("BOGUS"))
	assert.ErrorIs(err, cpu.ErrOpcodeInvalid)
}

func TestEmulatorDigest(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	empty := emu.Digest()
	assert.Equal(empty, NewEmulator().Digest())

	doAssemble(t, emu,
		"LXI H,1000h",
		"MVI M,42h",
		"HLT",
	)
	loaded := emu.Digest()
	assert.NotEqual(empty, loaded)

	_, err := emu.Run(context.Background())
	assert.NoError(err)
	assert.NotEqual(loaded, emu.Digest())
	assert.Equal(uint8(0x42), emu.Read(0x1000))
}
