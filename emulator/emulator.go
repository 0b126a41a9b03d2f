// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"fmt"
	stdio "io"
	"iter"
	"log"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/ezrec/i8080/cpu"
	"github.com/ezrec/i8080/internal"
	"github.com/ezrec/i8080/io"
)

const (
	ORIGIN = 0x0000 // Load address of program images.
)

var _emulator_defines = map[string]string{
	"ORIGIN": fmt.Sprintf("0x%04x", ORIGIN),
}

// Emulator state. CPU + program listing + output tape.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Tape     io.Tape     // Output tape, attached by SetOutput.
	Recorder io.Recorder // Log of OUT writes, kept when SetRecord is on.

	taped       bool
	recording   bool
	breakpoints map[uint16]bool
}

// NewEmulator creates a new emulator with empty memory.
func NewEmulator() (emu *Emulator) {
	// An empty image always fits.
	cp, _ := cpu.NewCpu(nil, 0)

	emu = &Emulator{
		Cpu:         cp,
		Program:     &cpu.Program{},
		breakpoints: map[uint16]bool{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// SetOutput sends OUT writes on the selected ports (all when none are given)
// to w.
func (emu *Emulator) SetOutput(w stdio.Writer, ports ...uint8) {
	emu.Tape = io.Tape{Output: w, Ports: ports}
	emu.taped = true
	emu.attach()
}

// SetRecord keeps every OUT write in emu.Recorder, alongside the tape.
// The log is cleared on Reset.
func (emu *Emulator) SetRecord(on bool) {
	emu.recording = on
	emu.Recorder = io.Recorder{}
	emu.attach()
}

func (emu *Emulator) attach() {
	var bus io.Bus
	if emu.taped {
		bus = append(bus, &emu.Tape)
	}
	if emu.recording {
		bus = append(bus, &emu.Recorder)
	}

	switch len(bus) {
	case 0:
		emu.Cpu.SetPort(nil)
	case 1:
		emu.Cpu.SetPort(bus[0])
	default:
		emu.Cpu.SetPort(bus)
	}
}

// Load a raw binary image. The program listing is cleared.
func (emu *Emulator) Load(image []byte) (err error) {
	err = emu.Cpu.Load(image)
	if err != nil {
		return
	}

	emu.Program = &cpu.Program{}

	return
}

// Assemble source text and load the resulting image.
func (emu *Emulator) Assemble(input stdio.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	err = emu.Cpu.Load(prog.Binary())
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// LoadFile loads a raw image, or assembles it first if the name ends
// in ".asm".
func (emu *Emulator) LoadFile(path string) (err error) {
	if emu.Verbose {
		log.Printf("emulator: load %v", path)
	}

	if strings.HasSuffix(path, ".asm") {
		var inf *os.File
		inf, err = os.Open(path)
		if err != nil {
			err = errors.Join(cpu.ErrImageRead, err)
			return
		}
		defer inf.Close()

		return emu.Assemble(inf)
	}

	image, err := os.ReadFile(path)
	if err != nil {
		err = errors.Join(cpu.ErrImageRead, err)
		return
	}

	return emu.Load(image)
}

// Reset the processor. Memory, program and breakpoints are kept.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// LineNo returns the current line number for the executing opcode, or 0
// if there is no listing for it.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc())
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction. done is set once the processor has
// halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	pc := emu.Cpu.Pc()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalt) {
		err = nil
		done = true
		return
	}
	if err != nil {
		err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		return
	}

	return
}

// Run ticks until the processor halts, a breakpoint is reached, an error
// occurs, or ctx is done. The instruction at the starting address always
// executes, so Run can continue from a breakpoint.
func (emu *Emulator) Run(ctx context.Context) (done bool, err error) {
	for {
		done, err = emu.Tick()
		if done || err != nil {
			return
		}

		if emu.breakpoints[emu.Cpu.Pc()] {
			if emu.Verbose {
				log.Printf("emulator: breakpoint at %04x", emu.Cpu.Pc())
			}
			return
		}

		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}
	}
}

// Breakpoint stops Run before the instruction at addr.
func (emu *Emulator) Breakpoint(addr uint16) {
	emu.breakpoints[addr] = true
}

// ClearBreakpoint removes a breakpoint.
func (emu *Emulator) ClearBreakpoint(addr uint16) {
	delete(emu.breakpoints, addr)
}

// Breakpoints returns the breakpoint addresses in ascending order.
func (emu *Emulator) Breakpoints() []uint16 {
	return slices.Sorted(maps.Keys(emu.breakpoints))
}

// Digest returns a hash of the whole of memory.
func (emu *Emulator) Digest() uint64 {
	return xxhash.Sum64(emu.Cpu.Dump(0, cpu.MEMORY_SIZE))
}
