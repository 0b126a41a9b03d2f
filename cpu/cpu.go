package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"os"
	"time"

	"github.com/ezrec/i8080/io"
)

// Port is an output device attached to the OUT instruction.
type Port io.Port

const (
	DEFAULT_SP = uint16(0x0020) // Stack pointer after reset.
	PC_LIMIT   = 0xffff         // Highest program counter value.
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("0x%x", MEMORY_SIZE),
	"DEFAULT_SP":  fmt.Sprintf("0x%04x", DEFAULT_SP),
}

// Cpu is the simulation context for an 8080 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	pc         uint16
	sp         uint16
	reg        Registers
	flags      Flags
	memory     Memory
	output     uint8
	interrupts bool
	halted     bool
	failure    error // Latched *ErrFault.
	ticks      int

	rate  float64             // Instructions per second, or 0 for unthrottled.
	sleep func(time.Duration) // Pacing hook.
	port  Port
}

// NewCpu creates a processor with image loaded at address 0.
// A rate greater than zero throttles execution to that many instructions
// per second.
func NewCpu(image []byte, rate float64) (cpu *Cpu, err error) {
	cpu = &Cpu{
		sleep: time.Sleep,
	}

	err = cpu.memory.Load(image)
	if err != nil {
		cpu = nil
		return
	}

	cpu.SetClockRate(rate)
	cpu.Reset()

	return
}

// LoadFile creates a processor from a raw binary image file.
func LoadFile(path string, rate float64) (cpu *Cpu, err error) {
	image, err := os.ReadFile(path)
	if err != nil {
		err = errors.Join(ErrImageRead, err)
		return
	}

	return NewCpu(image, rate)
}

// Load replaces memory with image at address 0, then resets the processor.
func (cpu *Cpu) Load(image []byte) (err error) {
	err = cpu.memory.Load(image)
	if err != nil {
		return
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
//   - Clears the registers, flags and output latch.
//   - Disables interrupts and leaves the halted state.
//   - Sets PC to 0 and SP to DEFAULT_SP.
//   - Rewinds the attached output port.
//
// Memory is not touched.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.pc = 0
	cpu.sp = DEFAULT_SP
	cpu.reg = Registers{}
	cpu.flags = Flags{}
	cpu.output = 0
	cpu.interrupts = false
	cpu.halted = false
	cpu.failure = nil
	cpu.ticks = 0

	if cpu.port != nil {
		cpu.port.Rewind()
	}
}

// SetPort attaches an output device, or detaches it when nil.
func (cpu *Cpu) SetPort(port Port) {
	cpu.port = port
}

// SetClockRate changes pacing for subsequent ticks.
func (cpu *Cpu) SetClockRate(rate float64) {
	if rate < 0 {
		rate = 0
	}
	cpu.rate = rate
}

// ClockRate returns the configured instructions per second.
func (cpu *Cpu) ClockRate() float64 {
	return cpu.rate
}

// Registers returns a copy of the register file.
func (cpu *Cpu) Registers() Registers {
	return cpu.reg
}

// SetRegisters replaces the register file.
func (cpu *Cpu) SetRegisters(reg Registers) {
	cpu.reg = reg
}

// Flags returns a copy of the status flags.
func (cpu *Cpu) Flags() Flags {
	return cpu.flags
}

// SetFlags replaces the status flags.
func (cpu *Cpu) SetFlags(flags Flags) {
	cpu.flags = flags
}

// Pc returns the program counter.
func (cpu *Cpu) Pc() uint16 {
	return cpu.pc
}

// SetPc moves the program counter.
func (cpu *Cpu) SetPc(pc uint16) {
	cpu.pc = pc
}

// Sp returns the stack pointer.
func (cpu *Cpu) Sp() uint16 {
	return cpu.sp
}

// SetSp moves the stack pointer.
func (cpu *Cpu) SetSp(sp uint16) {
	cpu.sp = sp
}

// Output returns the output latch.
func (cpu *Cpu) Output() uint8 {
	return cpu.output
}

// InterruptsEnabled returns the interrupt-enable flag.
func (cpu *Cpu) InterruptsEnabled() bool {
	return cpu.interrupts
}

// Halted is true once the processor has stopped, until the next Reset.
func (cpu *Cpu) Halted() bool {
	return cpu.halted
}

// Fault returns the fatal error that stopped the processor, or nil.
func (cpu *Cpu) Fault() error {
	return cpu.failure
}

// Ticks returns the number of instructions executed since reset.
func (cpu *Cpu) Ticks() int {
	return cpu.ticks
}

// Read a memory byte.
func (cpu *Cpu) Read(addr uint16) uint8 {
	return cpu.memory.Read(addr)
}

// Write a memory byte.
func (cpu *Cpu) Write(addr uint16, value uint8) {
	cpu.memory.Write(addr, value)
}

// Dump copies a window of memory.
func (cpu *Cpu) Dump(addr uint16, length int) []byte {
	return cpu.memory.Dump(addr, length)
}

// Fetch decodes the instruction at addr. Three bytes are always read.
func (cpu *Cpu) Fetch(addr uint16) (ins Instruction, err error) {
	mem := &cpu.memory
	ins, err = Decode(mem.Read(addr), mem.Read(addr+1), mem.Read(addr+2))
	ins.Address = addr
	return
}

// Listing decodes count instructions starting at addr, without executing
// them.
func (cpu *Cpu) Listing(addr uint16, count int) (list []Instruction) {
	for range count {
		ins, err := cpu.Fetch(addr)
		if err != nil {
			break
		}
		list = append(list, ins)
		addr += uint16(ins.Length())
	}
	return
}

// Peek decodes the next count instructions from the program counter.
func (cpu *Cpu) Peek(count int) []Instruction {
	return cpu.Listing(cpu.pc, count)
}

// Tick executes one instruction.
//
// ErrHalt is returned, and the processor stays halted, after a HLT or when
// execution would run past the end of the address space. Any other error is
// an *ErrFault, which is returned again by every Tick until Reset.
func (cpu *Cpu) Tick() (err error) {
	if cpu.failure != nil {
		err = cpu.failure
		return
	}

	if cpu.halted {
		err = ErrHalt
		return
	}

	ins, err := cpu.Fetch(cpu.pc)
	if err != nil {
		err = cpu.fault(ins, err)
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %04x %v", ins.Address, ins)
	}

	next, err := cpu.Execute(ins)
	if errors.Is(err, ErrHalt) {
		cpu.halted = true
		cpu.ticks++
		return
	}
	if err != nil {
		err = cpu.fault(ins, err)
		return
	}

	cpu.ticks++

	if next > PC_LIMIT {
		if cpu.Verbose {
			log.Printf("cpu: end of address space")
		}
		cpu.halted = true
		err = ErrHalt
		return
	}

	cpu.pc = uint16(next)

	if cpu.rate > 0 {
		cpu.sleep(time.Duration(float64(time.Second) / cpu.rate))
	}

	return
}

// Execute runs a decoded instruction and returns the address of the next
// one. The program counter itself is left to the caller.
func (cpu *Cpu) Execute(ins Instruction) (next uint32, err error) {
	if ins.Kind < 0 || int(ins.Kind) >= KIND_COUNT {
		err = ErrHandlerMissing
		return
	}

	next, err = handlers[ins.Kind](cpu, ins)
	return
}

// fault wraps a fatal error with the processor state, and stops the
// processor.
func (cpu *Cpu) fault(ins Instruction, err error) error {
	if cpu.Verbose {
		log.Printf("cpu: fault at %04x: %v", cpu.pc, err)
	}

	cpu.failure = &ErrFault{
		Pc:     cpu.pc,
		Opcode: ins.Opcode,
		State:  cpu.String(),
		Err:    err,
	}

	return cpu.failure
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc", "sp",
		"a", "b", "c", "d", "e", "h", "l",
		"flags", "out", "ie",
	}
	r := cpu.reg
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%04X", cpu.pc)
		case "sp":
			strval = fmt.Sprintf("%04X", cpu.sp)
		case "a", "b", "c", "d", "e", "h", "l":
			val := map[string]uint8{"a": r.A, "b": r.B, "c": r.C, "d": r.D, "e": r.E, "h": r.H, "l": r.L}[reg]
			strval = fmt.Sprintf("%02X", val)
		case "flags":
			strval = cpu.flags.String()
		case "out":
			strval = fmt.Sprintf("%02X", cpu.output)
		case "ie":
			strval = "false"
			if cpu.interrupts {
				strval = "true"
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}
