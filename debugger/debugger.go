package debugger

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/ezrec/i8080/cpu"
	"github.com/ezrec/i8080/emulator"
)

const (
	LISTING_LENGTH = 16  // Instructions shown after each command.
	WINDOW_SIZE    = 128 // Bytes in the memory window.
	WINDOW_ROW     = 16  // Bytes per memory window row.
)

var helpText = []string{
	"s|step [n]     execute n instructions (default 1)",
	"c|continue     run to the next breakpoint or halt",
	"b|break ADDR   set a breakpoint",
	"d|delete ADDR  clear a breakpoint",
	"r|reset        reset the processor",
	"m|mem ADDR     move the memory window",
	"q|quit         leave the debugger",
	"h|help         show this text",
}

// Debugger drives an emulator from text commands.
type Debugger struct {
	Verbose  bool
	Emulator *emulator.Emulator
	Output   io.Writer
	Window   uint16 // Start of the memory window.
}

// NewDebugger attaches a debugger to an emulator.
func NewDebugger(emu *emulator.Emulator, output io.Writer) (dbg *Debugger) {
	dbg = &Debugger{
		Emulator: emu,
		Output:   output,
	}
	return
}

// parseAddress accepts Go number syntax or hex with a trailing 'h'.
func parseAddress(word string) (addr uint16, err error) {
	text := strings.ToLower(word)
	base := 0
	if strings.HasSuffix(text, "h") {
		text = text[:len(text)-1]
		base = 16
	}

	value, err := strconv.ParseUint(text, base, 16)
	if err != nil {
		err = ErrNumber(word)
		return
	}
	addr = uint16(value)
	return
}

// Execute runs a single command line. quit is set by the quit command.
// Errors are specific to the command; the debugger stays usable.
func (dbg *Debugger) Execute(ctx context.Context, line string) (quit bool, err error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	if dbg.Verbose {
		log.Printf("debugger: %v", words)
	}

	emu := dbg.Emulator
	args := words[1:]

	switch words[0] {
	case "s", "step":
		count := 1
		if len(args) > 1 {
			err = ErrArgumentCount
			return
		}
		if len(args) == 1 {
			var n uint64
			n, err = strconv.ParseUint(args[0], 0, 32)
			if err != nil {
				err = ErrNumber(args[0])
				return
			}
			count = int(n)
		}
		for range count {
			var done bool
			done, err = emu.Tick()
			if done || err != nil {
				return
			}
		}
	case "c", "continue":
		_, err = emu.Run(ctx)
	case "b", "break", "d", "delete", "m", "mem":
		if len(args) != 1 {
			err = ErrArgumentCount
			return
		}
		var addr uint16
		addr, err = parseAddress(args[0])
		if err != nil {
			return
		}
		switch words[0] {
		case "b", "break":
			emu.Breakpoint(addr)
		case "d", "delete":
			emu.ClearBreakpoint(addr)
		default:
			dbg.Window = addr
		}
	case "r", "reset":
		emu.Reset()
	case "q", "quit":
		quit = true
	case "h", "help":
		for _, text := range helpText {
			fmt.Fprintln(dbg.Output, text)
		}
	default:
		err = ErrCommandUnknown
	}

	return
}

// Render writes the processor state, the listing from PC and the memory
// window.
func (dbg *Debugger) Render() {
	emu := dbg.Emulator
	out := dbg.Output
	reg := emu.Registers()

	state := ""
	if emu.Halted() {
		state = "  HALTED"
	}

	fmt.Fprintf(out, "PC %04X  SP %04X  OUT %02X  IE %v  TICKS %v%v\n",
		emu.Pc(), emu.Sp(), emu.Output(), emu.InterruptsEnabled(), emu.Ticks(), state)
	fmt.Fprintf(out, "A %02X  B %02X  C %02X  D %02X  E %02X  H %02X  L %02X\n",
		reg.A, reg.B, reg.C, reg.D, reg.E, reg.H, reg.L)
	fmt.Fprintf(out, "BC %04X  DE %04X  HL %04X  (SP) %04X  FLAGS %v\n",
		reg.BC(), reg.DE(), reg.HL(), emu.Top(), emu.Flags())
	fmt.Fprintln(out)

	breaks := map[uint16]bool{}
	for _, addr := range emu.Breakpoints() {
		breaks[addr] = true
	}

	for _, ins := range emu.Peek(LISTING_LENGTH) {
		mark := " "
		if ins.Address == emu.Pc() {
			mark = ">"
		}
		if breaks[ins.Address] {
			mark = "*"
		}
		fmt.Fprintf(out, "%v %v\n", mark, listingLine(emu, ins))
	}
	fmt.Fprintln(out)

	for row := 0; row < WINDOW_SIZE; row += WINDOW_ROW {
		addr := dbg.Window + uint16(row)
		fmt.Fprintf(out, "%04X  % X\n", addr, emu.Dump(addr, WINDOW_ROW))
	}
}

// listingLine formats one disassembled instruction, with its source line
// when the program has a listing.
func listingLine(emu *emulator.Emulator, ins cpu.Instruction) (text string) {
	raw := emu.Dump(ins.Address, ins.Length())
	text = fmt.Sprintf("%04X  %-8X  %v", ins.Address, raw, ins)

	dbg := emu.Program.Debug(ins.Address)
	if dbg.Opcode != nil && dbg.Index == 0 {
		text = fmt.Sprintf("%-32v; %v: %v", text, dbg.LineNo, strings.Join(dbg.Words, " "))
	}

	return
}

// Loop renders the state, then reads and executes commands until quit or
// the end of input.
func (dbg *Debugger) Loop(ctx context.Context, input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)

	dbg.Render()
	for {
		fmt.Fprint(dbg.Output, "> ")
		if !scanner.Scan() {
			err = scanner.Err()
			return
		}

		line := scanner.Text()
		quit, cmdErr := dbg.Execute(ctx, line)
		if quit {
			return
		}
		if cmdErr != nil {
			fmt.Fprintln(dbg.Output, cmdErr)
		}
		if len(strings.Fields(line)) > 0 {
			dbg.Render()
		}

		if ctx.Err() != nil {
			err = ctx.Err()
			return
		}
	}
}
