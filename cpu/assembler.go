// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// encodeMap maps "MNEMONIC OPERANDS" to the lowest documented opcode with
// that spelling. It is the inverse of Decode.
var encodeMap = buildEncodeMap()

func buildEncodeMap() (em map[string]uint8) {
	em = make(map[string]uint8, 256)
	for op := range 256 {
		ins, err := Decode(uint8(op), 0, 0)
		if err != nil {
			continue
		}
		key := encodeKey(ins.Kind.String(), ins.Operands())
		if _, ok := em[key]; !ok {
			em[key] = uint8(op)
		}
	}
	return
}

func encodeKey(mnemonic string, operands []string) string {
	key := strings.ToUpper(mnemonic)
	if len(operands) > 0 {
		key += " " + strings.ToUpper(strings.Join(operands, ","))
	}
	return key
}

// Assembler is a single pass macro assembler for 8080 mnemonics.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	pc int // Address of the next generated byte.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var hexSuffix = regexp.MustCompile(`^-?[0-9][0-9a-fA-F]*[hH]$`)

// valueOf returns the value of a simple word: a number, an equate, a
// defined label, or '$' for the current address.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	return asm.valueOfDepth(word, 0)
}

func (asm *Assembler) valueOfDepth(word string, depth int) (value int64, err error) {
	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	if depth > 16 {
		err = ErrParseValue(word)
		return
	}

	if word == "$" {
		value = int64(asm.pc)
		return
	}

	equate, ok := asm.Equate[word]
	if ok {
		return asm.valueOfDepth(equate, depth+1)
	}

	addr, ok := asm.Label[word]
	if ok {
		value = int64(addr)
		return
	}

	if hexSuffix.MatchString(word) {
		value, err = strconv.ParseInt(word[:len(word)-1], 16, 32)
		if err != nil {
			err = ErrParseNumber(word)
		}
		return
	}

	if word[0] == '-' || (word[0] >= '0' && word[0] <= '9') {
		value, err = strconv.ParseInt(word, 0, 32)
		if err != nil {
			err = ErrParseNumber(word)
		}
		return
	}

	err = ErrParseValue(word)
	return
}

// isLabel is true for words that could name a label.
var isLabel = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.@]*$`).MatchString

// immediate encodes a 1 or 2 byte little-endian value. A 2 byte value may
// be a label not yet defined, in which case link is set.
func (asm *Assembler) immediate(word string, size int) (data []uint8, link string, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		if _, ok := err.(ErrParseValue); ok && size == 2 && isLabel(word) {
			err = nil
			link = word
			data = []uint8{0, 0}
		}
		return
	}

	switch size {
	case 1:
		if value < -0x80 || value > 0xff {
			err = ErrValueRange
			return
		}
		data = []uint8{uint8(value)}
	case 2:
		if value < -0x8000 || value > 0xffff {
			err = ErrValueRange
			return
		}
		data = []uint8{uint8(value), uint8(value >> 8)}
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key := range asm.Equate {
		var val int64
		val, err = asm.valueOf(key)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(val)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

var (
	charLiteral = regexp.MustCompile(`'\\?[^']'`)
	parenExpr   = regexp.MustCompile(`\$\([^\$]*\)`)
	identifier  = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
)

// parseLine parses a single line, expanding macros and defining labels
// and equates. The remaining words, if any, are an instruction or data
// directive.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = charLiteral.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = parenExpr.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.pc
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := splitArgs(words[1:])
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		// Local labels are unique per invocation.
		local := fmt.Sprintf("%v_%v_", name, lineno)
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			line = substituteArgs(line, macro.Args, args)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, macro.LineNo+n)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// substituteArgs replaces whole-word macro arguments, so that register
// names can be passed to a macro.
func substituteArgs(line string, names []string, values []string) string {
	if len(names) == 0 {
		return line
	}
	return identifier.ReplaceAllStringFunc(line, func(word string) string {
		if n := slices.Index(names, word); n >= 0 {
			return values[n]
		}
		return word
	})
}

// splitArgs splits operand words on commas.
func splitArgs(words []string) (args []string) {
	for _, arg := range strings.Split(strings.Join(words, " "), ",") {
		arg = strings.TrimSpace(arg)
		if len(arg) > 0 {
			args = append(args, arg)
		}
	}
	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.pc = 0
	asm.Label = make(map[string]int, 16)
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
				Args:   splitArgs(words[2:]),
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of forward labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		for _, link := range op.Links {
			addr, ok := asm.Label[link.Label]
			if !ok {
				lineno = op.LineNo
				line = strings.Join(op.Words, " ")
				err = ErrLabelMissing(link.Label)
				return
			}
			op.Bytes[link.Offset] = uint8(addr)
			op.Bytes[link.Offset+1] = uint8(addr >> 8)
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// emit appends generated bytes at the current address.
func (asm *Assembler) emit(lineno int, words []string, data []uint8, links []Link) (err error) {
	if len(data) == 0 {
		return
	}

	if asm.pc+len(data) > MEMORY_SIZE {
		err = ErrValueRange
		return
	}

	asm.Opcode = append(asm.Opcode, Opcode{
		LineNo:  lineno,
		Address: asm.pc,
		Words:   words,
		Bytes:   data,
		Links:   links,
	})
	asm.pc += len(data)

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	args := splitArgs(words[1:])

	switch strings.ToLower(words[0]) {
	case ".org":
		if len(args) != 1 {
			err = ErrOriginSyntax
			return
		}
		var value int64
		value, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		if value < 0 || value >= MEMORY_SIZE {
			err = ErrValueRange
			return
		}
		asm.pc = int(value)
	case ".db":
		if len(args) == 0 {
			err = ErrDataSyntax
			return
		}
		var data []uint8
		for _, arg := range args {
			var imm []uint8
			imm, _, err = asm.immediate(arg, 1)
			if err != nil {
				return
			}
			data = append(data, imm...)
		}
		err = asm.emit(lineno, words, data, nil)
	case ".dw":
		if len(args) == 0 {
			err = ErrDataSyntax
			return
		}
		var data []uint8
		var links []Link
		for _, arg := range args {
			var imm []uint8
			var link string
			imm, link, err = asm.immediate(arg, 2)
			if err != nil {
				return
			}
			if len(link) != 0 {
				links = append(links, Link{Offset: len(data), Label: link})
			}
			data = append(data, imm...)
		}
		err = asm.emit(lineno, words, data, links)
	default:
		var data []uint8
		var links []Link
		data, links, err = asm.encode(words[0], args)
		if err != nil {
			return
		}
		err = asm.emit(lineno, words, data, links)
	}

	return
}

// encode assembles one instruction. The longest prefix of the operands
// that names an opcode wins; what remains must be the immediate.
func (asm *Assembler) encode(mnemonic string, args []string) (data []uint8, links []Link, err error) {
	for n := len(args); n >= 0; n-- {
		op, ok := encodeMap[encodeKey(mnemonic, args[:n])]
		if !ok {
			continue
		}

		ins, _ := Decode(op, 0, 0)
		size := ins.Length() - 1
		rest := args[n:]

		switch {
		case len(rest) > 1, size == 0 && len(rest) == 1:
			err = ErrOpcodeExtraArgs
		case size > 0 && len(rest) == 0:
			err = ErrOpcodeValueMissing
		case size == 0:
			data = []uint8{op}
		default:
			var imm []uint8
			var link string
			imm, link, err = asm.immediate(rest[0], size)
			if err != nil {
				return
			}
			data = append([]uint8{op}, imm...)
			if len(link) != 0 {
				links = []Link{{Offset: 1, Label: link}}
			}
		}
		return
	}

	err = ErrOpcodeInvalid
	return
}
