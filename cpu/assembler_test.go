package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, lines ...string) (prog *Program) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))
	assert.Equal("0", asm.Equate["LINENO"])

	asm.Predefine("DEFAULT_SP", "0x0020")
	prog, err = asm.Parse(strings.NewReader("LXI SP,DEFAULT_SP"))
	assert.NoError(err)
	assert.Equal([]byte{0x31, 0x20, 0x00}, prog.Binary())
}

func TestAssemblerOpcodes(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"MVI A, 5 ; load",
		"  add b",
		"",
		"PUSH PSW",
		"rst 7",
	)

	expected := []Opcode{
		{LineNo: 1, Address: 0, Words: []string{"MVI", "A,", "5"}, Bytes: []uint8{0x3e, 0x05}},
		{LineNo: 2, Address: 2, Words: []string{"add", "b"}, Bytes: []uint8{0x80}},
		{LineNo: 4, Address: 3, Words: []string{"PUSH", "PSW"}, Bytes: []uint8{0xf5}},
		{LineNo: 5, Address: 4, Words: []string{"rst", "7"}, Bytes: []uint8{0xff}},
	}
	assert.Equal(expected, prog.Opcodes)
}

func TestAssemblerRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for op := range 256 {
		ins, err := Decode(uint8(op), 0x34, 0x12)
		assert.NoError(err)

		canonical, ok := encodeMap[encodeKey(ins.Kind.String(), ins.Operands())]
		if !assert.True(ok, "0x%02x", op) {
			continue
		}

		prog := assemble(t, ins.String())
		image := prog.Binary()
		if assert.Equal(ins.Length(), len(image), ins.String()) {
			assert.Equal(canonical, image[0], ins.String())
			for n := 1; n < len(image); n++ {
				assert.Equal(ins.Data[n-1], image[n], ins.String())
			}
		}
	}
}

func TestAssemblerAliases(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint8(0x00), encodeMap["NOP"])
	assert.Equal(uint8(0xc3), encodeMap["JMP"])
	assert.Equal(uint8(0xc9), encodeMap["RET"])
	assert.Equal(uint8(0xcd), encodeMap["CALL"])
	assert.Equal(uint8(0x76), encodeMap["HLT"])
	_, ok := encodeMap["MOV M,M"]
	assert.False(ok)
}

func TestAssemblerLabel(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"start:  MVI A,0",
		"loop:   INR A",
		"        CPI 10",
		"        JNZ loop",
		"        JMP done",
		"done:   HLT",
	)

	assert.Equal([]byte{
		0x3e, 0x00,
		0x3c,
		0xfe, 0x0a,
		0xc2, 0x02, 0x00,
		0xc3, 0x0b, 0x00,
		0x76,
	}, prog.Binary())

	assert.Equal([]Link{{Offset: 1, Label: "done"}}, prog.Opcodes[4].Links)
}

func TestAssemblerDirectives(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".equ PORT 1",
		".org 10h",
		"  OUT PORT",
		"  .db 'A', 0x42, -1",
		"  .dw $, end",
		"end: HLT",
	)

	image := prog.Binary()
	assert.Equal(0x1a, len(image))
	assert.Equal(make([]byte, 0x10), image[:0x10])
	assert.Equal([]byte{
		0xd3, 0x01,
		0x41, 0x42, 0xff,
		0x15, 0x00, 0x19, 0x00,
		0x76,
	}, image[0x10:])
}

func TestAssemblerExpression(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".equ BASE 0x100",
		"top: LXI H,$(BASE + 2)",
		"  MVI A,$((BASE >> 4) | 1)",
		"  JMP $(top + 3)",
	)

	assert.Equal([]byte{
		0x21, 0x02, 0x01,
		0x3e, 0x11,
		0xc3, 0x03, 0x00,
	}, prog.Binary())
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		".macro LOAD reg,val",
		"  MVI reg,val",
		".endm",
		".macro SPIN",
		"@loop: DCR A",
		"  JNZ @loop",
		".endm",
		"  LOAD A,3",
		"  SPIN",
		"  SPIN",
		"  HLT",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal([]byte{
		0x3e, 0x03,
		0x3d,
		0xc2, 0x02, 0x00,
		0x3d,
		0xc2, 0x06, 0x00,
		0x76,
	}, prog.Binary())

	assert.Equal(2, asm.Label["SPIN_9_loop"])
	assert.Equal(6, asm.Label["SPIN_10_loop"])
	assert.Equal(2, prog.Opcodes[0].LineNo)
	assert.Equal(11, prog.Opcodes[len(prog.Opcodes)-1].LineNo)
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		err     error
		lineno  int
	}){
		{"opcode", []string{"NOP", "FOO A"}, ErrOpcodeInvalid, 2},
		{"label-missing", []string{"JMP nowhere"}, ErrLabelMissing("nowhere"), 1},
		{"label-dup", []string{"x: NOP", "x: NOP"}, ErrLabelDuplicate, 2},
		{"range-8", []string{"MVI A,256"}, ErrValueRange, 1},
		{"range-16", []string{"LXI B,10000h"}, ErrValueRange, 1},
		{"extra", []string{"NOP 1"}, ErrOpcodeExtraArgs, 1},
		{"missing", []string{"MVI A"}, ErrOpcodeValueMissing, 1},
		{"value", []string{"MVI A,x"}, ErrParseValue("x"), 1},
		{"number", []string{"MVI A,0x"}, ErrParseNumber("0x"), 1},
		{"equ", []string{".equ A"}, ErrEquateSyntax, 1},
		{"equ-dup", []string{".equ A 1", ".equ A 2"}, ErrEquateDuplicate, 2},
		{"org", []string{".org 10000h"}, ErrValueRange, 1},
		{"org-syntax", []string{".org"}, ErrOriginSyntax, 1},
		{"db", []string{".db"}, ErrDataSyntax, 1},
		{"overflow", []string{".org 0fffeh", "LXI H,0"}, ErrValueRange, 2},
		{"macro-lonely", []string{".macro X", "NOP"}, ErrMacroLonely, 2},
		{"endm-lonely", []string{"NOP", ".endm"}, ErrMacroLonelyEndm, 2},
		{"macro-nest", []string{".macro X", ".macro Y"}, ErrMacroNesting, 2},
		{"macro-dup", []string{".macro X", ".endm", ".macro X"}, ErrMacroDuplicate, 3},
		{"macro-args", []string{".macro X a", ".endm", "X"}, ErrMacroSyntax, 3},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}
}

func TestAssemblerMacroError(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		".macro BAD",
		"  MVI A,999",
		".endm",
		"BAD",
	}

	_, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.ErrorIs(err, ErrValueRange)

	var macro *ErrMacro
	if assert.True(errors.As(err, &macro)) {
		assert.Equal("BAD", macro.Macro)
		assert.Equal(2, macro.Line)
	}
}
