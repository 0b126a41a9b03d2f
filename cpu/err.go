package cpu

import (
	"errors"

	"github.com/ezrec/i8080/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalt            = errors.New(f("halted"))
	ErrImageSize       = errors.New(f("image larger than address space"))
	ErrImageRead       = errors.New(f("image unreadable"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrPairInvalid     = errors.New(f("register pair invalid"))
	ErrConditionCode   = errors.New(f("condition code invalid"))
	ErrHandlerMissing  = errors.New(f("no handler"))
	ErrPortWrite       = errors.New(f("output port write"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOriginSyntax       = errors.New(f(".org syntax"))
	ErrDataSyntax         = errors.New(f("data directive syntax"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrValueRange         = errors.New(f("value out of range"))
)

// ErrDecode reports an opcode with no defined mapping.
type ErrDecode uint8

func (ed ErrDecode) Error() string {
	return f("bad opcode 0x%02x", uint8(ed))
}

func (ed ErrDecode) Is(err error) (ok bool) {
	_, ok = err.(ErrDecode)
	return
}

// ErrFault is a fatal processor condition, with the state at the time of
// failure.
type ErrFault struct {
	Pc     uint16
	Opcode uint8
	State  string
	Err    error
}

func (err *ErrFault) Error() string {
	return f("pc 0x%04x opcode 0x%02x: %v", err.Pc, err.Opcode, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or label", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
