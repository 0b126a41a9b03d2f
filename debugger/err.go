package debugger

import (
	"errors"

	"github.com/ezrec/i8080/translate"
)

var f = translate.From

var (
	ErrCommandUnknown = errors.New(f("unknown command"))
	ErrArgumentCount  = errors.New(f("wrong number of arguments"))
)

// ErrNumber is an unparsable address or count argument.
type ErrNumber string

func (err ErrNumber) Error() string {
	return f("'%v' is not a number", string(err))
}
