package io

import (
	"errors"

	"github.com/ezrec/i8080/translate"
)

var f = translate.From

var (
	// Port errors
	ErrPortFull     = errors.New(f("port full"))
	ErrPortNoOutput = errors.New(f("port has no output"))
)
