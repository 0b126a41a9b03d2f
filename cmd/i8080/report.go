// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"fmt"
	stdio "io"

	"github.com/ezrec/i8080/cpu"
	"github.com/ezrec/i8080/io"
)

// reportFault prints the processor state captured by a fatal fault.
func reportFault(w stdio.Writer, err error) {
	var fault *cpu.ErrFault
	if errors.As(err, &fault) {
		fmt.Fprint(w, fault.State)
	}
}

// reportWrites prints one line per recorded OUT write.
func reportWrites(w stdio.Writer, writes []io.Write) {
	for n, wr := range writes {
		fmt.Fprintf(w, "%6d: port %02X value %02X\n", n, wr.Port, wr.Value)
	}
}
