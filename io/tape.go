package io

import (
	"io"
)

// Tape writes the bytes sent to selected ports to an io.Writer.
type Tape struct {
	Output io.Writer
	Ports  []uint8 // Ports to capture; all ports when empty.

	Written int // Bytes written since the last rewind.
}

// Rewind is not possible on a tape; it only resets the counter.
func (tc *Tape) Rewind() {
	tc.Written = 0
}

// Send writes value to the output stream if port is selected.
func (tc *Tape) Send(port uint8, value uint8) (err error) {
	if !tc.selected(port) {
		return
	}

	if tc.Output == nil {
		err = ErrPortNoOutput
		return
	}

	n, err := tc.Output.Write([]byte{value})
	tc.Written += n

	return
}

func (tc *Tape) selected(port uint8) bool {
	if len(tc.Ports) == 0 {
		return true
	}
	for _, p := range tc.Ports {
		if p == port {
			return true
		}
	}
	return false
}
