// Package io provides output devices for the 8080 OUT instruction.
// It includes a Tape that writes each byte to a stream, and a Recorder
// that queues writes for later inspection.
package io

// Port defines the interface for devices attached to the processor's
// output latch.
type Port interface {
	// Rewind resets the device to its initial state.
	Rewind()
	// Send delivers a value written to an output port.
	Send(port uint8, value uint8) error
}
