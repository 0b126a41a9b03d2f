package io

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_Send(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	tape := &Tape{Output: out}

	assert.NoError(tape.Send(0, 'h'))
	assert.NoError(tape.Send(7, 'i'))
	assert.Equal("hi", out.String())
	assert.Equal(2, tape.Written)

	tape.Rewind()
	assert.Equal(0, tape.Written)
	assert.Equal("hi", out.String())
}

func TestTape_Ports(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	tape := &Tape{Output: out, Ports: []uint8{1}}

	assert.NoError(tape.Send(0, 'x'))
	assert.NoError(tape.Send(1, 'y'))
	assert.Equal("y", out.String())
}

func TestTape_NoOutput(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}
	assert.ErrorIs(tape.Send(0, 1), ErrPortNoOutput)
}
