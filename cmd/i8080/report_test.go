// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/i8080/emulator"
	"github.com/ezrec/i8080/io"
)

func TestReportFault(t *testing.T) {
	assert := assert.New(t)

	emu := emulator.NewEmulator()
	assert.NoError(emu.Load([]byte{0x3e, 0x41, 0xd3, 0x01}))
	emu.SetPort(&io.Recorder{Writes: []io.Write{{}}, Limit: 1})

	_, err := emu.Run(context.Background())
	assert.Error(err)

	var buff bytes.Buffer
	reportFault(&buff, err)
	assert.Contains(buff.String(), "pc: 0002")

	buff.Reset()
	reportFault(&buff, errors.New("plain"))
	assert.Empty(buff.String())
}

func TestReportWrites(t *testing.T) {
	assert := assert.New(t)

	var buff bytes.Buffer
	reportWrites(&buff, []io.Write{{Port: 1, Value: 0x48}, {Port: 0x10, Value: 0xff}})
	assert.Equal("     0: port 01 value 48\n     1: port 10 value FF\n", buff.String())
}
