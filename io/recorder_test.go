package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder_Send(t *testing.T) {
	assert := assert.New(t)

	rc := &Recorder{}
	assert.NoError(rc.Send(1, 0x10))
	assert.NoError(rc.Send(2, 0x20))
	assert.NoError(rc.Send(1, 0x11))

	assert.Len(rc.Writes, 3)
	assert.Equal([]uint8{0x10, 0x11}, rc.Values(1))
	assert.Equal([]uint8{0x20}, rc.Values(2))
	assert.Nil(rc.Values(3))
}

func TestRecorder_Next(t *testing.T) {
	assert := assert.New(t)

	rc := &Recorder{}

	_, ok := rc.Next()
	assert.False(ok)

	rc.Send(4, 0x44)
	w, ok := rc.Next()
	assert.True(ok)
	assert.Equal(Write{Port: 4, Value: 0x44}, w)

	_, ok = rc.Next()
	assert.False(ok)
}

func TestRecorder_Limit(t *testing.T) {
	assert := assert.New(t)

	rc := &Recorder{Limit: 1}
	assert.NoError(rc.Send(0, 1))
	assert.Equal(ErrPortFull, rc.Send(0, 2))

	rc.Rewind()
	assert.Nil(rc.Writes)
	assert.NoError(rc.Send(0, 3))
}
