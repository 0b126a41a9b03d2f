package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := maps.All(map[string]int{"a": 1})
	b := maps.All(map[string]int{"b": 2, "a": 3})

	count := 0
	for range IterSeq2Concat(a, b) {
		count++
	}
	assert.Equal(3, count)

	got := maps.Collect(IterSeq2Concat(a, b))
	assert.Equal(map[string]int{"a": 3, "b": 2}, got)
}

func TestIterSeq2Concat_Stop(t *testing.T) {
	assert := assert.New(t)

	a := maps.All(map[string]int{"a": 1, "b": 2})

	count := 0
	for range IterSeq2Concat(a, a) {
		count++
		break
	}
	assert.Equal(1, count)
}
