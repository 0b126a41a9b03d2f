package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("pc 0x1337", From("pc %#04x", 0x1337))
	assert.Equal("plain", From("plain"))
}
