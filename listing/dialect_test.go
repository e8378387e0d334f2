package listing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialectByName(t *testing.T) {
	assert := assert.New(t)

	dia, err := DialectByName("msvc", false)
	assert.NoError(err)
	assert.IsType(&Msvc{}, dia)

	dia, err = DialectByName("gcc", false)
	assert.NoError(err)
	assert.IsType(&Gcc{}, dia)

	_, err = DialectByName("tcc", false)
	var unknown ErrDialectUnknown
	assert.ErrorAs(err, &unknown)
}

func TestGccStub(t *testing.T) {
	assert := assert.New(t)

	// The GCC dialect grammar is not yet designed; any input parses to
	// an empty block map.
	dia := &Gcc{}
	blocks, err := dia.Parse(strings.NewReader("\tmovl\t$0, %eax\n\tret\n"), "main.c", 10)
	assert.NoError(err)
	assert.Equal(BlockMap{}, blocks)
}
