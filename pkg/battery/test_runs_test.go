package battery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunsPreconditionFailure(t *testing.T) {
	params := DefaultTestParameters()
	params.N = 100
	consts := NewTestConstants(params)
	k := runsKernel{}
	assert.True(t, k.Init(params, consts))

	bits := make([]byte, 100)
	for i := 0; i < 95; i++ {
		bits[i] = 1
	}
	p := k.Iterate(NewBitView(bits), params, consts, k.NewScratch())
	assert.Equal(t, NonPValue, p[0])
}
