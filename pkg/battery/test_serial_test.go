package battery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialOnPeriodicSequence(t *testing.T) {
	params := DefaultTestParameters()
	params.N = 1000000
	params.SerialBlockLength = 16
	consts := NewTestConstants(params)
	k := &serialKernel{}
	require.True(t, k.Init(params, consts))

	p := k.Iterate(NewBitView(alternatingBits(params.N)), params, consts, k.NewScratch())
	require.Len(t, p, 2)
	assert.InDelta(t, 0.0, p[0], 1e-6)
	assert.InDelta(t, 0.0, p[1], 1e-6)
}
