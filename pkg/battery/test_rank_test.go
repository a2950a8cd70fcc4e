package battery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOnSequentialZeros(t *testing.T) {
	params := DefaultTestParameters()
	params.N = 1000000
	consts := NewTestConstants(params)
	k := &rankKernel{}
	require.True(t, k.Init(params, consts))

	bits := make([]byte, params.N)
	p := k.Iterate(NewBitView(bits), params, consts, k.NewScratch())
	assert.InDelta(t, 0.0, p[0], 1e-9)
}
