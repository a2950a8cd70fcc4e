package battery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitViewBasics(t *testing.T) {
	raw := []byte{0, 1, 1, 0, 1}
	v := NewBitView(raw)
	require.Equal(t, 5, v.Len())
	assert.Equal(t, byte(1), v.At(1))
	assert.Equal(t, -1, v.Signed(0))
	assert.Equal(t, 1, v.Signed(1))
	assert.Equal(t, 3, v.Ones())
}

func TestBitViewPartialSums(t *testing.T) {
	raw := []byte{1, 1, 0, 1, 0}
	v := NewBitView(raw)
	sums := v.PartialSums()
	require.Len(t, sums, 6)
	assert.Equal(t, 0, sums[0])
	assert.Equal(t, 1, sums[1])
	assert.Equal(t, 2, sums[2])
	assert.Equal(t, 1, sums[3])
	assert.Equal(t, 2, sums[4])
	assert.Equal(t, 1, sums[5])
}

func TestBitViewBlock(t *testing.T) {
	raw := []byte{0, 1, 1, 0, 1, 1, 0, 0}
	v := NewBitView(raw)
	block := v.Block(2, 3)
	assert.Equal(t, []byte{1, 0, 1}, block.Bytes())
}
