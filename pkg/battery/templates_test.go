package battery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateCatalogM2(t *testing.T) {
	// m=2 words: 00 (periodic, shift1 00==00), 01 (aperiodic), 10 (aperiodic), 11 (periodic)
	tc := newTemplateCatalog(2)
	require.Equal(t, 2, tc.Count())
	assert.Equal(t, []byte{0, 1}, tc.Template(0))
	assert.Equal(t, []byte{1, 0}, tc.Template(1))
}

func TestIsAperiodic(t *testing.T) {
	assert.False(t, isAperiodic([]byte{0, 0, 0}))
	assert.False(t, isAperiodic([]byte{1, 1, 1}))
	assert.True(t, isAperiodic([]byte{0, 0, 1}))
	assert.False(t, isAperiodic([]byte{1, 0, 1, 0}))
}

func TestWordBits(t *testing.T) {
	assert.Equal(t, []byte{1, 0, 1}, wordBits(5, 3))
	assert.Equal(t, []byte{0, 0, 0}, wordBits(0, 3))
}
