package battery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllKernelsProduceValidPValues exercises every kernel in
// AllKernels() at the default parameter set against a single
// deterministic iteration, checking the universal output invariant
// every kernel must satisfy: each emitted value is either NonPValue or
// a finite number in [0, 1] (spec.md §7, "p ∈ [0,1] ∪ {NON_P_VALUE}").
func TestAllKernelsProduceValidPValues(t *testing.T) {
	params := DefaultTestParameters()
	consts := NewTestConstants(params)

	bits := make([]byte, params.N)
	state := uint64(0x2545F4914F6CDD1D)
	for i := range bits {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		bits[i] = byte(state & 1)
	}
	view := NewBitView(bits)

	for _, k := range AllKernels() {
		k := k
		t.Run(k.Name(), func(t *testing.T) {
			if !k.Init(params, consts) {
				t.Skipf("%s declined the default parameter set", k.Name())
				return
			}
			require.Equal(t, k.Partitions() >= 1, true)
			pvalues := k.Iterate(view, params, consts, k.NewScratch())
			require.Len(t, pvalues, k.Partitions())
			for _, p := range pvalues {
				if p == NonPValue {
					continue
				}
				assert.GreaterOrEqual(t, p, 0.0)
				assert.LessOrEqual(t, p, 1.0)
			}
		})
	}
}
