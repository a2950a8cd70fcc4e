package battery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPValueStoreSetAndPartition(t *testing.T) {
	store := NewPValueStore(3, 2)
	store.Set(0, []float64{0.5, 0.2}, 0.01, false)
	store.Set(1, []float64{NonPValue, NonPValue}, 0.01, true)
	store.Set(2, []float64{0.005, 0.9}, 0.01, false)

	p0 := store.Partition(0)
	require.Equal(t, []float64{0.5, NonPValue, 0.005}, p0)

	p1 := store.Partition(1)
	require.Equal(t, []float64{0.2, NonPValue, 0.9}, p1)

	c0 := store.CountersFor(0)
	assert.Equal(t, 3, c0.Count)
	assert.Equal(t, 2, c0.Valid)
	assert.Equal(t, 2, c0.ValidPVal)
	assert.Equal(t, 1, c0.Success)
	assert.Equal(t, 1, c0.Failure)
}

func TestPValueStorePanicsOnPartitionMismatch(t *testing.T) {
	store := NewPValueStore(1, 2)
	assert.Panics(t, func() {
		store.Set(0, []float64{0.5}, 0.01, false)
	})
}
