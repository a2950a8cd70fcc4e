package battery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixRankIdentity(t *testing.T) {
	m := newMatrix(3, 3)
	bits := []byte{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
	m.fillRowMajor(bits, 0)
	assert.Equal(t, 3, m.rank())
}

func TestMatrixRankDeficient(t *testing.T) {
	m := newMatrix(3, 3)
	bits := []byte{
		1, 1, 0,
		1, 1, 0,
		0, 0, 1,
	}
	m.fillRowMajor(bits, 0)
	assert.Equal(t, 2, m.rank())
}

func TestMatrixRankAllZero(t *testing.T) {
	m := newMatrix(2, 2)
	m.fillRowMajor([]byte{0, 0, 0, 0}, 0)
	assert.Equal(t, 0, m.rank())
}
