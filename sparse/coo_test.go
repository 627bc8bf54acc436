// Package sparse_test: COO builder tests covering accumulation,
// validation, and the conversion to a sorted, duplicate-compressed CSC
// view.
package sparse_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparsolve/sparse"
)

func TestNewCOO_BadDimension(t *testing.T) {
	_, err := sparse.NewCOO(-1)
	require.ErrorIs(t, err, sparse.ErrBadDimension)
}

func TestCOO_Put_Validation(t *testing.T) {
	c, err := sparse.NewCOO(2)
	require.NoError(t, err)

	require.ErrorIs(t, c.Put(2, 0, 1), sparse.ErrOutOfRange)
	require.ErrorIs(t, c.Put(0, -1, 1), sparse.ErrOutOfRange)
	require.ErrorIs(t, c.Put(0, 0, math.NaN()), sparse.ErrNaNInf)
	require.NoError(t, c.Put(0, 0, 1))
	require.Equal(t, 1, c.Len())
}

func TestCOO_ToCSC_Empty(t *testing.T) {
	c, err := sparse.NewCOO(3)
	require.NoError(t, err)

	_, err = c.ToCSC()
	require.ErrorIs(t, err, sparse.ErrEmpty)
}

func TestCOO_ToCSC_SortsAndSumsDuplicates(t *testing.T) {
	// Stamp the 2×2 matrix [[1, 2], [3, 4]] out of order, with (1, 0)
	// contributed in two pieces.
	c, err := sparse.NewCOO(2)
	require.NoError(t, err)
	require.NoError(t, c.Put(1, 1, 4))
	require.NoError(t, c.Put(1, 0, 1))
	require.NoError(t, c.Put(0, 1, 2))
	require.NoError(t, c.Put(0, 0, 1))
	require.NoError(t, c.Put(1, 0, 2)) // duplicate position: 1 + 2 = 3

	m, err := c.ToCSC()
	require.NoError(t, err)
	require.Equal(t, int32(2), m.Dim())
	require.Equal(t, int32(4), m.Nnz())
	require.Equal(t, []int32{0, 2, 4}, m.ColPtr())
	require.Equal(t, []int32{0, 1, 0, 1}, m.RowIdx())
	require.Equal(t, []float64{1, 3, 2, 4}, m.Values())
}

func TestCOO_ToCSC_BuilderReusable(t *testing.T) {
	// ToCSC leaves the builder intact: stamping more entries afterwards
	// and converting again must reflect both generations.
	c, err := sparse.NewCOO(2)
	require.NoError(t, err)
	require.NoError(t, c.Put(0, 0, 5))

	first, err := c.ToCSC()
	require.NoError(t, err)
	require.Equal(t, int32(1), first.Nnz())

	require.NoError(t, c.Put(1, 1, 7))
	second, err := c.ToCSC()
	require.NoError(t, err)
	require.Equal(t, int32(2), second.Nnz())

	v, err := second.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 7.0, v)
}
