package ivec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fractio/bigkernel/bigint"
)

func vec(vs ...int64) *IntVec {
	v := New(len(vs))
	for i, x := range vs {
		v.At(i).SetInt64(x)
	}
	return v
}

func TestAddSubNeg(t *testing.T) {
	a := vec(1, 2, 3)
	b := vec(10, 20, 30)
	var sum, diff, neg IntVec
	Add(&sum, a, b)
	require.Equal(t, []int64{11, 22, 33}, toInts(&sum))

	Sub(&diff, b, a)
	require.Equal(t, []int64{9, 18, 27}, toInts(&diff))

	Neg(&neg, a)
	require.Equal(t, []int64{-1, -2, -3}, toInts(&neg))
}

func TestScalarOps(t *testing.T) {
	a := vec(2, 4, 6)
	c := bigint.NewInt(2)
	var mul, div, mod IntVec
	ScalarMul(&mul, a, c)
	require.Equal(t, []int64{4, 8, 12}, toInts(&mul))

	ScalarFDivQ(&div, a, c)
	require.Equal(t, []int64{1, 2, 3}, toInts(&div))

	ScalarMod(&mod, vec(5, 7, 9), bigint.NewInt(3))
	require.Equal(t, []int64{2, 1, 0}, toInts(&mod))
}

func TestMaxBitsSignedAndUnsigned(t *testing.T) {
	require.Equal(t, 4, MaxBits(vec(1, 15, 2)))
	require.Equal(t, -4, MaxBits(vec(1, -15, 2)))
	require.Equal(t, 0, MaxBits(vec(0, 0)))
}

func TestContent(t *testing.T) {
	require.Equal(t, int64(6), Content(vec(12, 18, 24)).Int64())
	require.Equal(t, int64(0), Content(vec(0, 0)).Int64())
}

func TestDotGeneral(t *testing.T) {
	a := vec(1, 2, 3)
	b := vec(4, 5, 6)
	var dst bigint.Int
	DotGeneral(&dst, nil, false, a, b, false, 3)
	require.Equal(t, int64(1*4+2*5+3*6), dst.Int64())

	var withInitial bigint.Int
	DotGeneral(&withInitial, bigint.NewInt(100), false, a, b, false, 3)
	require.Equal(t, int64(100+1*4+2*5+3*6), withInitial.Int64())

	var negatedInitial bigint.Int
	DotGeneral(&negatedInitial, bigint.NewInt(100), true, a, b, false, 3)
	require.Equal(t, int64(-100+1*4+2*5+3*6), negatedInitial.Int64())

	var reversed bigint.Int
	DotGeneral(&reversed, nil, false, a, b, true, 3)
	require.Equal(t, int64(1*6+2*5+3*4), reversed.Int64())
}

func TestBitPackUnpackRoundTripUnsigned(t *testing.T) {
	v := vec(1, 2, 3, 4, 5)
	packed := BitPackUnsigned(v, v.Len(), 8)
	out := BitUnpack(packed, v.Len(), 8, false)
	require.Equal(t, toInts(v), toInts(out))
}

func TestBitPackUnpackRoundTripSigned(t *testing.T) {
	v := vec(-5, 3, -100, 42, 0)
	packed := BitPack(v, v.Len(), 16)
	out := BitUnpack(packed, v.Len(), 16, true)
	require.Equal(t, toInts(v), toInts(out))
}

func TestCopyIsIndependent(t *testing.T) {
	a := vec(1, 2, 3)
	b := a.Copy()
	b.At(0).SetInt64(99)
	require.Equal(t, int64(1), a.At(0).Int64())
	require.Equal(t, int64(99), b.At(0).Int64())
}

func toInts(v *IntVec) []int64 {
	out := make([]int64, v.Len())
	for i := 0; i < v.Len(); i++ {
		out[i] = v.At(i).Int64()
	}
	return out
}
