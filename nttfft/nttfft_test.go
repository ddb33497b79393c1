package nttfft

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fractio/bigkernel/bigint"
)

func TestFindNTTPrimeSatisfiesCongruence(t *testing.T) {
	p, root, ok := FindNTTPrime(20, 8)
	require.True(t, ok)
	require.Equal(t, uint64(0), (p-1)%8)
	require.Equal(t, uint64(1), powMod(root, 8, p))
	require.NotEqual(t, uint64(1), powMod(root, 4, p))
}

func TestRootTableForwardInverseRoundTrip(t *testing.T) {
	p, root, ok := FindNTTPrime(20, 8)
	require.True(t, ok)
	rt := NewRootTable(8, p, root)

	in := []uint64{1, 2, 3, 4, 5, 6, 7, 8}
	fwd := rt.Forward(in)
	back := rt.Inverse(fwd)
	require.Equal(t, in, back)
}

func TestMultiplyMatchesSchoolbook(t *testing.T) {
	if !Available(4, 4) {
		t.Skip("small-prime NTT backend unavailable on this CPU")
	}
	a := []*bigint.Int{bigint.NewInt(1), bigint.NewInt(2), bigint.NewInt(3)}
	b := []*bigint.Int{bigint.NewInt(4), bigint.NewInt(5)}

	got, err := Multiply(a, b)
	require.NoError(t, err)

	// Schoolbook reference: (1+2x+3x^2)(4+5x) = 4+13x+22x^2+15x^3.
	want := []int64{4, 13, 22, 15}
	require.Equal(t, len(want), len(got))
	for i, w := range want {
		require.Equal(t, w, got[i].Int64(), "coeff %d", i)
	}
}

func TestAvailableRejectsEmptyOperands(t *testing.T) {
	require.False(t, Available(0, 5))
	require.False(t, Available(5, 0))
}
