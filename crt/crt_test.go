package crt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fractio/bigkernel/bigint"
)

func TestCombRoundTrip(t *testing.T) {
	// spec.md §8.4 scenario 1: primes [3,5,7], value 23.
	c := NewComb([]uint64{3, 5, 7})
	require.Equal(t, 3, c.Len())

	var x bigint.Int
	x.SetInt64(23)
	residues := c.Reduce(&x)
	require.Equal(t, []uint64{2, 3, 2}, residues)

	var back bigint.Int
	c.Recombine(&back, residues)
	require.Equal(t, int64(23), back.Int64())
}

func TestCombReduceMatchesDirectMod(t *testing.T) {
	primes := []uint64{3, 5, 7, 11, 13}
	c := NewComb(primes)
	var x bigint.Int
	x.SetInt64(123456789)
	residues := c.Reduce(&x)
	for i, p := range primes {
		var pInt, r bigint.Int
		pInt.SetUint64(p)
		bigint.Mod(&r, &x, &pInt)
		require.Equal(t, r.Uint64(), residues[i])
	}
}

func TestMultiCRTArbitraryModuli(t *testing.T) {
	moduli := []*bigint.Int{bigint.NewInt(4), bigint.NewInt(9), bigint.NewInt(25)}
	m := NewMultiCRT(moduli)
	require.True(t, m.Valid())
	require.Equal(t, int64(900), m.ModuliProduct().Int64())

	residues := []*bigint.Int{bigint.NewInt(1), bigint.NewInt(2), bigint.NewInt(3)}
	var out bigint.Int
	ok := m.Evaluate(&out, residues)
	require.True(t, ok)

	for i, r := range residues {
		var mod bigint.Int
		bigint.Mod(&mod, &out, moduli[i])
		require.Equal(t, r.Int64(), mod.Int64())
	}
}

func TestMultiCRTRejectsNonCoprimeModuli(t *testing.T) {
	moduli := []*bigint.Int{bigint.NewInt(4), bigint.NewInt(6)}
	m := NewMultiCRT(moduli)
	require.False(t, m.Valid())
}
