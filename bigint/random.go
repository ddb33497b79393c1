package bigint

import (
	cryptorand "crypto/rand"
	"io"
	"math/big"
)

// Source is the opaque random-source capability the core consumes per
// spec.md §1/§2 ("Pseudo-random generator state ... the core consumes an
// opaque random source capability"); Int itself never seeds or owns one.
// Both crypto/rand.Reader and a math/rand.Rand's Read method satisfy this.
type Source interface {
	io.Reader
}

// RandInt returns a uniform random Int in [0, max). Panics (Domain) if
// max <= 0.
func RandInt(src Source, max *Int) *Int {
	if max.Sign() <= 0 {
		panic(domainErr("RandInt: max must be positive"))
	}
	var mb big.Int
	n, err := cryptorand.Int(src, max.bigView(&mb))
	if err != nil {
		panic(err)
	}
	return NewFromBigInt(n)
}
