// Package intpoly implements Poly, a dense univariate polynomial with
// bigint.Int coefficients: representation and length invariants, the
// multiplication dispatch tower (classical, Karatsuba, Kronecker
// substitution, small-prime multi-modular FFT), division, GCD, power
// series, composition, interpolation and evaluation, and string I/O.
//
// Grounded on tuneinsight/lattigo's ring.Poly (ring/poly.go) for the
// length/capacity/aliasing-safe-op shape, and on FLINT's fmpz_poly module
// (original_source/src/fmpz_poly) for the algorithmic tower itself, since
// lattigo's Poly is a fixed-size RNS polynomial with no analogue of
// growing length, division, or GCD.
package intpoly

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fractio/bigkernel/bigint"
	"github.com/fractio/bigkernel/kernelerr"
)

// Poly is a dense polynomial sum_i c[i]*x^i with bigint.Int coefficients.
// The zero value is the zero polynomial, ready to use.
//
// Normalization invariant: len(coeffs) == 0 or the last coefficient is
// non-zero. Every exported operation restores this invariant before
// returning (spec.md §3.3, §4.3.1).
type Poly struct {
	c []bigint.Int
}

// New returns the zero polynomial.
func New() *Poly { return &Poly{} }

// NewFromCoeffs returns a polynomial with the given coefficients,
// constant term first, normalizing away any trailing zeros.
func NewFromCoeffs(coeffs []*bigint.Int) *Poly {
	p := &Poly{c: make([]bigint.Int, len(coeffs))}
	for i, c := range coeffs {
		p.c[i].Set(c)
	}
	p.normalize()
	return p
}

// Len returns the logical coefficient count (degree + 1, or 0 for the
// zero polynomial).
func (p *Poly) Len() int { return len(p.c) }

// Degree returns deg(p): len(p)-1, or -1 for the zero polynomial.
func (p *Poly) Degree() int { return len(p.c) - 1 }

// Coeff returns a pointer to coefficient i (0 for i >= Len(), per the
// "reads never go out of logical range" convention used by At in ivec;
// unlike ivec.At this does not panic on i >= Len so that callers can
// index past the end of a shorter operand symmetrically).
func (p *Poly) Coeff(i int) *bigint.Int {
	if i < 0 || i >= len(p.c) {
		return bigint.NewInt(0)
	}
	return &p.c[i]
}

// FitLength grows capacity to at least k, leaving the logical length and
// existing coefficients unchanged. Never shrinks (spec.md §4.3.1).
func (p *Poly) FitLength(k int) {
	if cap(p.c) < k {
		nc := make([]bigint.Int, len(p.c), k)
		copy(nc, p.c)
		p.c = nc
	}
}

// SetLength sets the logical length to k without reallocating beyond
// existing capacity, extending with zero coefficients if k grows. The
// caller is responsible for normalizing afterward if k may have
// introduced a zero leading coefficient, or for initializing any new
// slots beyond zero (spec.md §4.3.1).
func (p *Poly) SetLength(k int) {
	if k <= len(p.c) {
		p.c = p.c[:k]
		return
	}
	p.FitLength(k)
	old := len(p.c)
	p.c = p.c[:k]
	for i := old; i < k; i++ {
		p.c[i].Clear()
	}
}

// Swap exchanges a and b's representations in O(1).
func Swap(a, b *Poly) { a.c, b.c = b.c, a.c }

func (p *Poly) normalize() {
	n := len(p.c)
	for n > 0 && p.c[n-1].IsZero() {
		n--
	}
	p.c = p.c[:n]
}

// Set sets p to a copy of a's value.
func (p *Poly) Set(a *Poly) *Poly {
	if p == a {
		return p
	}
	p.SetLength(len(a.c))
	for i := range a.c {
		p.c[i].Set(&a.c[i])
	}
	return p
}

// Copy returns a fresh polynomial equal to a.
func Copy(a *Poly) *Poly { return New().Set(a) }

// IsZero reports whether p is the zero polynomial.
func (p *Poly) IsZero() bool { return len(p.c) == 0 }

// IsOne reports whether p == 1.
func (p *Poly) IsOne() bool { return len(p.c) == 1 && p.c[0].Cmp(bigint.NewInt(1)) == 0 }

// Equal reports whether a and b represent the same polynomial.
func Equal(a, b *Poly) bool {
	if len(a.c) != len(b.c) {
		return false
	}
	for i := range a.c {
		if !a.c[i].Equal(&b.c[i]) {
			return false
		}
	}
	return true
}

// LeadingCoeff returns the leading coefficient, or 0 for the zero
// polynomial.
func (p *Poly) LeadingCoeff() *bigint.Int {
	if len(p.c) == 0 {
		return bigint.NewInt(0)
	}
	return &p.c[len(p.c)-1]
}

// MaxBits returns a signed value whose absolute value is the maximum
// coefficient bit-length, negative iff any coefficient is negative
// (mirrors ivec.MaxBits for the coefficient vector).
func (p *Poly) MaxBits() int {
	max := 0
	neg := false
	for i := range p.c {
		if p.c[i].Sign() < 0 {
			neg = true
		}
		if b := p.c[i].BitLen(); b > max {
			max = b
		}
	}
	if neg {
		return -max
	}
	return max
}

// String renders p in the wire format <length>  <c0> <c1> ... (two spaces
// after the length, one between coefficients; spec.md §6.1).
func (p *Poly) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d ", len(p.c))
	for _, c := range p.c {
		b.WriteByte(' ')
		b.WriteString(c.String())
	}
	return b.String()
}

// SetString parses p from the wire format produced by String. Reports
// whether parsing succeeded; on failure p is set to the zero polynomial
// (spec.md §7: explicit parse errors leave the destination canonical-zero).
func (p *Poly) SetString(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		p.SetLength(0)
		return false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 || len(fields) != n+1 {
		p.SetLength(0)
		return false
	}
	p.SetLength(n)
	for i := 0; i < n; i++ {
		if !p.c[i].SetString(fields[i+1]) {
			p.SetLength(0)
			return false
		}
	}
	p.normalize()
	return true
}

// ParsePoly is the functional counterpart of SetString, returning
// kernelerr.ErrParse on malformed input.
func ParsePoly(s string) (*Poly, error) {
	p := New()
	if !p.SetString(s) {
		return nil, kernelerr.ErrParse
	}
	return p, nil
}

// PrettyString formats p as algebraic notation in the given variable
// name, e.g. "t^2+2*t+1" (spec.md §6.1); the zero polynomial prints "0".
func (p *Poly) PrettyString(variable string) string {
	if p.IsZero() {
		return "0"
	}
	var b strings.Builder
	first := true
	for i := len(p.c) - 1; i >= 0; i-- {
		coeff := &p.c[i]
		if coeff.IsZero() {
			continue
		}
		writeTerm(&b, coeff, i, variable, first)
		first = false
	}
	return b.String()
}

func writeTerm(b *strings.Builder, coeff *bigint.Int, power int, variable string, first bool) {
	neg := coeff.Sign() < 0
	var mag bigint.Int
	bigint.Abs(&mag, coeff)

	if !first {
		if neg {
			b.WriteByte('-')
		} else {
			b.WriteByte('+')
		}
	} else if neg {
		b.WriteByte('-')
	}

	switch {
	case power == 0:
		b.WriteString(mag.String())
	case mag.Cmp(bigint.NewInt(1)) == 0:
		b.WriteString(variable)
		writePower(b, power)
	default:
		b.WriteString(mag.String())
		b.WriteByte('*')
		b.WriteString(variable)
		writePower(b, power)
	}
}

func writePower(b *strings.Builder, power int) {
	if power == 1 {
		return
	}
	fmt.Fprintf(b, "^%d", power)
}
