package ratfunc

import (
	"strings"

	"github.com/fractio/bigkernel/intpoly"
	"github.com/fractio/bigkernel/kernelerr"
)

// String renders r in the wire format of spec.md §6.1: just num's own wire
// format if den == 1, else "<num>/<den>" with no whitespace around the
// slash.
func (r *RatFunc) String() string {
	if r.den.IsOne() {
		return r.num.String()
	}
	return r.num.String() + "/" + r.den.String()
}

// SetString parses r from either a single polynomial (interpreted as
// poly/1) or "<num>/<den>", per spec.md §4.4.3. Reports whether parsing
// succeeded; on failure r is set to the zero rational function.
func (r *RatFunc) SetString(s string) bool {
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		var num, den intpoly.Poly
		if !num.SetString(s[:idx]) || !den.SetString(s[idx+1:]) || den.IsZero() {
			r.setZero()
			return false
		}
		r.num, r.den = &num, &den
		r.canonicalize()
		return true
	}
	var num intpoly.Poly
	if !num.SetString(s) {
		r.setZero()
		return false
	}
	r.num, r.den = &num, unitPoly()
	r.canonicalize()
	return true
}

func (r *RatFunc) setZero() {
	r.num, r.den = intpoly.New(), unitPoly()
}

// ParseRatFunc is the functional counterpart of SetString, returning
// kernelerr.ErrParse on malformed input.
func ParseRatFunc(s string) (*RatFunc, error) {
	r := New()
	if !r.SetString(s) {
		return nil, kernelerr.ErrParse
	}
	return r, nil
}

// PrettyString formats r as algebraic notation in the given variable name
// (spec.md §6.1), e.g. "t^2+2*t+1", "(t+1)/(t-1)", "-2/(t+1)": a
// denominator of 1 prints the bare numerator (no parentheses regardless of
// its shape); otherwise both sides are parenthesized unless each is a
// single monomial or a constant.
func (r *RatFunc) PrettyString(variable string) string {
	if r.den.IsOne() {
		return r.num.PrettyString(variable)
	}
	return prettyTerm(r.num, variable) + "/" + prettyTerm(r.den, variable)
}

func prettyTerm(p *intpoly.Poly, variable string) string {
	s := p.PrettyString(variable)
	if isMonomialOrConstant(p) {
		return s
	}
	return "(" + s + ")"
}

func isMonomialOrConstant(p *intpoly.Poly) bool {
	nz := 0
	for i := 0; i < p.Len(); i++ {
		if !p.Coeff(i).IsZero() {
			nz++
		}
	}
	return nz <= 1
}
