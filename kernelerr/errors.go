// Package kernelerr collects the error kinds shared by the bigint, intpoly,
// crt and ratfunc packages. Every error-returning entry point in those
// packages wraps one of these sentinels so callers can test with errors.Is;
// void operations that would otherwise need to return DivByZero or Domain
// panic with the sentinel instead, since those represent programmer error
// rather than input-dependent failure.
package kernelerr

import "errors"

var (
	// ErrDivByZero is returned (or panicked with, from void operations) by
	// any operation whose algebraic definition involves dividing by zero.
	ErrDivByZero = errors.New("kernelerr: division by zero")

	// ErrDomain is returned (or panicked with) when an operation is called
	// outside its domain: negative exponent on a non-unit base, log of a
	// non-positive integer, sqrt of a negative integer, a precondition on a
	// composition/reversion argument, etc.
	ErrDomain = errors.New("kernelerr: value outside operation domain")

	// ErrInexact is returned when an exact operation (exact division, exact
	// root extraction) has no exact result for the given inputs.
	ErrInexact = errors.New("kernelerr: exact operation has no exact result")

	// ErrParse is returned by string-input parsers on malformed input.
	ErrParse = errors.New("kernelerr: malformed input")

	// ErrOverflow is returned when an internal count (length, bit count)
	// would exceed the range of a machine word.
	ErrOverflow = errors.New("kernelerr: count exceeds machine word range")

	// ErrUnavailable is returned by an optional backend (the small-prime
	// FFT multiplication path) when it cannot service the request; callers
	// must fall through to another strategy rather than treat this as
	// fatal.
	ErrUnavailable = errors.New("kernelerr: optional backend unavailable for this input")

	// ErrNoSolution is returned by interpolation with inconsistent inputs,
	// or by extended GCD when a required modular inverse does not exist.
	ErrNoSolution = errors.New("kernelerr: no solution")
)
