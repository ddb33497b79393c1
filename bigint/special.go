package bigint

import "math/big"

// Factorial sets dst = n!.
func Factorial(dst *Int, n uint64) *Int {
	var r big.Int
	r.MulRange(1, int64(n))
	dst.setFromBig(&r)
	return dst
}

// Fibonacci sets dst = F(n), with F(0)=0, F(1)=1.
func Fibonacci(dst *Int, n uint64) *Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a, b = b, new(big.Int).Add(a, b)
	}
	dst.setFromBig(a)
	return dst
}

// Binomial sets dst = C(n, k).
func Binomial(dst *Int, n, k uint64) *Int {
	if k > n {
		dst.SetInt64(0)
		return dst
	}
	var r big.Int
	r.Binomial(int64(n), int64(k))
	dst.setFromBig(&r)
	return dst
}

// ChebyshevT sets dst = T_n(a), the degree-n Chebyshev polynomial of the
// first kind evaluated at the integer a, via the standard linear
// recurrence T_0=1, T_1=x, T_{k+1} = 2x*T_k - T_{k-1}.
func ChebyshevT(dst *Int, n uint64, a *Int) *Int {
	if n == 0 {
		dst.SetInt64(1)
		return dst
	}
	tPrev := NewInt(1)
	tCur := Copy(a)
	for k := uint64(1); k < n; k++ {
		var twoXT, next Int
		MulSi(&twoXT, tCur, 2)
		Mul(&twoXT, &twoXT, a)
		Sub(&next, &twoXT, tPrev)
		tPrev = tCur
		tCur = &next
	}
	dst.Set(tCur)
	return dst
}

// ChebyshevU sets dst = U_n(a), the degree-n Chebyshev polynomial of the
// second kind evaluated at a, via U_0=1, U_1=2x, U_{k+1}=2x*U_k - U_{k-1}.
func ChebyshevU(dst *Int, n uint64, a *Int) *Int {
	if n == 0 {
		dst.SetInt64(1)
		return dst
	}
	uPrev := NewInt(1)
	uCur := NewInt(0)
	MulSi(uCur, a, 2)
	for k := uint64(1); k < n; k++ {
		var twoXU, next Int
		MulSi(&twoXU, uCur, 2)
		Mul(&twoXU, &twoXU, a)
		Sub(&next, &twoXU, uPrev)
		uPrev = uCur
		uCur = &next
	}
	dst.Set(uCur)
	return dst
}

// IsProbablePrime reports whether |i| is probably prime, using n
// Miller-Rabin rounds (matches math/big.Int.ProbablyPrime's contract: n=20
// gives a false-positive probability below 2^-100 combined with a
// Baillie-PSW style check internally).
func IsProbablePrime(i *Int, n int) bool {
	var ib big.Int
	return i.bigView(&ib).ProbablyPrime(n)
}
