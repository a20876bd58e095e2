// Package rational provides the exact fraction arithmetic the frequency
// solver needs: multiplication, division, equality, and least-common-
// multiple of denominators. It is a thin domain-specific layer over
// math/big.Rat, which already stores every value in lowest terms.
//
// No pack dependency fits this concern better than the standard library:
// github.com/shopspring/decimal (used elsewhere in the retrieval pack for
// money arithmetic) is a base-10 fixed-point type with no numerator or
// denominator to inspect, so it cannot support the denominator-LCM
// normalization spec.md's frequency solver requires. math/big.Rat is the
// correct exact rational type and is part of the standard library.
package rational

import "math/big"

// One is the multiplicative identity, 1/1.
func One() *big.Rat {
	return big.NewRat(1, 1)
}

// Mul returns a*b as a new, freshly reduced rational.
func Mul(a, b *big.Rat) *big.Rat {
	return new(big.Rat).Mul(a, b)
}

// Quo returns a/b as a new, freshly reduced rational.
func Quo(a, b *big.Rat) *big.Rat {
	return new(big.Rat).Quo(a, b)
}

// Equal reports whether a and b represent the same value.
func Equal(a, b *big.Rat) bool {
	return a.Cmp(b) == 0
}

// LCMDenominators returns the least common multiple of the denominators of
// every value in rs. Denominators are always positive because port
// frequencies are positive by contract, so gcd/lcm never see a zero.
func LCMDenominators(rs ...*big.Rat) *big.Int {
	lcm := big.NewInt(1)
	gcd := new(big.Int)
	for _, r := range rs {
		d := r.Denom()
		g := gcd.GCD(nil, nil, lcm, d)
		// lcm = lcm * d / gcd(lcm, d)
		next := new(big.Int).Mul(lcm, d)
		next.Div(next, g)
		lcm = next
	}
	return lcm
}

// ScaleToInt multiplies r by multiplicand and returns the result as an
// integer. Callers must ensure multiplicand is a multiple of r's
// denominator (LCMDenominators guarantees this for the frequency solver's
// use), otherwise the result is rounded toward zero.
func ScaleToInt(r *big.Rat, multiplicand *big.Int) *big.Int {
	scaled := new(big.Rat).Mul(r, new(big.Rat).SetInt(multiplicand))
	// scaled is now guaranteed integral by the caller's contract; Num()/Denom()
	// reflects that once reduced (Denom() == 1).
	if scaled.IsInt() {
		return scaled.Num()
	}
	q := new(big.Int).Quo(scaled.Num(), scaled.Denom())
	return q
}
