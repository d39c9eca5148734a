// Package combinatorics provides exact big-integer counting primitives: binomial
// coefficients, multiset coefficients, powers and mirror-reduced tuple counts.
package combinatorics

import (
	"math/big"

	"github.com/ChrisMcGann/OxLipidome/pkg/core"
)

// Int converts a machine integer.
func Int(n int) *big.Int {
	return big.NewInt(int64(n))
}

// Choose returns C(n, k) for n >= 0. It is 0 when k > n or k < 0.
// k is small in every caller so the falling product is evaluated directly.
func Choose(n *big.Int, k int) *big.Int {
	if k < 0 || n.Sign() < 0 || n.Cmp(Int(k)) < 0 {
		return new(big.Int)
	}

	num := big.NewInt(1)
	term := new(big.Int)
	for i := 0; i < k; i++ {
		term.Sub(n, Int(i))
		num.Mul(num, term)
	}

	den := new(big.Int).MulRange(1, int64(k))
	return num.Quo(num, den)
}

// MultisetChoose returns the number of size-k multisets drawn from n kinds,
// C(n+k-1, k).
func MultisetChoose(n *big.Int, k int) *big.Int {
	if k == 0 {
		return big.NewInt(1)
	}
	top := new(big.Int).Add(n, Int(k-1))
	return Choose(top, k)
}

// Pow returns base^exp for exp >= 0.
func Pow(base *big.Int, exp int) *big.Int {
	return new(big.Int).Exp(base, Int(exp), nil)
}

// UnorderedPairs returns C(k, 2) + k, the number of unordered pairs with
// repetition. It is the count for two positions swapped by a mirror.
func UnorderedPairs(k *big.Int) *big.Int {
	return MultisetChoose(k, 2)
}

// CountNoMirror returns the number of length-n tuples over k symbols when a
// tuple and its reverse are the same assignment. By Burnside's lemma over the
// reversal group this is (k^n + k^ceil(n/2)) / 2; for the triacylglycerol and
// cardiolipin backbones (n = 3, 4) the fixed-tuple term is k^2.
func CountNoMirror(k *big.Int, n int) (*big.Int, error) {
	if k.Sign() < 0 {
		return nil, &core.DomainError{Param: "k", Value: int(k.Int64()), Message: "symbol count must be non-negative"}
	}
	if n < 1 {
		return nil, &core.DomainError{Param: "n", Value: n, Message: "tuple length must be at least 1"}
	}

	total := Pow(k, n)
	total.Add(total, Pow(k, (n+1)/2))
	return total.Rsh(total, 1), nil
}
