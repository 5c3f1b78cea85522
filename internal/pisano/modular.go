package pisano

import (
	"fmt"
	"math/bits"

	apperrors "github.com/agbru/fibperiod/internal/errors"
)

// addMod returns (a + b) mod m for a, b < m. The carry out of the 64-bit
// sum is folded back so moduli close to 2^64 stay exact.
func addMod(a, b, m uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 || sum >= m {
		sum -= m
	}
	return sum
}

// subMod returns (a - b) mod m for a, b < m.
func subMod(a, b, m uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + (m - b)
}

// mulMod returns (a * b) mod m for a, b < m using a 128-bit product.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// FibonacciMod computes F(n) mod m using the fast doubling identities:
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))  mod m
//	F(2k+1) = F(k+1)² + F(k)²            mod m
//
// It runs in O(log n) word operations and never overflows for any m >= 1.
func FibonacciMod(n, m uint64) (uint64, error) {
	if m == 0 {
		return 0, apperrors.InvalidInputError{Modulus: m, Reason: "modulus must be positive"}
	}

	// (fk, fk1) = (F(k), F(k+1)), starting at k = 0.
	fk, fk1 := uint64(0), uint64(1)%m

	for i := bits.Len64(n) - 1; i >= 0; i-- {
		t1 := mulMod(fk, subMod(addMod(fk1, fk1, m), fk, m), m)
		t2 := addMod(mulMod(fk1, fk1, m), mulMod(fk, fk, m), m)
		fk, fk1 = t1, t2

		if (n>>uint(i))&1 == 1 {
			fk, fk1 = fk1, addMod(fk, fk1, m)
		}
	}

	return fk, nil
}

// ErrPeriodMismatch is returned by VerifyPeriod when the reported period does
// not bring the sequence back to (0, 1).
var ErrPeriodMismatch = fmt.Errorf("pisano period verification failed")

// VerifyPeriod cross-checks a full-period result with fast doubling:
// F(period) ≡ 0 and F(period+1) ≡ 1 (mod m). Results produced with early
// exit do not carry a full period and will generally fail this check.
func VerifyPeriod(r Result) error {
	if r.Modulus < 2 {
		return apperrors.InvalidInputError{Modulus: r.Modulus, Reason: "modulus must be >= 2"}
	}
	f0, err := FibonacciMod(r.Period, r.Modulus)
	if err != nil {
		return err
	}
	f1, err := FibonacciMod(r.Period+1, r.Modulus)
	if err != nil {
		return err
	}
	if f0 != 0 || f1 != 1 {
		return fmt.Errorf("%w: modulus %d period %d gives (F(p), F(p+1)) = (%d, %d)",
			ErrPeriodMismatch, r.Modulus, r.Period, f0, f1)
	}
	return nil
}
