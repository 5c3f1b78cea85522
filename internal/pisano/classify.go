package pisano

// completeCofactors are the 5-free parts allowed for a modulus whose Pisano
// period covers every residue, besides powers of three.
var completeCofactors = map[uint64]bool{1: true, 2: true, 4: true, 6: true, 7: true, 14: true}

// IsCompleteResidueModulus reports whether the Fibonacci sequence modulo m
// hits every residue class, using Burr's characterization: m is one of
// 5^k, 2·5^k, 4·5^k, 3^j·5^k, 6·5^k, 7·5^k or 14·5^k (j ≥ 1, k ≥ 0).
// It runs in O(log m) and does not walk the sequence.
func IsCompleteResidueModulus(m uint64) bool {
	if m < 2 {
		return false
	}
	for m%5 == 0 {
		m /= 5
	}
	if completeCofactors[m] {
		return true
	}
	for m%3 == 0 {
		m /= 3
	}
	return m == 1
}
