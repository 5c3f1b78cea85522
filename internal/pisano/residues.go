package pisano

import "github.com/bits-and-blooms/bitset"

// ResidueSet tracks which residues of [0, m) have not been observed yet.
// It only ever shrinks.
type ResidueSet struct {
	seen      *bitset.BitSet
	remaining uint64
}

// NewResidueSet returns the full set {0, ..., m-1}.
func NewResidueSet(m uint64) *ResidueSet {
	return &ResidueSet{
		seen:      bitset.New(uint(m)),
		remaining: m,
	}
}

// Remove marks r as observed. It returns true the first time r is removed;
// removing the same residue again is a no-op.
func (s *ResidueSet) Remove(r uint64) bool {
	if s.seen.Test(uint(r)) {
		return false
	}
	s.seen.Set(uint(r))
	s.remaining--
	return true
}

// Contains reports whether r is still unobserved.
func (s *ResidueSet) Contains(r uint64) bool {
	return !s.seen.Test(uint(r))
}

// Remaining returns the number of unobserved residues.
func (s *ResidueSet) Remaining() uint64 {
	return s.remaining
}

// Empty reports whether every residue has been observed.
func (s *ResidueSet) Empty() bool {
	return s.remaining == 0
}
