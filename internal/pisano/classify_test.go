package pisano

import "testing"

func TestIsCompleteResidueModulus(t *testing.T) {
	t.Parallel()
	complete := []uint64{2, 3, 4, 5, 6, 7, 9, 10, 14, 15, 20, 25, 27, 30, 35, 45, 50, 70, 81, 100, 125}
	incomplete := []uint64{0, 1, 8, 11, 12, 13, 16, 17, 18, 19, 21, 28, 24, 1000003}

	for _, m := range complete {
		if !IsCompleteResidueModulus(m) {
			t.Errorf("IsCompleteResidueModulus(%d) = false, want true", m)
		}
	}
	for _, m := range incomplete {
		if IsCompleteResidueModulus(m) {
			t.Errorf("IsCompleteResidueModulus(%d) = true, want false", m)
		}
	}
}
