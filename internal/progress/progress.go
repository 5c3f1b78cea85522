// Package progress defines the progress messages exchanged between the sweep
// coordinator and whatever is displaying it.
package progress

// ProgressUpdate reports how many moduli of a sweep have been analyzed.
type ProgressUpdate struct {
	// Completed is the number of analyses finished so far.
	Completed uint64
	// Total is the number of moduli in the sweep.
	Total uint64
}

// Value returns the completed fraction in [0, 1]. An empty sweep is complete.
func (u ProgressUpdate) Value() float64 {
	if u.Total == 0 {
		return 1.0
	}
	if u.Completed >= u.Total {
		return 1.0
	}
	return float64(u.Completed) / float64(u.Total)
}

// Done reports whether the update marks the end of the sweep.
func (u ProgressUpdate) Done() bool {
	return u.Completed >= u.Total
}
