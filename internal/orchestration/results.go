package orchestration

import (
	"fmt"
	"slices"
	"sort"

	"gonum.org/v1/gonum/stat"

	apperrors "github.com/agbru/fibperiod/internal/errors"
	"github.com/agbru/fibperiod/internal/pisano"
)

// Range is the half-open modulus range [Start, End).
type Range struct {
	Start uint64
	End   uint64
}

// LoopCount returns the number of moduli in the range.
func (r Range) LoopCount() uint64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Validate checks that the range is non-empty and starts at 2 or above.
func (r Range) Validate() error {
	if r.Start < 2 {
		return apperrors.NewConfigError("range start must be >= 2 (got %d)", r.Start)
	}
	if r.End <= r.Start {
		return apperrors.NewConfigError("range end (%d) must be greater than range start (%d)", r.End, r.Start)
	}
	return nil
}

// String renders the range in interval notation.
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// ResultArrays holds the sweep output as four parallel arrays: the moduli
// and period lengths of the group covering every residue, and the same for
// the group that does not. After aggregation each group is sorted by modulus.
type ResultArrays struct {
	CoversX []uint64
	CoversY []uint64
	MissesX []uint64
	MissesY []uint64
}

// Covers returns the number of moduli whose period visits every residue.
func (a ResultArrays) Covers() int { return len(a.CoversX) }

// Misses returns the number of moduli whose period skips some residue.
func (a ResultArrays) Misses() int { return len(a.MissesX) }

// Total returns the number of analyzed moduli.
func (a ResultArrays) Total() int { return len(a.CoversX) + len(a.MissesX) }

// Add places a single analysis result into its group.
func (a *ResultArrays) Add(r pisano.Result) {
	if r.CoversAll {
		a.CoversX = append(a.CoversX, r.Modulus)
		a.CoversY = append(a.CoversY, r.Period)
		return
	}
	a.MissesX = append(a.MissesX, r.Modulus)
	a.MissesY = append(a.MissesY, r.Period)
}

// SortByModulus orders each group by ascending modulus, keeping the period
// arrays aligned.
func (a *ResultArrays) SortByModulus() {
	sort.Sort(pairSorter{x: a.CoversX, y: a.CoversY})
	sort.Sort(pairSorter{x: a.MissesX, y: a.MissesY})
}

// Validate checks that the x and y arrays of each group have equal length.
func (a ResultArrays) Validate() error {
	if len(a.CoversX) != len(a.CoversY) {
		return fmt.Errorf("covers group has %d moduli but %d periods", len(a.CoversX), len(a.CoversY))
	}
	if len(a.MissesX) != len(a.MissesY) {
		return fmt.Errorf("misses group has %d moduli but %d periods", len(a.MissesX), len(a.MissesY))
	}
	return nil
}

// Results flattens both groups back into per-modulus results ordered by modulus.
func (a ResultArrays) Results() []pisano.Result {
	out := make([]pisano.Result, 0, a.Total())
	for i := range a.CoversX {
		out = append(out, pisano.Result{CoversAll: true, Modulus: a.CoversX[i], Period: a.CoversY[i]})
	}
	for i := range a.MissesX {
		out = append(out, pisano.Result{Modulus: a.MissesX[i], Period: a.MissesY[i]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Modulus < out[j].Modulus })
	return out
}

type pairSorter struct {
	x, y []uint64
}

func (p pairSorter) Len() int           { return len(p.x) }
func (p pairSorter) Less(i, j int) bool { return p.x[i] < p.x[j] }
func (p pairSorter) Swap(i, j int) {
	p.x[i], p.x[j] = p.x[j], p.x[i]
	p.y[i], p.y[j] = p.y[j], p.y[i]
}

// GroupStats describes the period lengths of one group.
type GroupStats struct {
	Count        int
	MeanPeriod   float64
	StdDevPeriod float64
	MinPeriod    uint64
	MaxPeriod    uint64
}

// Summary is the headline statistic of a sweep.
type Summary struct {
	// Covers is the number of moduli covering every residue.
	Covers int
	// Misses is the number of moduli that do not.
	Misses int
	// Total is Covers + Misses.
	Total int
	// Fraction is (Covers+1)/(Total+1), a Laplace-smoothed ratio.
	Fraction float64
	// Percent is Fraction * 100.
	Percent float64
	// CoversStats and MissesStats describe the period lengths per group.
	CoversStats GroupStats
	MissesStats GroupStats
}

// Summarize computes counts, the smoothed fraction and per-group statistics.
//
// The fraction adds one to both numerator and denominator, so an empty
// result set reports 1/1 rather than dividing by zero.
func Summarize(a ResultArrays) Summary {
	covers, misses := a.Covers(), a.Misses()
	fraction := float64(covers+1) / float64(covers+misses+1)
	return Summary{
		Covers:      covers,
		Misses:      misses,
		Total:       covers + misses,
		Fraction:    fraction,
		Percent:     fraction * 100,
		CoversStats: groupStats(a.CoversY),
		MissesStats: groupStats(a.MissesY),
	}
}

func groupStats(periods []uint64) GroupStats {
	if len(periods) == 0 {
		return GroupStats{}
	}
	values := make([]float64, len(periods))
	for i, p := range periods {
		values[i] = float64(p)
	}
	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}
	return GroupStats{
		Count:        len(periods),
		MeanPeriod:   mean,
		StdDevPeriod: std,
		MinPeriod:    slices.Min(periods),
		MaxPeriod:    slices.Max(periods),
	}
}
