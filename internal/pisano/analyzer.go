package pisano

import (
	apperrors "github.com/agbru/fibperiod/internal/errors"
)

// Result is the outcome of analyzing a single modulus.
type Result struct {
	// CoversAll is true when the period visits every residue in [0, m).
	CoversAll bool
	// Modulus is the analyzed modulus m.
	Modulus uint64
	// Period is the number of steps taken before the sequence returned to
	// (0, 1). With early exit enabled it is the number of steps taken when
	// the last residue was observed instead.
	Period uint64
}

// StepObserver is notified after every step of the walk with the step count
// and the number of residues still unobserved.
type StepObserver func(step, remaining uint64)

// Options tunes a single analysis.
type Options struct {
	// EarlyExit stops the walk as soon as every residue has been observed.
	// The reported period is then a lower bound, not the Pisano period.
	EarlyExit bool
	// Observer, if set, is called after each step.
	Observer StepObserver
}

// Analyze walks the Fibonacci sequence modulo m from (0, 1) until it returns
// to (0, 1), removing each newly produced value from the residue set.
//
// Parameters:
//   - modulus: The modulus m. Must be at least 2.
//
// Returns:
//   - Result: The period length and whether every residue appeared.
//   - error: An InvalidInputError if modulus < 2.
func Analyze(modulus uint64) (Result, error) {
	return AnalyzeWithOptions(modulus, Options{})
}

// AnalyzeWithOptions is Analyze with early exit and step observation.
func AnalyzeWithOptions(modulus uint64, opts Options) (Result, error) {
	if modulus < 2 {
		return Result{}, apperrors.InvalidInputError{Modulus: modulus, Reason: "modulus must be >= 2"}
	}

	residues := NewResidueSet(modulus)
	var (
		prev, curr uint64 = 0, 1
		period     uint64
	)

	for {
		prev, curr = curr, addMod(prev, curr, modulus)
		period++
		residues.Remove(curr)

		if opts.Observer != nil {
			opts.Observer(period, residues.Remaining())
		}
		if prev == 0 && curr == 1 {
			break
		}
		if opts.EarlyExit && residues.Empty() {
			break
		}
	}

	return Result{
		CoversAll: residues.Empty(),
		Modulus:   modulus,
		Period:    period,
	}, nil
}

// Walker is a reusable analyzer carrying fixed Options. Its zero value runs
// the full-period walk.
type Walker struct {
	Options Options
}

// NewWalker returns a Walker with the given early exit setting.
func NewWalker(earlyExit bool) *Walker {
	return &Walker{Options: Options{EarlyExit: earlyExit}}
}

// Analyze runs AnalyzeWithOptions with the walker's options.
func (w *Walker) Analyze(modulus uint64) (Result, error) {
	return AnalyzeWithOptions(modulus, w.Options)
}
