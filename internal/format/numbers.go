package format

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatCount renders an unsigned count with thousands separators.
func FormatCount(n uint64) string {
	if n > math.MaxInt64 {
		return humanize.Comma(math.MaxInt64)
	}
	return humanize.Comma(int64(n))
}

// FormatPercent renders a fraction in [0, 1] as a percentage with the given
// number of decimals.
func FormatPercent(fraction float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, fraction*100)
}

// FormatBytes renders a byte count in IEC units ("1.5 MiB").
func FormatBytes(b uint64) string {
	return humanize.IBytes(b)
}
