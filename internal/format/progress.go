package format

import (
	"fmt"
	"strings"
	"time"
)

const (
	// etaSmoothing is the weight of the newest rate sample in the
	// exponential moving average used for ETA estimation.
	etaSmoothing = 0.3
	// maxETA caps the displayed estimate; slower rates print as this value.
	maxETA = 24 * time.Hour
)

// ProgressWithETA tracks the completion fraction of a sweep together with a
// smoothed completion rate, from which it derives an estimated time remaining.
// It is not safe for concurrent use; the progress display goroutine owns it.
type ProgressWithETA struct {
	progress     float64
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // fraction per second
}

// NewProgressWithETA creates a tracker starting at zero progress.
func NewProgressWithETA() *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{startTime: now, lastUpdate: now}
}

// Update records a completion fraction, clamped to [0, 1].
func (p *ProgressWithETA) Update(value float64) {
	p.progress = clamp01(value)
}

// Progress returns the last recorded completion fraction.
func (p *ProgressWithETA) Progress() float64 {
	return p.progress
}

// Elapsed returns the time since the tracker was created.
func (p *ProgressWithETA) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

// UpdateWithETA records a completion fraction, refreshes the smoothed rate and
// returns the new progress together with the current ETA.
func (p *ProgressWithETA) UpdateWithETA(value float64) (float64, time.Duration) {
	p.Update(value)
	now := time.Now()
	dt := now.Sub(p.lastUpdate).Seconds()
	if dt > 0 && p.progress > p.lastProgress {
		instant := (p.progress - p.lastProgress) / dt
		if p.progressRate == 0 {
			p.progressRate = instant
		} else {
			p.progressRate = etaSmoothing*instant + (1-etaSmoothing)*p.progressRate
		}
		p.lastUpdate = now
		p.lastProgress = p.progress
	}
	return p.progress, p.GetETA()
}

// GetETA returns the estimated time remaining, or 0 while no rate is known.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 || p.progress <= 0 {
		return 0
	}
	if p.progress >= 1 {
		return 0
	}
	seconds := (1 - p.progress) / p.progressRate
	eta := time.Duration(seconds * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// FormatETA renders an ETA compactly ("45s", "2m30s", "1h15m").
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(eta.Hours())
		m := int(eta.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// FormatProgressBarWithETA renders "[bar] 42.00% ETA: 1m5s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	progress = clamp01(progress)
	etaStr := FormatETA(eta)
	if progress >= 1 {
		etaStr = "done"
	}
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", ProgressBar(progress, width), progress*100, etaStr)
}

// ProgressBar generates a textual progress bar of the given width.
func ProgressBar(progress float64, length int) string {
	progress = clamp01(progress)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

func clamp01(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < 0.0 {
		return 0.0
	}
	return v
}
