package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fibperiod/internal/config"
	"github.com/agbru/fibperiod/internal/ui"
)

// PrintSweepConfig displays the sweep about to run: the modulus range, the
// worker count, the walk options and where results go.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintSweepConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Sweep Configuration ---\n")
	fmt.Fprintf(out, "Analyzing moduli %s[%d, %d)%s (%d moduli) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.RangeStart, cfg.RangeEnd, ui.ColorReset(), cfg.LoopCount(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s workers on %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(),
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Options: early-exit=%s, verify=%s, cache=%s, chart=%s.\n",
		onOff(cfg.EarlyExit), onOff(cfg.Verify), onOff(!cfg.NoCache), chartMode(cfg))
	fmt.Fprintf(out, "\n--- Starting Sweep ---\n")
}

func onOff(b bool) string {
	if b {
		return ui.ColorGreen() + "on" + ui.ColorReset()
	}
	return ui.ColorCyan() + "off" + ui.ColorReset()
}

func chartMode(cfg config.AppConfig) string {
	if cfg.NoChart {
		return onOff(false)
	}
	return ui.ColorGreen() + cfg.PlotType + ui.ColorReset()
}
