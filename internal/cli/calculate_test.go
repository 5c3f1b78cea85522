package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fibperiod/internal/config"
	"github.com/agbru/fibperiod/internal/ui"
)

func TestPrintSweepConfig(t *testing.T) {
	original := ui.GetCurrentTheme()
	defer ui.SetCurrentTheme(original)
	ui.SetCurrentTheme(ui.NoColorTheme)

	tests := []struct {
		name     string
		cfg      config.AppConfig
		contains []string
	}{
		{
			name: "defaults",
			cfg: config.AppConfig{
				RangeStart: 2, RangeEnd: 10, Workers: 4, PlotType: "plotly", Timeout: time.Minute,
			},
			contains: []string{"[2, 10) (8 moduli)", "timeout of 1m0s", "4 workers", "early-exit=off", "cache=on", "chart=plotly"},
		},
		{
			name: "no chart, verify",
			cfg: config.AppConfig{
				RangeStart: 2, RangeEnd: 1000, Workers: 1, Verify: true, NoCache: true, NoChart: true,
			},
			contains: []string{"(998 moduli)", "verify=on", "cache=off", "chart=off"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintSweepConfig(tt.cfg, &buf)
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}
