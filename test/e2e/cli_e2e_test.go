package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the binary and runs it against a scratch directory.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	tmpDir := t.TempDir()
	binName := "fibperiod"
	if runtime.GOOS == "windows" {
		binName = "fibperiod.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs with the package directory as CWD; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/fibperiod")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build fibperiod: %v", err)
	}

	dataDir := filepath.Join(tmpDir, "data")
	figuresDir := filepath.Join(tmpDir, "figures")
	common := []string{"--data-dir", dataDir, "--figures-dir", figuresDir}

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Default Range",
			args:     common,
			wantOut:  "8/9 = 88.89% of the moduli contain every remainder.",
			wantCode: 0,
		},
		{
			name:     "Cached Verbose",
			args:     append([]string{"-v"}, common...),
			wantOut:  "loaded from cache",
			wantCode: 0,
		},
		{
			name:     "Quiet Larger Range",
			args:     append([]string{"-q", "--end", "1000", "--no-chart"}, common...),
			wantOut:  "of the moduli contain every remainder.",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Invalid Range",
			args:     []string{"--start", "1"},
			wantOut:  "range start",
			wantCode: 4,
		},
		{
			name:     "Unknown Plot",
			args:     []string{"--plot", "bokeh"},
			wantOut:  "plot type",
			wantCode: 4,
		},
		{
			name:     "Very Short Timeout",
			args:     append([]string{"-q", "--start", "2", "--end", "2000000", "--no-cache", "--no-chart", "--timeout", "1ms"}, common...),
			wantOut:  "",
			wantCode: 2,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "fibperiod",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			gotCode := 0
			if exitErr, ok := err.(*exec.ExitError); ok {
				gotCode = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("Command did not run: %v", err)
			}
			if gotCode != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", gotCode, tt.wantCode, outStr)
			}

			if tt.wantOut != "" && !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(figuresDir, "fibonacci_periods_8.html")); err != nil {
		t.Errorf("chart not written: %v", err)
	}
}
