package ui

import (
	"strings"
	"testing"
)

// Theme state is global; these tests run sequentially and restore it.

func TestSetTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"unknown", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) -> %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitTheme_NoColorFlag(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	InitTheme(true)
	if ColorsEnabled() {
		t.Error("colors should be disabled by the no-color flag")
	}
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("color accessors should return empty strings when disabled")
	}
}

func TestInitTheme_NoColorEnv(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if ColorsEnabled() {
		t.Error("colors should be disabled when NO_COLOR is set")
	}
}

func TestColorAccessors(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetCurrentTheme(DarkTheme)
	for name, fn := range map[string]func() string{
		"reset": ColorReset, "red": ColorRed, "green": ColorGreen, "yellow": ColorYellow,
		"blue": ColorBlue, "magenta": ColorMagenta, "cyan": ColorCyan, "bold": ColorBold,
		"underline": ColorUnderline,
	} {
		if !strings.HasPrefix(fn(), "\033[") {
			t.Errorf("%s should be an ANSI escape code, got %q", name, fn())
		}
	}
}

func TestSummaryStylesPlainWhenDisabled(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetCurrentTheme(NoColorTheme)
	s := CurrentSummaryStyles()
	if got := s.Headline.Render("7/9 = 77.78%"); got != "7/9 = 77.78%" {
		t.Errorf("plain headline = %q", got)
	}
}
