package ui

import "github.com/charmbracelet/lipgloss"

// SummaryStyles holds the lipgloss styles of the final summary block.
type SummaryStyles struct {
	Headline lipgloss.Style
	Label    lipgloss.Style
	Covers   lipgloss.Style
	Misses   lipgloss.Style
	Path     lipgloss.Style
}

// CurrentSummaryStyles returns styles matching the active theme. With colors
// disabled every style renders its input unchanged.
func CurrentSummaryStyles() SummaryStyles {
	if !ColorsEnabled() {
		plain := lipgloss.NewStyle()
		return SummaryStyles{Headline: plain, Label: plain, Covers: plain, Misses: plain, Path: plain}
	}
	return SummaryStyles{
		Headline: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9ece6a")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		Covers:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4488FF")),
		Misses:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347")),
		Path:     lipgloss.NewStyle().Underline(true),
	}
}
