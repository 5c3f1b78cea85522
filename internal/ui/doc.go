// Package ui provides theme and color support for the console output of
// fibperiod. It defines ANSI color schemes, the accessor functions used by
// the CLI layer, and lipgloss styles for the summary headline.
//
// Colors are disabled by --no-color or by the NO_COLOR environment variable.
package ui
