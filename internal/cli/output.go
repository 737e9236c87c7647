package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/docker/go-units"
)

// Output styles
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5fd75f"})
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#af8700", Dark: "#ffd75f"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#d70000", Dark: "#ff5f5f"}).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5f00af", Dark: "#af87ff"}).Bold(true)
	nameStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#8a8a8a"})
)

// Output formatting helpers

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintln(stdout, msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", successStyle.Render("✓"), msg)
}

// printWarning prints a warning message
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stderr, "%s %s\n", warningStyle.Render("⚠"), msg)
}

// printErrorMsg prints an error message (different from printError which takes error type)
func printErrorMsg(msg string) {
	fmt.Fprintf(stderr, "%s %s\n", errorStyle.Render("✗"), msg)
}

// printHeader prints a section header
func printHeader(title string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "\n%s\n", headerStyle.Render("=== "+title+" ==="))
}

// formatBytes formats bytes as human-readable string. Negative sizes are unknown.
func formatBytes(bytes int64) string {
	if bytes < 0 {
		return "-"
	}
	return units.HumanSize(float64(bytes))
}
