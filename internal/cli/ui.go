package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/holocron/pkg/explorer"
)

// stdout receives command output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for fatal errors.
	StyleError = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	stylePrompt  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func successLine(msg string) string { return styleIconSuccess.Render(iconSuccess) + " " + msg }
func errorLine(msg string) string   { return styleIconError.Render(iconError) + " " + msg }
func infoLine(msg string) string    { return styleIconInfo.Render(iconInfo) + " " + msg }

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, successLine(fmt.Sprintf(format, args...)))
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Fprintln(stdout, errorLine(fmt.Sprintf(format, args...)))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, infoLine(fmt.Sprintf(format, args...)))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(stdout, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Search Results
// =============================================================================

// formatResult renders a search result: the matched name as a title and the
// related names as a table. A result without names gets a dim note instead.
func formatResult(res *explorer.Result, related string) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(res.Message))
	b.WriteByte('\n')
	if len(res.Names) == 0 {
		b.WriteString(StyleDim.Render("  no related " + related))
		return b.String()
	}
	b.WriteString(namesTable(res.Names, related))
	return b.String()
}

// namesTable renders names as a single-column table with a row number.
func namesTable(names []string, header string) string {
	rows := make([][]string, len(names))
	for i, n := range names {
		rows[i] = []string{fmt.Sprint(i + 1), n}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleTitle.Padding(0, 1)
			}
			if col == 0 {
				return StyleNumber.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		}).
		Headers("#", header).
		Rows(rows...).
		String()
}
