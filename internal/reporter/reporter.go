// Package reporter prints status lines and tables for the CLI.
package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// NoColor disables styled output.
var NoColor = false

// Out receives every line. Tests swap it for a buffer.
var Out io.Writer = os.Stderr

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#38BDF8")).Bold(true)
)

func paint(style lipgloss.Style, s string) string {
	if NoColor {
		return s
	}
	return style.Render(s)
}

// Ok prints a green check message.
func Ok(msg string) {
	fmt.Fprintf(Out, "  %s %s\n", paint(okStyle, "✓"), msg)
}

// Info prints an info line.
func Info(msg string) {
	fmt.Fprintln(Out, msg)
}

// Warn prints a yellow warning.
func Warn(msg string) {
	fmt.Fprintf(Out, "  %s %s\n", paint(warnStyle, "⚠"), msg)
}

// Err prints a red error.
func Err(msg string) {
	fmt.Fprintf(Out, "  %s %s\n", paint(errStyle, "✗"), msg)
}

// Table prints rows as an ASCII table under the given column headers.
// Cells wider than 40 characters are truncated.
func Table(columns []string, rows [][]string) {
	if len(columns) == 0 {
		return
	}
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = lipgloss.Width(col)
	}
	for _, row := range rows {
		for i := range columns {
			if w := lipgloss.Width(cell(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	sep := "+"
	for _, w := range widths {
		sep += strings.Repeat("-", w+2) + "+"
	}
	fmt.Fprintln(Out, sep)
	header := "|"
	for i, col := range columns {
		header += " " + paint(headerStyle, pad(col, widths[i])) + " |"
	}
	fmt.Fprintln(Out, header)
	fmt.Fprintln(Out, sep)
	for _, row := range rows {
		line := "|"
		for i := range columns {
			line += " " + pad(cell(row, i), widths[i]) + " |"
		}
		fmt.Fprintln(Out, line)
	}
	fmt.Fprintln(Out, sep)
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	s := row[i]
	if r := []rune(s); len(r) > 40 {
		return string(r[:37]) + "..."
	}
	return s
}

func pad(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
