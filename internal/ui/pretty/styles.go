// Package pretty renders styled terminal output with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const defaultTermWidth = 100

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles holds the styles used by the CLI.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	FilePath lipgloss.Style
	Arrow    lipgloss.Style
	Count    lipgloss.Style

	Marker         lipgloss.Style
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when color is off.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			Error:          plain,
			Warning:        plain,
			Success:        plain,
			FilePath:       plain,
			Arrow:          plain,
			Count:          plain,
			Marker:         plain,
			TableHeader:    plain,
			TableSeparator: plain,
			Dim:            plain,
			Bold:           plain,
		}
	}

	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true),
		Arrow:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Count:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),

		Marker:         lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// IsColorEnabled resolves a color mode for writer. In auto mode color is
// used only on a terminal and only when NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the width of writer's terminal, or a default.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // fd fits in int
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
