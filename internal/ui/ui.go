// Package ui renders user-facing CLI output: banners, sections, module
// rows and tagged status lines. Color is disabled when stdout is not a
// terminal or NO_COLOR is set.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
	color            = detectColor(os.Stdout)
	st               = newStyles(out, color)
)

// SetWriter redirects all output to w (for testing). nil restores
// stdout and stderr.
func SetWriter(w io.Writer) {
	if w == nil {
		out, errOut = os.Stdout, os.Stderr
	} else {
		out, errOut = w, w
	}
	st = newStyles(out, color)
}

// --- Color detection ---

func detectColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetColorEnabled overrides color detection (for testing).
func SetColorEnabled(enabled bool) {
	color = enabled
	st = newStyles(out, color)
}

// ColorEnabled reports whether color output is enabled.
func ColorEnabled() bool {
	return color
}

// --- Styles ---

var (
	brandPrimary = lipgloss.Color("5") // magenta
	brandAccent  = lipgloss.Color("6") // cyan
	brandSuccess = lipgloss.Color("2")
	brandWarning = lipgloss.Color("3")
	brandError   = lipgloss.Color("1")
	brandMuted   = lipgloss.Color("8")
)

type styles struct {
	bold    lipgloss.Style
	primary lipgloss.Style
	accent  lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style

	box lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return styles{
		bold:    r.NewStyle().Bold(true),
		primary: r.NewStyle().Foreground(brandPrimary),
		accent:  r.NewStyle().Foreground(brandAccent),
		success: r.NewStyle().Foreground(brandSuccess),
		warning: r.NewStyle().Foreground(brandWarning),
		err:     r.NewStyle().Foreground(brandError),
		muted:   r.NewStyle().Foreground(brandMuted),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			Width(33).
			MarginLeft(2),
	}
}

// Bold returns s in bold.
func Bold(s string) string { return st.bold.Render(s) }

// Highlight returns s in the accent color.
func Highlight(s string) string { return st.accent.Render(s) }

// Muted returns s dimmed.
func Muted(s string) string { return st.muted.Render(s) }

// --- Tagged messages ---

// Info prints an informational line.
func Info(msg string) {
	fmt.Fprintln(out, st.accent.Render("›"), msg)
}

// Infof prints a formatted informational line.
func Infof(format string, args ...any) {
	Info(fmt.Sprintf(format, args...))
}

// OK prints a success line.
func OK(msg string) {
	fmt.Fprintln(out, st.success.Render("✓"), msg)
}

// OKf prints a formatted success line.
func OKf(format string, args ...any) {
	OK(fmt.Sprintf(format, args...))
}

// Warn prints a warning line.
func Warn(msg string) {
	fmt.Fprintln(out, st.warning.Render("⚠"), msg)
}

// Warnf prints a formatted warning line.
func Warnf(format string, args ...any) {
	Warn(fmt.Sprintf(format, args...))
}

// Error prints an error line to stderr.
func Error(msg string) {
	fmt.Fprintln(errOut, st.err.Render("✗"), msg)
}

// Errorf prints a formatted error line to stderr.
func Errorf(format string, args ...any) {
	Error(fmt.Sprintf(format, args...))
}

// Dim prints a muted line.
func Dim(msg string) {
	fmt.Fprintln(out, st.muted.Render(msg))
}

// Newline prints an empty line.
func Newline() {
	fmt.Fprintln(out)
}
