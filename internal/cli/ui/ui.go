// Package ui provides the SMSGrab CLI design system: styles, colors,
// symbols, and terminal detection. All CLI visual output should use
// these definitions for consistency.
package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Brand

// BrandEmoji is the SMSGrab brand logo.
const BrandEmoji = "\U0001F4F1" // 📱

// Colors — ANSI 4-bit for maximum terminal compatibility.
// lipgloss/termenv handles degradation automatically.
var (
	ColorCyan   = lipgloss.Color("6")
	ColorGreen  = lipgloss.Color("2")
	ColorYellow = lipgloss.Color("3")
	ColorRed    = lipgloss.Color("1")
	ColorBlue   = lipgloss.Color("4")
)

// Semantic styles — the design system.
var (
	StyleBold     = lipgloss.NewStyle().Bold(true)
	StyleDim      = lipgloss.NewStyle().Faint(true)
	StyleGreen    = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow   = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed      = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue     = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleBoldCyan = lipgloss.NewStyle().Bold(true).Foreground(ColorCyan)
	StyleBoldRed  = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)

	// Status
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleError   = lipgloss.NewStyle().Foreground(ColorRed)

	// Banner and prompts
	StyleBrandHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorCyan)
	StyleHint        = lipgloss.NewStyle().Faint(true)

	// Order boxes
	StyleBoxWaiting = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorYellow).
			Padding(0, 1)
	StyleBoxReady = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGreen).
			Padding(0, 1)
	StyleBanner = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorCyan).
			Padding(1, 2)
)

// Unicode status symbols — reliable across modern terminals.
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolArrow   = "→"
)

// Forced-ANSI renderer — used where the caller already decided
// color=true. The default renderer auto-detects the terminal and strips
// ANSI in non-TTY (e.g., tests), but these helpers need to
// unconditionally produce escape codes when asked.
var (
	forcedRenderer     *lipgloss.Renderer
	forcedRendererOnce sync.Once
)

// ForcedRenderer returns a lipgloss renderer that always produces ANSI
// output, regardless of terminal detection.
func ForcedRenderer() *lipgloss.Renderer {
	forcedRendererOnce.Do(func() {
		forcedRenderer = lipgloss.NewRenderer(os.Stderr)
		forcedRenderer.SetColorProfile(termenv.ANSI)
	})
	return forcedRenderer
}

// ColorEnabled returns whether stdout is a TTY that supports color.
// Respects NO_COLOR (https://no-color.org/).
func ColorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
