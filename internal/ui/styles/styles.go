// Package styles provides shared lipgloss styles for gittem output.
//
// Styles always render full ANSI sequences. Writers returned by [Writer]
// downsample or strip them to whatever the destination supports, so callers
// never check for a terminal themselves.
package styles

import (
	"fmt"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
)

// Color modes accepted by the [log] color setting.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Palette
var (
	Primary = lipgloss.Color("62")  // cyan/teal
	Success = lipgloss.Color("82")  // green
	Error   = lipgloss.Color("196") // red
	Warning = lipgloss.Color("214") // orange
	Muted   = lipgloss.Color("240") // dark gray
)

var (
	// BannerStyle marks the start of work on one repository.
	BannerStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	// StepStyle is used for the "--- git ..." step headers.
	StepStyle = lipgloss.NewStyle().Foreground(Muted)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
)

// ValidColorMode reports whether mode is one of the supported color modes.
// The empty string is accepted and means auto.
func ValidColorMode(mode string) bool {
	switch mode {
	case "", ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

// Writer wraps w so that styled text is adapted to the output.
// In auto mode the profile is detected from w and the environment
// (respecting NO_COLOR); always forces true color, never strips all styling.
func Writer(w io.Writer, mode string) io.Writer {
	cw := colorprofile.NewWriter(w, os.Environ())
	switch mode {
	case ColorAlways:
		cw.Profile = colorprofile.TrueColor
	case ColorNever:
		cw.Profile = colorprofile.NoTTY
	}
	return cw
}

// Banner renders the per-repository header used by batch operations.
func Banner(path string) string {
	return BannerStyle.Render(fmt.Sprintf("#######   %s   ########", path))
}

// Step renders a step header such as "--- git pull".
func Step(command string) string {
	return StepStyle.Render("--- " + command)
}
