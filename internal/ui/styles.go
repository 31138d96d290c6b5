package ui

import (
	"fmt"
	"strings"
)

// ANSI256 color codes matching the Ayu palette.
const (
	colorAccent = 74  // blue
	colorCmd    = 250 // light gray
	colorMuted  = 245 // medium gray
	colorOK     = 114 // green
	colorWarn   = 179 // amber
	colorFail   = 203 // red
)

var noColor bool

func paint(code int, s string) string {
	if noColor || s == "" {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string { return paint(colorAccent, s) }

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string { return paint(colorMuted, s) }

// RenderCommand returns s styled as a command name (light gray).
func RenderCommand(s string) string { return paint(colorCmd, s) }

// RenderError returns s in the failure color.
func RenderError(s string) string { return paint(colorFail, s) }

// RenderHeader returns s in bold accent, for table headers.
func RenderHeader(s string) string {
	if noColor || s == "" {
		return s
	}
	return fmt.Sprintf("\x1b[1;38;5;%dm%s\x1b[0m", colorAccent, s)
}

// RenderStatus colors a status value by meaning: settled-good values
// green, waiting values amber, failures red and inactive values gray.
// Unknown values are returned unchanged.
func RenderStatus(s string) string {
	switch strings.ToUpper(s) {
	case "APPROVED", "ACTIVE", "HEALTHY", "OK":
		return paint(colorOK, s)
	case "PENDING", "RECOVERING":
		return paint(colorWarn, s)
	case "REJECTED", "SICK", "QUARANTINE", "ERROR":
		return paint(colorFail, s)
	case "CANCELLED", "INACTIVE":
		return paint(colorMuted, s)
	}
	return s
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
