// Package colors provides terminal color support for treeforge output.
//
// This package provides:
// - ANSI color codes for terminal output
// - Functions to colorize text based on node outcome
// - Automatic color detection and fallback for non-color terminals
package colors

import (
	"os"
	"runtime"
	"strings"
)

// ANSI color codes
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
)

// colorEnabled determines if color output should be used
var colorEnabled = shouldUseColor()

// shouldUseColor determines if the terminal supports colors
func shouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	if runtime.GOOS == "windows" {
		term := strings.ToLower(os.Getenv("TERM"))
		wt := os.Getenv("WT_SESSION")
		vscode := os.Getenv("VSCODE_PID")
		if wt != "" || vscode != "" || strings.Contains(term, "color") || strings.Contains(term, "xterm") {
			return true
		}
		return false
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if term == "dumb" || term == "" {
		return false
	}

	if fileInfo, err := os.Stdout.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) != 0
	}
	return true
}

// SetColorEnabled allows manual control of color output
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// IsColorEnabled returns whether colors are currently enabled
func IsColorEnabled() bool {
	return colorEnabled
}

// colorize applies color to text if colors are enabled
func colorize(text, color string) string {
	if !colorEnabled {
		return text
	}
	return color + text + ColorReset
}

// Outcome-based coloring

func Created(text string) string {
	return colorize(text, BrightGreen)
}

func Skipped(text string) string {
	return colorize(text, ColorGray)
}

func Failed(text string) string {
	return colorize(text, BrightRed)
}

func Warning(text string) string {
	return colorize(text, BrightYellow)
}

// Generic color functions

func Red(text string) string {
	return colorize(text, BrightRed)
}

func Green(text string) string {
	return colorize(text, BrightGreen)
}

func Gray(text string) string {
	return colorize(text, ColorGray)
}

func Bold(text string) string {
	return colorize(text, ColorBold)
}

func Dim(text string) string {
	return colorize(text, ColorDim)
}
