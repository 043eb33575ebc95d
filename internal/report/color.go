// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package report

import "github.com/fatih/color"

// Shared color printers for CLI output.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
)

// ColorSeverity colors analysis severity labels.
func ColorSeverity(val string) string {
	switch val {
	case "error":
		return colorRed.Sprint(val)
	case "warning":
		return colorYellow.Sprint(val)
	case "info":
		return colorGreen.Sprint(val)
	default:
		return val
	}
}

// ColorStatus colors connection and operation status labels.
func ColorStatus(val string) string {
	switch val {
	case "connected", "ok", "up to date":
		return colorGreen.Sprint(val)
	case "unreachable", "failed", "incompatible":
		return colorRed.Sprint(val)
	case "stale", "unknown":
		return colorYellow.Sprint(val)
	default:
		return val
	}
}

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}
