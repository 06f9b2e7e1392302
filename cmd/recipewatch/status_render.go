package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/text"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusError
)

const statusLabelWidth = 20

var statusStyles = map[statusKind]struct {
	label  string
	colors text.Colors
}{
	statusInfo:  {"INFO", text.Colors{text.FgBlue}},
	statusOK:    {"OK", text.Colors{text.FgGreen}},
	statusError: {"ERROR", text.Colors{text.FgRed, text.Bold}},
}

// renderStatusLine formats "  Label:   [KIND] message", colored when the
// destination is a terminal.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style, ok := statusStyles[kind]
	if !ok {
		style = statusStyles[statusInfo]
	}
	status := "[" + style.label + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", status)
	if colorize {
		return style.colors.Sprint(line)
	}
	return line
}
