package main

import (
	"fmt"
	"strings"
)

// statusOverlay collects the per-frame status lines shown in the window
// title and the periodic console log.
type statusOverlay struct {
	lines []string
	fps   int
}

func (so *statusOverlay) AddLine(format string, args ...interface{}) {
	so.lines = append(so.lines, fmt.Sprintf(format, args...))
}

func (so *statusOverlay) Clear() {
	so.lines = so.lines[:0]
}

// Title joins the lines into a single window-title string.
func (so *statusOverlay) Title() string {
	return strings.Join(so.lines, " | ")
}
