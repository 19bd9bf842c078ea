package ui

import "time"

// Layout and refresh constants.
const (
	// sidebarWidth is the width of the server list including its border.
	sidebarWidth = 32

	// LayoutCompactWidth is the threshold below which the header drops
	// secondary fields.
	LayoutCompactWidth = 100

	// logTailLines is how many log lines the log view keeps.
	logTailLines = 2000

	// DefaultUIInterval is the default snapshot refresh interval.
	DefaultUIInterval = time.Second
)
