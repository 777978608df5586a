// Package style holds the colors and icons shared by every renderer.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent = lipgloss.Color("#3B82F6")
	Muted  = lipgloss.Color("#6B7280")
	White  = lipgloss.Color("#FFFFFF")
	Green  = lipgloss.Color("#16A34A")
	Red    = lipgloss.Color("#DC2626")
	Yellow = lipgloss.Color("#D97706")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Package = "▪"
)
