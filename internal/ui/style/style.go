// Package style provides the shared colors and icons of the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
	Back    = "←"
)

// Styles are the text styles of the CLI bound to one renderer.
type Styles struct {
	Heading lipgloss.Style
	Project lipgloss.Style
	Package lipgloss.Style
	Dim     lipgloss.Style
	Dev     lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles creates the styles for output going through r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Heading: r.NewStyle().Bold(true).Foreground(Iris),
		Project: r.NewStyle().Foreground(Iris),
		Package: r.NewStyle().Foreground(Green),
		Dim:     r.NewStyle().Foreground(Slate),
		Dev:     r.NewStyle().Foreground(Yellow),
		Error:   r.NewStyle().Foreground(Red),
	}
}
