// Package style provides shared colors, icons and lipgloss styles for terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
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
)

// Report holds the styles used by the duplicate report table.
type Report struct {
	Header      lipgloss.Style
	Cell        lipgloss.Style
	Recommended lipgloss.Style
	Missing     lipgloss.Style
	Border      lipgloss.Style
	Footer      lipgloss.Style
}

// NewReport builds the report styles for the given renderer.
func NewReport(r *lipgloss.Renderer) Report {
	cell := r.NewStyle().Padding(0, 1)
	return Report{
		Header:      cell.Bold(true).Foreground(Iris),
		Cell:        cell,
		Recommended: cell.Foreground(Green),
		Missing:     cell.Foreground(Yellow),
		Border:      r.NewStyle().Foreground(Slate),
		Footer:      r.NewStyle().Foreground(Slate),
	}
}
