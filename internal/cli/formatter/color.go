package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/gantry/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityLabel returns the priority rendered in its color.
func PriorityLabel(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render(string(p))
	case domain.PriorityMedium:
		return StyleYellow.Render(string(p))
	case domain.PriorityLow:
		return StyleGreen.Render(string(p))
	default:
		return StyleDim.Render(string(p))
	}
}

// SprintStatusIndicator returns a colored status string such as "● active".
func SprintStatusIndicator(s domain.SprintStatus) string {
	switch s {
	case domain.SprintActive:
		return StyleGreen.Render("● active")
	case domain.SprintCompleted:
		return StyleBlue.Render("● completed")
	case domain.SprintPlanned:
		return StyleYellow.Render("● planned")
	default:
		return StyleDim.Render("● unknown")
	}
}

// TypeLabel returns the item type rendered in its color.
func TypeLabel(t domain.ItemType) string {
	switch t {
	case domain.TypeBug:
		return StyleRed.Render(string(t))
	case domain.TypeFeature:
		return StylePurple.Render(string(t))
	default:
		return StyleFg.Render(string(t))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
