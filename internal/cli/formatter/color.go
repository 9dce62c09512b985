package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ymorita/questboard/internal/domain"
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

// StatusStyle returns the lipgloss style for a quest status.
func StatusStyle(status domain.QuestStatus) lipgloss.Style {
	switch status {
	case domain.StatusBacklog:
		return StyleDim
	case domain.StatusInProgress:
		return StyleBlue
	case domain.StatusReview:
		return StyleYellow
	case domain.StatusDone:
		return StyleGreen
	default:
		return StyleFg
	}
}

// StatusBadge returns a colored status indicator such as "● In Progress".
func StatusBadge(status domain.QuestStatus) string {
	return StatusStyle(status).Render("● " + string(status))
}

// PriorityStars renders a 1-5 priority as filled and empty stars, colored by
// urgency.
func PriorityStars(priority int) string {
	if priority < 1 {
		priority = 1
	}
	if priority > 5 {
		priority = 5
	}
	stars := strings.Repeat("★", priority) + strings.Repeat("☆", 5-priority)
	switch {
	case priority >= 4:
		return StyleRed.Render(stars)
	case priority == 3:
		return StyleYellow.Render(stars)
	default:
		return StyleDim.Render(stars)
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
