package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/counsel/internal/domain"
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

// StandingIndicator returns a colored standing label such as "● ON TRACK".
func StandingIndicator(status domain.OnTrackStatus) string {
	switch status {
	case domain.OnTrack:
		return StyleGreen.Render("● ON TRACK")
	case domain.OffTrack:
		return StyleRed.Render("● OFF TRACK")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// PriorityPill renders a topic priority.
func PriorityPill(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("▲ high")
	case domain.PriorityMedium:
		return StyleYellow.Render("● medium")
	case domain.PriorityLow:
		return StyleBlue.Render("▽ low")
	default:
		return StyleDim.Render(string(p))
	}
}

// CategoryBadge renders a topic category as a purple label.
func CategoryBadge(c domain.TopicCategory) string {
	if c == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(strings.ReplaceAll(string(c), "_", " "))
}

// MeetingStatusPill renders a meeting lifecycle state.
func MeetingStatusPill(s domain.MeetingStatus) string {
	switch s {
	case domain.MeetingScheduled:
		return StyleBlue.Render("○ Scheduled")
	case domain.MeetingCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.MeetingCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(s))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len([]rune(upper)))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
