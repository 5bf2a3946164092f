package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/charmbracelet/lipgloss"
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

// ProvenanceBadge labels where an activity definition comes from.
func ProvenanceBadge(p domain.Provenance) string {
	switch p {
	case domain.ProvenanceBuiltin:
		return StyleBlue.Render("● built-in")
	case domain.ProvenanceCustom:
		return StylePurple.Render("◆ custom")
	default:
		return StyleDim.Render(string(p))
	}
}

// LevelBadge renders a level number as "LV 3".
func LevelBadge(level int) string {
	return StyleHeader.Render(fmt.Sprintf("LV %d", level))
}

// XPGain renders a gain like "+50 XP".
func XPGain(xp int) string {
	return StyleGreen.Render(fmt.Sprintf("+%d XP", xp))
}

// Header renders an uppercased section header over a dim rule.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
