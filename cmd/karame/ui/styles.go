package ui

import "github.com/charmbracelet/lipgloss"

// Palette borrows the sea and sand colours of the village brand.
var (
	colorSea    = lipgloss.Color("#0E7490")
	colorSand   = lipgloss.Color("#F59E0B")
	colorMuted  = lipgloss.Color("#6B7280")
	colorBubble = lipgloss.Color("#ECFEFF")
)

// Styles groups every lipgloss style used by the client.
type Styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	UserBubble lipgloss.Style
	BotLabel   lipgloss.Style
	IntroCard  lipgloss.Style
	Suggestion lipgloss.Style
	Key        lipgloss.Style
	Status     lipgloss.Style
	Section    lipgloss.Style
	Muted      lipgloss.Style
	Spinner    lipgloss.Style
}

// DefaultStyles returns the client's styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorSea).Padding(0, 1),
		Subtitle: lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		UserBubble: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0F172A")).
			Background(colorBubble).
			Padding(0, 1),
		BotLabel: lipgloss.NewStyle().Bold(true).Foreground(colorSea),
		IntroCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSand).
			Padding(0, 1),
		Suggestion: lipgloss.NewStyle().Foreground(colorSea),
		Key:        lipgloss.NewStyle().Bold(true).Foreground(colorSand),
		Status:     lipgloss.NewStyle().Foreground(colorMuted),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(colorSand).MarginTop(1),
		Muted:      lipgloss.NewStyle().Foreground(colorMuted),
		Spinner:    lipgloss.NewStyle().Foreground(colorSand),
	}
}
