package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#3B82F6") // Blue
	ColorAccent    = lipgloss.Color("#10B981") // Green

	// Status colors
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorInfo    = lipgloss.Color("#3B82F6") // Blue

	// UI colors
	ColorBorder      = lipgloss.Color("#6B7280") // Gray
	ColorBorderLight = lipgloss.Color("#9CA3AF") // Light gray
	ColorBackground  = lipgloss.Color("#1F2937") // Dark gray
	ColorText        = lipgloss.Color("#F9FAFB") // Almost white
	ColorTextMuted   = lipgloss.Color("#9CA3AF") // Gray
	ColorHighlight   = lipgloss.Color("#8B5CF6") // Light purple

	// Special
	ColorSelected = lipgloss.Color("#7C3AED") // Purple
	ColorChecked  = lipgloss.Color("#10B981") // Green
)

type Theme struct {
	PanelBorder      lipgloss.Border
	PanelBorderColor lipgloss.Color

	// Ink is drawn where a preview is opaque, blended over Paper by alpha.
	Ink   lipgloss.Color
	Paper lipgloss.Color

	TitleStyle      lipgloss.Style
	HeaderStyle     lipgloss.Style
	NormalTextStyle lipgloss.Style
	MutedTextStyle  lipgloss.Style
	HighlightStyle  lipgloss.Style

	SelectedItemStyle lipgloss.Style
	CheckedStyle      lipgloss.Style
	StatusBarStyle    lipgloss.Style
	ErrorStyle        lipgloss.Style
	SuccessStyle      lipgloss.Style
	WarningStyle      lipgloss.Style

	OptionLabelStyle lipgloss.Style
	OptionValueStyle lipgloss.Style
	FocusedStyle     lipgloss.Style
	HelpStyle        lipgloss.Style
}

func DefaultTheme() *Theme {
	return &Theme{
		PanelBorder:      lipgloss.RoundedBorder(),
		PanelBorderColor: ColorBorder,

		Ink:   ColorText,
		Paper: ColorBackground,

		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1),

		HeaderStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1),

		NormalTextStyle: lipgloss.NewStyle().
			Foreground(ColorText),

		MutedTextStyle: lipgloss.NewStyle().
			Foreground(ColorTextMuted),

		HighlightStyle: lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true),

		SelectedItemStyle: lipgloss.NewStyle().
			Foreground(ColorSelected).
			Bold(true).
			Background(lipgloss.Color("#312E81")), // Dark purple

		CheckedStyle: lipgloss.NewStyle().
			Foreground(ColorChecked).
			Bold(true),

		StatusBarStyle: lipgloss.NewStyle().
			Background(ColorBackground).
			Foreground(ColorText).
			Padding(0, 1),

		ErrorStyle: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),

		SuccessStyle: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),

		WarningStyle: lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true),

		OptionLabelStyle: lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Width(8).
			Align(lipgloss.Right),

		OptionValueStyle: lipgloss.NewStyle().
			Foreground(ColorText),

		FocusedStyle: lipgloss.NewStyle().
			Foreground(ColorAccent).
			Background(lipgloss.Color("#064E3B")). // Dark green
			Bold(true),

		HelpStyle: lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true),
	}
}

const (
	IconModule     = "📦"
	IconSymbols    = "✦"
	IconCheck      = "✓"
	IconCross      = "✗"
	IconArrowRight = "▶"
	IconArrowLeft  = "◀"
	IconSearch     = "🔍"
)

func SuccessText(text string, theme *Theme) string {
	return theme.SuccessStyle.Render(IconCheck + " " + text)
}

func ErrorText(text string, theme *Theme) string {
	return theme.ErrorStyle.Render(IconCross + " " + text)
}

func StatusBadge(text string, statusType string, theme *Theme) string {
	var style lipgloss.Style

	switch statusType {
	case "success":
		style = theme.SuccessStyle.Copy().Background(lipgloss.Color("#065F46"))
	case "error":
		style = theme.ErrorStyle.Copy().Background(lipgloss.Color("#7F1D1D"))
	case "warning":
		style = theme.WarningStyle.Copy().Background(lipgloss.Color("#78350F"))
	case "info":
		style = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Background(lipgloss.Color("#1E3A8A")).
			Bold(true)
	default:
		style = theme.NormalTextStyle
	}

	return style.Padding(0, 1).Render(text)
}

func KeyHelp(key, description string, theme *Theme) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1).
		Background(ColorBackground)

	return keyStyle.Render(key) + " " + theme.MutedTextStyle.Render(description)
}

func Separator(width int, char string, color lipgloss.Color) string {
	if width < 1 {
		width = 1
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(char, width))
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:max(n, 0)])
	}
	return string(r[:n-3]) + "..."
}
