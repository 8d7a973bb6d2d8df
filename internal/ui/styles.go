package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for selected items, borders
	ColorDanger    = "196" // Red - for errors
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorWarning   = "208" // Orange - for warning details
	ColorSuccess   = "42"  // Green - for success banners
)

// Styles contains shared style definitions used across views and modals.
var Styles = struct {
	Title        lipgloss.Style // Bold accent color - for main titles
	TitleDanger  lipgloss.Style // Bold danger color - for error titles
	Box          lipgloss.Style // Standard modal box with rounded border
	BoxDanger    lipgloss.Style // Error modal box (danger border)
	Selected     lipgloss.Style // Highlighted/selected items
	Muted        lipgloss.Style // Dimmed text
	Hint         lipgloss.Style // Help/hint text
	Label        lipgloss.Style // Field labels
	Value        lipgloss.Style // Field values (accent color)
	Details      lipgloss.Style // Warning details (warning color)
	BannerOK     lipgloss.Style // Success notification banner
	BannerError  lipgloss.Style // Error notification banner
	TabActive    lipgloss.Style // Active snippet tab
	TabInactive  lipgloss.Style // Inactive snippet tab
	CodeBlock    lipgloss.Style // Snippet body
	FieldFocused lipgloss.Style // Focused form field marker
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleDanger: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2).
		Margin(1),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2).
		Margin(1),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Value: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Details: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	BannerOK: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSuccess)).
		Bold(true),
	BannerError: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)).
		Bold(true),
	TabActive: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true).
		Underline(true),
	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	CodeBlock: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)).
		Padding(0, 1),
	FieldFocused: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)),
}
