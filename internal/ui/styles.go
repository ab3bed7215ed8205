package ui

import "charm.land/lipgloss/v2"

// Color palette - Purple + Cyan/Teal theme
var (
	ColorPrimary     = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       = lipgloss.Color("#6B7280") // Gray
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#7C3AED") // Purple when focused
	ColorBg          = lipgloss.Color("#1F2937") // Dark background
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#B0B8C4") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorUser        = lipgloss.Color("#A78BFA") // Light purple for user messages
	ColorAssistant   = lipgloss.Color("#22D3EE") // Bright cyan for assistant messages
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber for voice capture, warnings
	ColorInfo        = lipgloss.Color("#06B6D4") // Cyan for info notices
	ColorError       = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess     = lipgloss.Color("#10B981") // Green for success
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)
)

// Browser styles
var (
	BrowserItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	// BrowserSelectedStyle uses theme's BgSelected color - initialized properly in regenerateStyles()
	BrowserSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultThemeName].GetBgSelected())).
				Foreground(lipgloss.Color(BuiltinThemes[DefaultThemeName].Text)).
				Bold(true).
				Padding(0, 1)

	BrowserPreviewStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Italic(true)

	BrowserGroupStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)
)

// Thread styles
var (
	ThreadUserStyle = lipgloss.NewStyle().
			Foreground(ColorUser).
			Bold(true)

	ThreadAssistantStyle = lipgloss.NewStyle().
				Foreground(ColorAssistant).
				Bold(true)

	ThreadMessageStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	ThreadNavCursorStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	ThreadStatusStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true)

	ThreadAudioStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	InputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)

	InputVoiceStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1)
)

// Status styles
var (
	StatusLoadingStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

// Message markup styles (updated by regenerateStyles)
var (
	MarkupEmphasisStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)

	MarkupPreformattedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(BuiltinThemes[DefaultThemeName].Code)).
				Background(lipgloss.Color(BuiltinThemes[DefaultThemeName].CodeBg))

	MarkupBulletStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary)
)
