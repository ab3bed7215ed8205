package ui

import (
	"fmt"
	"slices"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/parley/parley/internal/export"
	"github.com/parley/parley/internal/keys"
	"github.com/parley/parley/internal/speech"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct,
// ensuring type-safe access to modal-specific fields.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := m.State.Render()

	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// =============================================================================
// ConfirmDeleteState - State for the Delete Conversation modal
// =============================================================================

type ConfirmDeleteState struct {
	ConversationID    string
	ConversationTitle string
	Options           []string
	SelectedIndex     int
}

func (*ConfirmDeleteState) modalState() {}

func (s *ConfirmDeleteState) Title() string { return "Delete Conversation?" }

func (s *ConfirmDeleteState) Help() string {
	return "↑/↓ to select, Enter to confirm, Esc to cancel"
}

func (s *ConfirmDeleteState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	nameLabel := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(s.ConversationTitle)

	message := lipgloss.NewStyle().
		Foreground(ColorText).
		MarginBottom(1).
		Render("This removes the conversation and its messages.")

	var optionList string
	for i, opt := range s.Options {
		style := BrowserItemStyle
		prefix := "  "
		if i == s.SelectedIndex {
			style = BrowserSelectedStyle
			prefix = "> "
		}
		optionList += style.Render(prefix+opt) + "\n"
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, nameLabel, message, optionList, help)
}

func (s *ConfirmDeleteState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// ShouldDelete returns true when the user selected the delete option
func (s *ConfirmDeleteState) ShouldDelete() bool {
	return s.SelectedIndex == 1
}

// NewConfirmDeleteState creates a new ConfirmDeleteState
func NewConfirmDeleteState(conversationID, conversationTitle string) *ConfirmDeleteState {
	return &ConfirmDeleteState{
		ConversationID:    conversationID,
		ConversationTitle: conversationTitle,
		Options:           []string{"Cancel", "Delete conversation"},
		SelectedIndex:     0,
	}
}

// =============================================================================
// ClearHistoryState - State for the Clear History modal
// =============================================================================

type ClearHistoryState struct {
	ConversationCount int
	Options           []string
	SelectedIndex     int
}

func (*ClearHistoryState) modalState() {}

func (s *ClearHistoryState) Title() string { return "Clear History?" }

func (s *ClearHistoryState) Help() string {
	return "↑/↓ to select, Enter to confirm, Esc to cancel"
}

func (s *ClearHistoryState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	message := lipgloss.NewStyle().
		Foreground(ColorText).
		MarginBottom(1).
		Render("This removes all conversations. There is no undo.")

	count := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(fmt.Sprintf("%d conversation(s) will be deleted.", s.ConversationCount))

	var optionList string
	for i, opt := range s.Options {
		style := BrowserItemStyle
		prefix := "  "
		if i == s.SelectedIndex {
			style = BrowserSelectedStyle
			prefix = "> "
		}
		optionList += style.Render(prefix+opt) + "\n"
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, message, count, optionList, help)
}

func (s *ClearHistoryState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// ShouldClear returns true when the user selected the clear option
func (s *ClearHistoryState) ShouldClear() bool {
	return s.SelectedIndex == 1
}

// NewClearHistoryState creates a new ClearHistoryState
func NewClearHistoryState(conversationCount int) *ClearHistoryState {
	return &ClearHistoryState{
		ConversationCount: conversationCount,
		Options:           []string{"Cancel", "Clear everything"},
		SelectedIndex:     0,
	}
}

// =============================================================================
// ExportState - State for the Export modal
// =============================================================================

type ExportState struct {
	Formats       []string
	SelectedIndex int
}

func (*ExportState) modalState() {}

func (s *ExportState) Title() string { return "Export Conversations" }

func (s *ExportState) Help() string {
	return "↑/↓ to select, Enter to export, Esc to cancel"
}

func (s *ExportState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	label := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginBottom(1).
		Render("Format:")

	var optionList string
	for i, format := range s.Formats {
		style := BrowserItemStyle
		prefix := "  "
		if i == s.SelectedIndex {
			style = BrowserSelectedStyle
			prefix = "> "
		}
		optionList += style.Render(prefix+formatLabel(format)) + "\n"
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, label, optionList, help)
}

func formatLabel(format string) string {
	switch format {
	case "txt":
		return "Plain text (.txt)"
	case "json":
		return "JSON (.json)"
	case "pdf":
		return "PDF (.pdf)"
	default:
		return format
	}
}

func (s *ExportState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Formats)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// GetSelectedFormat returns the chosen export format
func (s *ExportState) GetSelectedFormat() string {
	if len(s.Formats) == 0 || s.SelectedIndex >= len(s.Formats) {
		return ""
	}
	return s.Formats[s.SelectedIndex]
}

// NewExportState creates a new ExportState preselecting the given format
func NewExportState(currentFormat string) *ExportState {
	s := &ExportState{Formats: export.Formats}
	for i, f := range s.Formats {
		if f == currentFormat {
			s.SelectedIndex = i
			break
		}
	}
	return s
}

// =============================================================================
// WelcomeState - State for the first-time user welcome modal
// =============================================================================

type WelcomeState struct{}

func (*WelcomeState) modalState() {}

func (s *WelcomeState) Title() string { return "Welcome to Parley!" }

func (s *WelcomeState) Help() string {
	return "Press Enter or Esc to continue"
}

func (s *WelcomeState) Render() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginBottom(1).
		Render(s.Title())

	intro := lipgloss.NewStyle().
		Foreground(ColorText).
		Width(50).
		Render("Parley is a chat assistant for your terminal. Conversations live in the left pane, messages in the right, and everything works from the keyboard.")

	gettingStarted := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1).
		Render("Getting started:")

	shortcuts := lipgloss.NewStyle().
		Foreground(ColorText).
		Render("  ctrl+n  Start a new conversation\n  ctrl+v  Dictate a message\n  Tab     Switch between panes\n  s       Open settings")

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		intro,
		gettingStarted,
		shortcuts,
		help,
	)
}

func (s *WelcomeState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewWelcomeState creates a new WelcomeState
func NewWelcomeState() *WelcomeState {
	return &WelcomeState{}
}

// =============================================================================
// SettingsState - State for the Settings modal
// =============================================================================

type SettingsState struct {
	// Bound form values
	selectedTheme  string
	OriginalTheme  string // To detect if theme changed
	model          string
	voiceStyle     string
	exportFormat   string
	generalOptions []string

	NotificationsEnabled bool

	form *huh.Form
}

const optionNotifications = "notifications"

func (*SettingsState) modalState() {}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	s.syncFromMultiSelect()
	return s, cmd
}

// syncFromMultiSelect updates boolean fields from the MultiSelect bindings.
func (s *SettingsState) syncFromMultiSelect() {
	s.NotificationsEnabled = slices.Contains(s.generalOptions, optionNotifications)
}

// GetSelectedTheme returns the selected theme key
func (s *SettingsState) GetSelectedTheme() string {
	return s.selectedTheme
}

// ThemeChanged returns true if the selected theme differs from the original
func (s *SettingsState) ThemeChanged() bool {
	return s.selectedTheme != s.OriginalTheme
}

// GetModel returns the model name
func (s *SettingsState) GetModel() string {
	return s.model
}

// GetVoiceStyle returns the selected voice style key
func (s *SettingsState) GetVoiceStyle() string {
	return s.voiceStyle
}

// GetExportFormat returns the selected export format
func (s *SettingsState) GetExportFormat() string {
	return s.exportFormat
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (s *SettingsState) GetNotificationsEnabled() bool {
	return s.NotificationsEnabled
}

// NewSettingsState creates a new SettingsState with the current settings values.
func NewSettingsState(currentTheme, currentModel, currentVoiceStyle, currentExportFormat string, notificationsEnabled bool) *SettingsState {
	s := &SettingsState{
		selectedTheme:        currentTheme,
		OriginalTheme:        currentTheme,
		model:                currentModel,
		voiceStyle:           currentVoiceStyle,
		exportFormat:         currentExportFormat,
		NotificationsEnabled: notificationsEnabled,
	}

	themes := ThemeNames()
	themeOptions := make([]huh.Option[string], len(themes))
	for i, name := range themes {
		themeOptions[i] = huh.NewOption(GetTheme(name).Name, string(name))
	}

	styles := speech.VoiceStyles()
	voiceOptions := make([]huh.Option[string], len(styles))
	for i, style := range styles {
		voiceOptions[i] = huh.NewOption(style.Label(), string(style))
	}

	formatOptions := make([]huh.Option[string], len(export.Formats))
	for i, f := range export.Formats {
		formatOptions[i] = huh.NewOption(formatLabel(f), f)
	}

	generalOpts := []huh.Option[string]{
		huh.NewOption("Desktop notifications", optionNotifications).
			Selected(notificationsEnabled),
	}
	if notificationsEnabled {
		s.generalOptions = append(s.generalOptions, optionNotifications)
	}

	group := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&s.selectedTheme),
		huh.NewInput().
			Title("Model").
			Description("Model used for assistant replies").
			Placeholder("gpt-4o-mini").
			CharLimit(64).
			Value(&s.model),
		huh.NewSelect[string]().
			Title("Voice style").
			Description("Voice used when reading replies aloud").
			Options(voiceOptions...).
			Value(&s.voiceStyle),
		huh.NewSelect[string]().
			Title("Export format").
			Options(formatOptions...).
			Value(&s.exportFormat),
		huh.NewMultiSelect[string]().
			Title("Options").
			Options(generalOpts...).
			Height(len(generalOpts)).
			Value(&s.generalOptions),
	)

	s.form = huh.NewForm(group).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 10)

	initHuhForm(s.form)
	return s
}

// =============================================================================
// ThemeState - State for the quick Theme picker modal
// =============================================================================

type ThemeState struct {
	Themes        []ThemeName
	SelectedIndex int
	CurrentTheme  ThemeName
}

func (*ThemeState) modalState() {}

func (s *ThemeState) Title() string { return "Select Theme" }

func (s *ThemeState) Help() string {
	return "↑/↓ to select, Enter to apply, Esc to cancel"
}

func (s *ThemeState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	var content string
	for i, themeName := range s.Themes {
		theme := GetTheme(themeName)
		style := BrowserItemStyle
		prefix := "  "
		suffix := ""

		if i == s.SelectedIndex {
			style = BrowserSelectedStyle
			prefix = "> "
		}

		if themeName == s.CurrentTheme {
			suffix = " (current)"
		}

		content += style.Render(prefix+theme.Name+suffix) + "\n"
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
}

func (s *ThemeState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Themes)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// GetSelectedTheme returns the selected theme name
func (s *ThemeState) GetSelectedTheme() ThemeName {
	if len(s.Themes) == 0 || s.SelectedIndex >= len(s.Themes) {
		return DefaultThemeName
	}
	return s.Themes[s.SelectedIndex]
}

// NewThemeState creates a new ThemeState
func NewThemeState(currentTheme ThemeName) *ThemeState {
	themes := ThemeNames()

	selectedIndex := 0
	for i, t := range themes {
		if t == currentTheme {
			selectedIndex = i
			break
		}
	}

	return &ThemeState{
		Themes:        themes,
		SelectedIndex: selectedIndex,
		CurrentTheme:  currentTheme,
	}
}
