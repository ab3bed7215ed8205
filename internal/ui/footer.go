package ui

import (
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType identifies the severity of a flash message
type FlashType int

const (
	FlashError FlashType = iota
	FlashWarning
	FlashInfo
	FlashSuccess
)

// DefaultFlashDuration is how long a flash message stays visible
const DefaultFlashDuration = 4 * time.Second

// FlashMessage is a transient status line shown in place of the keybindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg is sent periodically while a flash message is visible
type FlashTickMsg time.Time

// FlashTick returns a command that checks flash expiry
func FlashTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width           int
	hasConversation bool // Whether a conversation is active
	browserFocused  bool // Whether the browser pane has focus
	inFlight        bool // Whether a reply request is outstanding
	voiceActive     bool // Whether voice capture is running
	searchMode      bool // Whether the browser is in search mode
	renameMode      bool // Whether an inline rename is in progress
	navMode         bool // Whether the thread is in message navigation
	kittyKeyboard   bool // Whether the terminal distinguishes shift+enter

	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(hasConversation, browserFocused, inFlight, voiceActive, searchMode, renameMode, navMode, kittyKeyboard bool) {
	f.hasConversation = hasConversation
	f.browserFocused = browserFocused
	f.inFlight = inFlight
	f.voiceActive = voiceActive
	f.searchMode = searchMode
	f.renameMode = renameMode
	f.navMode = navMode
	f.kittyKeyboard = kittyKeyboard
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetFlash shows a flash message with the default duration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message with a custom duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, duration time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  duration,
	}
}

// ClearFlash removes the current flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is set
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired clears the flash message when its duration has passed.
// Returns true when a message was cleared.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// contextBindings returns the keybindings for the current context
func (f *Footer) contextBindings() []KeyBinding {
	if f.voiceActive {
		return []KeyBinding{
			{Key: "ctrl+v", Desc: "stop capture"},
			{Key: "esc", Desc: "cancel"},
		}
	}
	if f.searchMode {
		return []KeyBinding{
			{Key: "esc", Desc: "clear search"},
			{Key: "enter", Desc: "keep filter"},
			{Key: "↑/↓", Desc: "select"},
		}
	}
	if f.renameMode {
		return []KeyBinding{
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	}
	if f.navMode && !f.browserFocused {
		return []KeyBinding{
			{Key: "↑/↓", Desc: "message"},
			{Key: "y", Desc: "copy"},
			{Key: "v", Desc: "speak"},
			{Key: "esc", Desc: "resume"},
		}
	}
	if f.browserFocused {
		bindings := []KeyBinding{
			{Key: "enter", Desc: "open"},
			{Key: "ctrl+n", Desc: "new"},
			{Key: "/", Desc: "search"},
			{Key: "p", Desc: "pin"},
			{Key: "r", Desc: "rename"},
			{Key: "d", Desc: "delete"},
			{Key: "s", Desc: "settings"},
			{Key: "q", Desc: "quit"},
		}
		if f.hasConversation {
			bindings = append([]KeyBinding{{Key: "tab", Desc: "switch pane"}}, bindings...)
		}
		return bindings
	}

	bindings := []KeyBinding{
		{Key: "enter", Desc: "send"},
	}
	if f.kittyKeyboard {
		bindings = append(bindings, KeyBinding{Key: "shift+enter", Desc: "newline"})
	}
	bindings = append(bindings,
		KeyBinding{Key: "ctrl+v", Desc: "voice"},
		KeyBinding{Key: "ctrl+up", Desc: "messages"},
		KeyBinding{Key: "tab", Desc: "switch pane"},
		KeyBinding{Key: "pgup/dn", Desc: "scroll"},
	)
	if f.inFlight {
		bindings = append([]KeyBinding{{Key: "esc", Desc: "waiting..."}}, bindings[1:]...)
	}
	return bindings
}

// flashIcon returns the icon for a flash type
func flashIcon(t FlashType) string {
	switch t {
	case FlashError:
		return "✕"
	case FlashWarning:
		return "⚠"
	case FlashSuccess:
		return "✓"
	default:
		return "ℹ"
	}
}

// flashColor returns the foreground color for a flash type
func flashColor(t FlashType) color.Color {
	switch t {
	case FlashError:
		return ColorError
	case FlashWarning:
		return ColorWarning
	case FlashSuccess:
		return ColorSuccess
	default:
		return ColorInfo
	}
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		style := lipgloss.NewStyle().
			Foreground(flashColor(f.flashMessage.Type)).
			Bold(true)
		content := style.Render(flashIcon(f.flashMessage.Type) + " " + f.flashMessage.Text)
		return FooterStyle.Width(f.width).Render(content)
	}

	var parts []string
	for _, b := range f.contextBindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
