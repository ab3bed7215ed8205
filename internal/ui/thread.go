package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parley/parley/internal/chat"
	"github.com/parley/parley/internal/cursor"
	"github.com/parley/parley/internal/keys"
)

// TypingTickMsg is sent to update the animated typing indicator
type TypingTickMsg time.Time

// typingVerbs are playful status messages that cycle while a reply is pending
var typingVerbs = []string{
	"Thinking",
	"Pondering",
	"Composing",
	"Considering",
	"Drafting",
	"Mulling",
	"Musing",
	"Reflecting",
	"Formulating",
	"Percolating",
}

// randomTypingVerb returns a random verb from the list
func randomTypingVerb() string {
	return typingVerbs[rand.Intn(len(typingVerbs))]
}

// TypingTick returns a command that sends a tick message after a delay
func TypingTick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return TypingTickMsg(t)
	})
}

// formatElapsed formats a duration as a stopwatch string (e.g., "1.2s", "1:23")
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// Thread renders the active conversation's messages. It follows the newest
// message by default; navigation mode suspends that and steps message by
// message with a bounded cursor.
type Thread struct {
	viewport viewport.Model
	width    int
	height   int
	focused  bool

	hasConversation bool
	title           string
	messages        []chat.Message

	typing      bool
	typingStart time.Time
	typingVerb  string

	nav cursor.Cursor

	// messageLines[i] is the first rendered line of message i, rebuilt by
	// updateContent so navigation can scroll to a specific message.
	messageLines []int
}

// NewThread creates a new thread panel
func NewThread() *Thread {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	t := &Thread{
		viewport: vp,
		messages: []chat.Message{},
	}
	t.updateContent()
	return t
}

// SetSize sets the thread panel dimensions. The given height excludes the
// input area, which is rendered separately.
func (t *Thread) SetSize(width, height int) {
	t.width = width
	t.height = height

	ctx := GetViewContext()
	innerWidth := ctx.InnerWidth(width)
	viewportHeight := ctx.InnerHeight(height)
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	t.viewport.SetWidth(innerWidth)
	t.viewport.SetHeight(viewportHeight)
	t.updateContent()

	ctx.Log("Thread.SetSize", "width", width, "height", height)
}

// SetFocused sets the focus state
func (t *Thread) SetFocused(focused bool) {
	t.focused = focused
}

// IsFocused returns the focus state
func (t *Thread) IsFocused() bool {
	return t.focused
}

// SetConversation replaces the displayed conversation. Switching
// conversations always leaves navigation mode.
func (t *Thread) SetConversation(title string, messages []chat.Message) {
	t.title = title
	t.messages = messages
	t.hasConversation = true
	t.nav.Reset()
	t.updateContent()
	t.viewport.GotoBottom()
}

// SetTitle updates the displayed conversation title
func (t *Thread) SetTitle(title string) {
	t.title = title
}

// ClearConversation clears the displayed conversation
func (t *Thread) ClearConversation() {
	t.title = ""
	t.messages = nil
	t.hasConversation = false
	t.typing = false
	t.nav.Reset()
	t.updateContent()
}

// SetMessages updates the message sequence. In follow mode a length change
// auto-scrolls to the newest message; in navigation mode the scroll position
// is left alone so new messages cannot disrupt the user mid-navigation.
func (t *Thread) SetMessages(messages []chat.Message) {
	lengthChanged := len(messages) != len(t.messages)
	t.messages = messages
	t.nav.Clamp(len(messages))
	t.updateContent()
	if lengthChanged && !t.nav.Active() {
		t.viewport.GotoBottom()
	}
}

// SetTyping toggles the typing indicator. The toggle auto-scrolls in follow
// mode only, same as a message-length change.
func (t *Thread) SetTyping(typing bool) {
	if typing && !t.typing {
		t.typingStart = time.Now()
		t.typingVerb = randomTypingVerb()
	}
	t.typing = typing
	t.updateContent()
	if !t.nav.Active() {
		t.viewport.GotoBottom()
	}
}

// IsTyping returns whether the typing indicator is active
func (t *Thread) IsTyping() bool {
	return t.typing
}

// EnterNavigation switches to navigation mode with the cursor on the newest
// message. A no-op when the thread is empty.
func (t *Thread) EnterNavigation() {
	if len(t.messages) == 0 {
		return
	}
	t.nav.ActivateLast(len(t.messages))
	t.updateContent()
	t.scrollToCursor()
}

// ExitNavigation leaves navigation mode and scrolls to the newest message.
func (t *Thread) ExitNavigation() {
	t.nav.Reset()
	t.updateContent()
	t.viewport.GotoBottom()
}

// InNavigation returns whether navigation mode is active
func (t *Thread) InNavigation() bool {
	return t.nav.Active()
}

// NavIndex returns the navigation cursor position. Meaningful only while
// navigation mode is active.
func (t *Thread) NavIndex() int {
	return t.nav.Index()
}

// StepUp moves the navigation cursor one message toward the oldest.
func (t *Thread) StepUp() {
	if !t.nav.Active() {
		return
	}
	t.nav.StepUp()
	t.updateContent()
	t.scrollToCursor()
}

// StepDown moves the navigation cursor one message toward the newest.
func (t *Thread) StepDown() {
	if !t.nav.Active() {
		return
	}
	t.nav.StepDown(len(t.messages))
	t.updateContent()
	t.scrollToCursor()
}

// CurrentMessage returns the message under the navigation cursor, or the
// newest message when not navigating. Returns false when the thread is empty.
func (t *Thread) CurrentMessage() (chat.Message, bool) {
	if len(t.messages) == 0 {
		return chat.Message{}, false
	}
	if t.nav.Active() {
		return t.messages[t.nav.Index()], true
	}
	return t.messages[len(t.messages)-1], true
}

// scrollToCursor centers the viewport on the message under the cursor.
func (t *Thread) scrollToCursor() {
	idx := t.nav.Index()
	if idx < 0 || idx >= len(t.messageLines) {
		return
	}
	target := t.messageLines[idx] - t.viewport.Height()/2
	if target < 0 {
		target = 0
	}
	t.viewport.SetYOffset(target)
}

// renderEmptyMessage renders the placeholder when no conversation is active
func (t *Thread) renderEmptyMessage() string {
	msgStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var sb strings.Builder
	sb.WriteString(msgStyle.Italic(true).Render("No conversation selected"))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("To get started:"))
	sb.WriteString("\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("ctrl+n"))
	sb.WriteString(msgStyle.Render(" to start a new conversation"))
	return sb.String()
}

// statusSuffix renders the delivery-status tag for user messages
func statusSuffix(msg chat.Message) string {
	if msg.Role != chat.RoleUser {
		return ""
	}
	switch msg.Status {
	case chat.StatusSending:
		return " " + ThreadStatusStyle.Render("(sending...)")
	case chat.StatusError:
		return " " + StatusErrorStyle.Render("(failed)")
	default:
		return ""
	}
}

func (t *Thread) updateContent() {
	var sb strings.Builder
	t.messageLines = t.messageLines[:0]

	wrapWidth := t.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	line := 0
	write := func(s string) {
		sb.WriteString(s)
		line += strings.Count(s, "\n")
	}

	if !t.hasConversation {
		write(t.renderEmptyMessage())
	} else if len(t.messages) == 0 && !t.typing {
		write(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("Send a message to begin..."))
	} else {
		for i, msg := range t.messages {
			if i > 0 {
				write("\n\n")
			}
			t.messageLines = append(t.messageLines, line)

			var roleStyle lipgloss.Style
			var roleName string
			if msg.Role == chat.RoleUser {
				roleStyle = ThreadUserStyle
				roleName = "You"
			} else {
				roleStyle = ThreadAssistantStyle
				roleName = "Assistant"
			}

			header := roleStyle.Render(roleName + ":")
			if t.nav.Active() && i == t.nav.Index() {
				header = ThreadNavCursorStyle.Render("▶ ") + header
			}
			write(header)
			write(statusSuffix(msg))
			if msg.HasAudio {
				write(" " + ThreadAudioStyle.Render("♪ audio"))
			}
			write("\n")
			write(RenderMarkup(strings.TrimSpace(msg.Content), wrapWidth))
		}

		if t.typing {
			if len(t.messages) > 0 {
				write("\n\n")
			}
			elapsed := time.Since(t.typingStart)
			stopwatchStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
			write(ThreadAssistantStyle.Render("Assistant:"))
			write("\n")
			write(StatusLoadingStyle.Render(t.typingVerb + "... "))
			write(stopwatchStyle.Render(formatElapsed(elapsed)))
		}
	}

	t.viewport.SetContent(sb.String())
}

// Update handles messages
func (t *Thread) Update(msg tea.Msg) (*Thread, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case TypingTickMsg:
		if t.typing {
			t.updateContent()
			cmds = append(cmds, TypingTick())
		}
		return t, tea.Batch(cmds...)

	case tea.KeyPressMsg:
		if !t.focused {
			return t, nil
		}
		switch msg.String() {
		case keys.PgUp, keys.PgDown, keys.CtrlU, keys.CtrlD, keys.Home, keys.End:
			var cmd tea.Cmd
			t.viewport, cmd = t.viewport.Update(msg)
			return t, cmd
		}
		return t, nil
	}

	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return t, tea.Batch(cmds...)
}

// View renders the thread panel
func (t *Thread) View() string {
	panelStyle := PanelStyle
	if t.focused {
		panelStyle = PanelFocusedStyle
	}

	var content string
	if !t.hasConversation {
		content = t.renderEmptyMessage()
	} else {
		content = t.viewport.View()
	}

	return panelStyle.Width(t.width).Height(t.height).Render(content)
}
