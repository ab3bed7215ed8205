package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/parley/parley/internal/chat"
	"github.com/parley/parley/internal/cursor"
	"github.com/parley/parley/internal/keys"
)

// Browser is the conversation list panel. It renders conversations in two
// groups, pinned first, supports incremental search over titles and
// previews, inline renaming of the selected conversation, and a drill-down
// preview of the selected conversation's recent messages.
type Browser struct {
	conversations []chat.Conversation
	filtered      []chat.Conversation
	selectedIdx   int
	width         int
	height        int
	focused       bool

	// Search mode
	searchMode  bool
	searchInput textinput.Model

	// Inline rename
	renaming    bool
	renameID    string
	renameInput textinput.Model

	// Drill-down preview
	previewMode   bool
	previewCursor cursor.Cursor
}

// NewBrowser creates the conversation list panel.
func NewBrowser() *Browser {
	si := textinput.New()
	si.Placeholder = "search..."
	si.CharLimit = ModalInputCharLimit

	ri := textinput.New()
	ri.CharLimit = ModalInputCharLimit

	return &Browser{
		searchInput: si,
		renameInput: ri,
	}
}

// SetSize sets the browser dimensions
func (b *Browser) SetSize(width, height int) {
	b.width = width
	b.height = height

	ctx := GetViewContext()
	ctx.Log("Browser.SetSize: outer=%dx%d, inner=%dx%d",
		width, height, ctx.InnerWidth(width), ctx.InnerHeight(height))
}

// SetFocused sets the focus state
func (b *Browser) SetFocused(focused bool) {
	b.focused = focused
}

// IsFocused returns the focus state
func (b *Browser) IsFocused() bool {
	return b.focused
}

// SetConversations replaces the conversation list. Selection follows the
// previously selected conversation when it still exists, otherwise it is
// clamped to the new list.
func (b *Browser) SetConversations(conversations []chat.Conversation) {
	var keepID string
	if sel := b.Selected(); sel != nil {
		keepID = sel.ID
	}

	b.conversations = conversations
	if b.searchMode {
		b.applyFilter(b.searchInput.Value())
	}

	display := b.displayList()
	if keepID != "" {
		for i, c := range display {
			if c.ID == keepID {
				b.selectedIdx = i
				b.syncPreview()
				return
			}
		}
	}
	if b.selectedIdx >= len(display) {
		b.selectedIdx = len(display) - 1
	}
	if b.selectedIdx < 0 {
		b.selectedIdx = 0
	}
	b.syncPreview()
}

// Select moves the selection to the conversation with the given ID
func (b *Browser) Select(id string) {
	for i, c := range b.displayList() {
		if c.ID == id {
			b.selectedIdx = i
			b.syncPreview()
			return
		}
	}
}

// Selected returns the currently selected conversation, or nil when the
// display list is empty.
func (b *Browser) Selected() *chat.Conversation {
	display := b.displayList()
	if len(display) == 0 || b.selectedIdx < 0 || b.selectedIdx >= len(display) {
		return nil
	}
	c := display[b.selectedIdx]
	return &c
}

// displayList returns conversations in render order: pinned first, then the
// rest, filtered when a search is active.
func (b *Browser) displayList() []chat.Conversation {
	src := b.conversations
	if b.searchMode && b.filtered != nil {
		src = b.filtered
	}
	ordered := make([]chat.Conversation, 0, len(src))
	for _, c := range src {
		if c.Pinned {
			ordered = append(ordered, c)
		}
	}
	for _, c := range src {
		if !c.Pinned {
			ordered = append(ordered, c)
		}
	}
	return ordered
}

// EnterSearchMode activates search mode
func (b *Browser) EnterSearchMode() tea.Cmd {
	b.searchMode = true
	b.searchInput.SetValue("")
	b.searchInput.Focus()
	b.applyFilter("")
	return nil
}

// ExitSearchMode deactivates search mode and clears the filter
func (b *Browser) ExitSearchMode() {
	b.searchMode = false
	b.searchInput.Blur()
	b.searchInput.SetValue("")
	b.filtered = nil
	display := b.displayList()
	if b.selectedIdx >= len(display) {
		b.selectedIdx = len(display) - 1
	}
	if b.selectedIdx < 0 {
		b.selectedIdx = 0
	}
}

// IsSearchMode returns whether search mode is active
func (b *Browser) IsSearchMode() bool {
	return b.searchMode
}

// applyFilter filters conversations by case-insensitive substring match on
// title or preview.
func (b *Browser) applyFilter(query string) {
	if query == "" {
		b.filtered = nil
		return
	}

	b.filtered = nil
	for _, c := range b.conversations {
		if c.Matches(query) {
			b.filtered = append(b.filtered, c)
		}
	}

	if b.selectedIdx >= len(b.filtered) {
		b.selectedIdx = len(b.filtered) - 1
	}
	if b.selectedIdx < 0 {
		b.selectedIdx = 0
	}
}

// StartRename begins inline renaming of the selected conversation
func (b *Browser) StartRename() tea.Cmd {
	sel := b.Selected()
	if sel == nil {
		return nil
	}
	b.renaming = true
	b.renameID = sel.ID
	b.renameInput.SetValue(sel.Title)
	b.renameInput.Focus()
	return nil
}

// IsRenaming returns whether an inline rename is in progress
func (b *Browser) IsRenaming() bool {
	return b.renaming
}

// CommitRename ends the rename and returns the target conversation ID and
// the trimmed new title. ok is false when no rename was in progress or the
// title is empty after trimming.
func (b *Browser) CommitRename() (id, title string, ok bool) {
	if !b.renaming {
		return "", "", false
	}
	id = b.renameID
	title = strings.TrimSpace(b.renameInput.Value())
	b.CancelRename()
	if title == "" {
		return "", "", false
	}
	return id, title, true
}

// CancelRename abandons an in-progress rename
func (b *Browser) CancelRename() {
	b.renaming = false
	b.renameID = ""
	b.renameInput.Blur()
	b.renameInput.SetValue("")
}

// EnterPreview opens the drill-down preview for the selected conversation.
// The preview cursor starts at the oldest message.
func (b *Browser) EnterPreview() {
	sel := b.Selected()
	if sel == nil || len(sel.Messages) == 0 {
		return
	}
	b.previewMode = true
	b.previewCursor.Activate(0, len(sel.Messages))
}

// ExitPreview closes the drill-down preview
func (b *Browser) ExitPreview() {
	b.previewMode = false
	b.previewCursor.Reset()
}

// InPreview returns whether the drill-down preview is open
func (b *Browser) InPreview() bool {
	return b.previewMode
}

// syncPreview keeps the preview cursor valid after the selection or the
// conversation contents change.
func (b *Browser) syncPreview() {
	if !b.previewMode {
		return
	}
	sel := b.Selected()
	if sel == nil || len(sel.Messages) == 0 {
		b.ExitPreview()
		return
	}
	b.previewCursor.Clamp(len(sel.Messages))
	if !b.previewCursor.Active() {
		b.ExitPreview()
	}
}

// Update handles messages
func (b *Browser) Update(msg tea.Msg) (*Browser, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !b.focused {
		return b, nil
	}

	if b.renaming {
		switch keyMsg.String() {
		case keys.Escape, keys.Enter:
			// Commit and cancel are handled upstream.
			return b, nil
		default:
			var cmd tea.Cmd
			b.renameInput, cmd = b.renameInput.Update(msg)
			return b, cmd
		}
	}

	if b.searchMode {
		switch keyMsg.String() {
		case keys.Escape:
			b.ExitSearchMode()
			return b, nil
		case keys.Enter:
			// Keep the filter, stop editing the query.
			b.searchMode = false
			b.searchInput.Blur()
			return b, nil
		case keys.Up, keys.CtrlP:
			if b.selectedIdx > 0 {
				b.selectedIdx--
			}
			return b, nil
		case keys.Down, keys.CtrlN:
			if b.selectedIdx < len(b.displayList())-1 {
				b.selectedIdx++
			}
			return b, nil
		default:
			var cmd tea.Cmd
			b.searchInput, cmd = b.searchInput.Update(msg)
			b.applyFilter(b.searchInput.Value())
			return b, cmd
		}
	}

	if b.previewMode {
		sel := b.Selected()
		switch keyMsg.String() {
		case keys.Up, "k":
			b.previewCursor.StepUp()
		case keys.Down, "j":
			if sel != nil {
				b.previewCursor.StepDown(len(sel.Messages))
			}
		case keys.Left, "h":
			b.ExitPreview()
		}
		return b, nil
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		if b.selectedIdx > 0 {
			b.selectedIdx--
		}
	case keys.Down, "j":
		if b.selectedIdx < len(b.displayList())-1 {
			b.selectedIdx++
		}
	case keys.Right, "l":
		b.EnterPreview()
	}

	return b, nil
}

// View renders the browser panel
func (b *Browser) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if b.focused {
		style = PanelFocusedStyle
	}

	innerWidth := ctx.InnerWidth(b.width)
	innerHeight := ctx.InnerHeight(b.height)

	var lines []string

	if b.searchMode {
		searchStyle := lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
		b.searchInput.SetWidth(innerWidth - 3)
		lines = append(lines, searchStyle.Render("/")+" "+b.searchInput.View())
		innerHeight--
	}

	if b.previewMode {
		lines = append(lines, b.renderPreview(innerWidth)...)
	} else {
		lines = append(lines, b.renderList(innerWidth)...)
	}

	lines = b.scrollWindow(lines, innerHeight)
	content := strings.Join(lines, "\n")

	return style.
		Width(b.width - BorderSize).
		Height(ctx.InnerHeight(b.height)).
		Render(content)
}

// renderList renders the grouped conversation list as lines
func (b *Browser) renderList(innerWidth int) []string {
	display := b.displayList()
	if len(display) == 0 {
		empty := "No conversations."
		if b.searchMode && b.searchInput.Value() != "" {
			empty = "No matches."
		}
		return []string{lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true).Render(empty)}
	}

	var lines []string
	lastPinned := false
	headerShown := map[bool]bool{}

	for idx, conv := range display {
		if !headerShown[conv.Pinned] {
			header := "Recent"
			if conv.Pinned {
				header = "Pinned"
			}
			if idx > 0 && lastPinned != conv.Pinned {
				lines = append(lines, "")
			}
			lines = append(lines, BrowserGroupStyle.Render(header))
			headerShown[conv.Pinned] = true
		}
		lastPinned = conv.Pinned

		lines = append(lines, b.renderItem(conv, idx == b.selectedIdx, innerWidth)...)
	}
	return lines
}

// renderItem renders one conversation as a title line and a preview line
func (b *Browser) renderItem(conv chat.Conversation, selected bool, innerWidth int) []string {
	marker := "  "
	titleStyle := BrowserItemStyle
	if selected {
		marker = "> "
		titleStyle = BrowserSelectedStyle
	}

	title := conv.Title
	if conv.Pinned {
		title = "★ " + title
	}

	var titleLine string
	if selected && b.renaming {
		b.renameInput.SetWidth(innerWidth - 2)
		titleLine = marker + b.renameInput.View()
	} else {
		when := formatRelativeTime(conv.LastActivity)
		avail := innerWidth - len(marker) - lipgloss.Width(when) - 1
		titleLine = marker + titleStyle.Render(truncateDisplay(title, avail)) + " " +
			lipgloss.NewStyle().Foreground(ColorTextMuted).Render(when)
	}

	lines := []string{titleLine}
	if conv.Preview != "" {
		lines = append(lines, "  "+BrowserPreviewStyle.Render(truncateDisplay(conv.Preview, innerWidth-2)))
	}
	return lines
}

// renderPreview renders the drill-down view: the message under the preview
// cursor plus up to two preceding messages for context.
func (b *Browser) renderPreview(innerWidth int) []string {
	sel := b.Selected()
	if sel == nil || len(sel.Messages) == 0 {
		return []string{lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true).Render("No messages.")}
	}

	idx := b.previewCursor.Index()
	if idx >= len(sel.Messages) {
		idx = len(sel.Messages) - 1
	}

	lines := []string{
		BrowserGroupStyle.Render(truncateDisplay(sel.Title, innerWidth)),
		lipgloss.NewStyle().Foreground(ColorTextMuted).Render(
			fmt.Sprintf("message %d of %d", idx+1, len(sel.Messages))),
		"",
	}

	start := idx - PreviewContextMessages
	if start < 0 {
		start = 0
	}
	for i := start; i <= idx; i++ {
		msg := sel.Messages[i]
		label := ThreadUserStyle.Render("You")
		if msg.Role == chat.RoleAssistant {
			label = ThreadAssistantStyle.Render("Assistant")
		}
		prefix := "  "
		if i == idx {
			prefix = ThreadNavCursorStyle.Render("▶ ")
		}
		lines = append(lines, prefix+label)
		body := strings.ReplaceAll(msg.Content, "\n", " ")
		if i != idx {
			// Context messages are abbreviated; the cursor's message
			// renders in full.
			body = truncateDisplay(body, PreviewContextLimit)
		}
		for _, l := range wrapLines(body, innerWidth-2) {
			lines = append(lines, "  "+l)
		}
		lines = append(lines, "")
	}
	return lines
}

// scrollWindow trims lines to the panel height, keeping the selection region
// in view with a simple top-anchored window.
func (b *Browser) scrollWindow(lines []string, height int) []string {
	if height < 1 || len(lines) <= height {
		return lines
	}
	// Anchor the window so the selected item's first line stays visible.
	anchor := b.selectedLine(lines)
	start := 0
	if anchor >= height {
		start = anchor - height + 1
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}

// selectedLine finds the first rendered line of the selected item
func (b *Browser) selectedLine(lines []string) int {
	for i, l := range lines {
		if strings.HasPrefix(l, "> ") || strings.Contains(l, "▶ ") {
			return i
		}
	}
	return 0
}

// truncateDisplay shortens s to the given display width, rune-aware
func truncateDisplay(s string, width int) string {
	if width < 1 {
		return ""
	}
	return runewidth.Truncate(s, width, "...")
}

// wrapLines word-wraps s and returns the resulting lines
func wrapLines(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	return strings.Split(wordwrap.String(s, width), "\n")
}

// formatRelativeTime renders a compact age like "now", "5m", "3h", "2d"
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}
