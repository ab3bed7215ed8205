package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// Input is the message composition bar below the thread panel. It wraps a
// textarea that grows with its content up to a fixed maximum, and tracks the
// states that gate submission: an in-flight request and active voice capture.
type Input struct {
	textarea textarea.Model
	width    int
	focused  bool

	inFlight    bool
	voiceActive bool
	voiceStart  time.Time
	interim     string
}

// NewInput creates the input bar.
func NewInput() *Input {
	ti := textarea.New()
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaMinHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	// Plain enter is intercepted upstream for submit.
	ti.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("shift+enter", "ctrl+j"))

	return &Input{textarea: ti}
}

// SetSize sets the input bar width. Height follows the content.
func (i *Input) SetSize(width int) {
	i.width = width

	ctx := GetViewContext()
	innerWidth := ctx.InnerWidth(width) - InputPaddingWidth
	if innerWidth < 1 {
		innerWidth = 1
	}
	i.textarea.SetWidth(innerWidth)
	i.syncHeight()

	ctx.Log("Input.SetSize: outer=%d, inner=%d", width, innerWidth)
}

// SetFocused sets the focus state
func (i *Input) SetFocused(focused bool) {
	i.focused = focused
	if focused {
		i.textarea.Focus()
	} else {
		i.textarea.Blur()
	}
}

// IsFocused returns the focus state
func (i *Input) IsFocused() bool {
	return i.focused
}

// Value returns the current draft
func (i *Input) Value() string {
	return i.textarea.Value()
}

// SetValue replaces the current draft
func (i *Input) SetValue(value string) {
	i.textarea.SetValue(value)
	i.syncHeight()
}

// Clear empties the draft
func (i *Input) Clear() {
	i.textarea.Reset()
	i.syncHeight()
}

// SetInFlight marks whether a reply request is outstanding. While set,
// submission is disabled but the draft remains editable.
func (i *Input) SetInFlight(inFlight bool) {
	i.inFlight = inFlight
}

// InFlight reports whether a reply request is outstanding
func (i *Input) InFlight() bool {
	return i.inFlight
}

// CanSubmit reports whether the current draft may be sent: the draft must
// contain non-whitespace text, no request may be in flight, and voice
// capture must not be active.
func (i *Input) CanSubmit() bool {
	if i.inFlight || i.voiceActive {
		return false
	}
	return strings.TrimSpace(i.textarea.Value()) != ""
}

// Submit returns the trimmed draft and clears the input. The second return
// is false when submission is disabled, in which case the draft is left
// untouched.
func (i *Input) Submit() (string, bool) {
	if !i.CanSubmit() {
		return "", false
	}
	val := strings.TrimSpace(i.textarea.Value())
	i.Clear()
	return val, true
}

// StartVoice enters voice capture mode. Typed input is swallowed until the
// capture ends.
func (i *Input) StartVoice() {
	i.voiceActive = true
	i.voiceStart = time.Now()
	i.interim = ""
}

// StopVoice leaves voice capture mode without touching the draft.
func (i *Input) StopVoice() {
	i.voiceActive = false
	i.interim = ""
}

// VoiceActive reports whether voice capture is in progress
func (i *Input) VoiceActive() bool {
	return i.voiceActive
}

// SetInterim updates the live transcription shown while capturing
func (i *Input) SetInterim(text string) {
	i.interim = text
}

// AppendTranscript appends a finished voice transcript to the draft,
// space-joined when a draft already exists, and returns focus to the
// text field.
func (i *Input) AppendTranscript(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	existing := i.textarea.Value()
	if strings.TrimSpace(existing) == "" {
		i.textarea.SetValue(text)
	} else {
		i.textarea.SetValue(existing + " " + text)
	}
	i.syncHeight()
	i.textarea.Focus()
}

// Height returns the total rendered height including the border
func (i *Input) Height() int {
	if i.voiceActive {
		return 1 + TextareaBorderHeight
	}
	return i.contentHeight() + TextareaBorderHeight
}

func (i *Input) contentHeight() int {
	lines := i.textarea.LineCount()
	if lines < TextareaMinHeight {
		lines = TextareaMinHeight
	}
	if lines > TextareaMaxHeight {
		lines = TextareaMaxHeight
	}
	return lines
}

// syncHeight grows or shrinks the textarea to match its content
func (i *Input) syncHeight() {
	i.textarea.SetHeight(i.contentHeight())
}

// Update handles messages for the input bar
func (i *Input) Update(msg tea.Msg) tea.Cmd {
	if i.voiceActive {
		// Keystrokes do not reach the draft while capturing.
		if _, ok := msg.(tea.KeyPressMsg); ok {
			return nil
		}
	}
	var cmd tea.Cmd
	i.textarea, cmd = i.textarea.Update(msg)
	i.syncHeight()
	return cmd
}

// View renders the input bar
func (i *Input) View() string {
	if i.voiceActive {
		elapsed := formatElapsed(time.Since(i.voiceStart))
		line := fmt.Sprintf("● Listening... %s", elapsed)
		if i.interim != "" {
			line += "  " + i.interim
		}
		return InputVoiceStyle.Width(i.width - BorderSize).Render(line)
	}

	style := InputStyle
	if i.focused {
		style = InputFocusedStyle
	}
	return style.Width(i.width - BorderSize).Render(i.textarea.View())
}
