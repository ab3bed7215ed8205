package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Header represents the top header bar
type Header struct {
	width             int
	conversationTitle string
	model             string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetConversationTitle sets the active conversation title to display
func (h *Header) SetConversationTitle(title string) {
	h.conversationTitle = title
}

// SetModel sets the model name to display alongside the title
func (h *Header) SetModel(model string) {
	h.model = model
}

// View renders the header
func (h *Header) View() string {
	titleText := " parley"
	var rightText string
	if h.conversationTitle != "" {
		rightText = h.conversationTitle
		if h.model != "" {
			rightText += " (" + h.model + ")"
		}
		rightText += " "
	}

	paddingLen := h.width - len(titleText) - len(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	return h.renderGradient(fullContent, h.model)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// model is used to identify and mute the model portion of the text.
func (h *Header) renderGradient(content string, model string) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	// End color: fade to the main background
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	// Find where the model portion starts (if present)
	modelStart := -1
	if model != "" {
		modelMarker := "(" + model + ")"
		modelStart = strings.Index(content, modelMarker)
	}

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		inModel := modelStart >= 0 && i >= modelStart

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < 7) // Bold for the "parley" title

		if inModel {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
