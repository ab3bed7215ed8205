package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/parley/parley/internal/ui"
)

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.browser.SetSize(ctx.BrowserWidth, ctx.ContentHeight)
	m.input.SetSize(ctx.ThreadWidth)
	m.thread.SetSize(ctx.ThreadWidth, ctx.ContentHeight-m.input.Height())
}

// syncFooterContext pushes the current mode flags into the footer so it can
// pick the right key bindings.
func (m *Model) syncFooterContext() {
	m.footer.SetContext(
		m.store.ActiveID() != "",
		m.focus == FocusBrowser,
		len(m.inFlight) > 0,
		m.state == StateVoiceCapture,
		m.browser.IsSearchMode(),
		m.browser.IsRenaming(),
		m.thread.InNavigation(),
		m.kittyKeyboard,
	)
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.renderLayout())
	return v
}

// renderLayout composes the full frame: header, side-by-side panels with the
// input bar under the thread, footer, and any modal overlay on top.
func (m *Model) renderLayout() string {
	m.syncFooterContext()

	header := m.header.View()
	footer := m.footer.View()

	threadColumn := lipgloss.JoinVertical(
		lipgloss.Left,
		m.thread.View(),
		m.input.View(),
	)

	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.browser.View(),
		threadColumn,
	)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		panels,
		footer,
	)

	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}
	return view
}

// RenderToString renders the current view as a string, for tests.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	return m.renderLayout()
}
