package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/parley/parley/internal/clipboard"
	"github.com/parley/parley/internal/keys"
	"github.com/parley/parley/internal/logger"
	"github.com/parley/parley/internal/ui"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case StartupModalMsg:
		if !m.config.HasSeenWelcome() {
			m.modal.Show(ui.NewWelcomeState())
			m.config.MarkWelcomeShown()
			if err := m.config.Save(); err != nil {
				logger.Error("App: Failed to save config: %v", err)
			}
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() {
			return m, nil
		}
		if m.footer.HasFlash() {
			return m, ui.FlashTick()
		}
		return m, nil

	case ui.TypingTickMsg:
		var cmd tea.Cmd
		m.thread, cmd = m.thread.Update(msg)
		return m, cmd

	case SentTickMsg:
		m.handleSentTick(msg)
		return m, nil

	case ReplyMsg:
		return m.handleReply(msg)

	case VoiceResultMsg:
		return m.handleVoiceResult(msg)

	case VoiceClosedMsg:
		return m.handleVoiceClosed(msg)

	case SpeechClipMsg:
		return m.handleSpeechClip(msg)

	case ExportDoneMsg:
		if msg.Err != nil {
			return m, m.ShowFlashError("Export failed: " + msg.Err.Error())
		}
		return m, m.ShowFlashSuccess("Exported to " + msg.Path)
	}

	// Everything else (mouse wheel and friends) goes to the focused panel.
	if m.focus == FocusThread {
		var cmd tea.Cmd
		m.thread, cmd = m.thread.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress handles all keyboard input
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// ctrl+c always quits
	if key == keys.CtrlC {
		m.stopVoiceSession()
		return m, tea.Quit
	}

	// Modal swallows everything else while visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	// Voice capture owns the keyboard while running
	if m.state == StateVoiceCapture {
		switch key {
		case keys.CtrlV:
			return m.finishVoiceCapture()
		case keys.Escape:
			return m.cancelVoiceCapture()
		}
		return m, nil
	}

	if handled, model, cmd := m.handleEscapeKey(key); handled {
		return model, cmd
	}

	// Global shortcuts
	switch key {
	case keys.Tab:
		m.toggleFocus()
		return m, nil
	case keys.CtrlN:
		m.newConversation()
		return m, nil
	case keys.CtrlV:
		if m.focus == FocusThread {
			return m.startVoiceCapture()
		}
	case keys.CtrlY:
		if m.focus == FocusThread && m.thread.InNavigation() {
			return m.copyCurrentMessage()
		}
	case keys.CtrlUp:
		if m.focus == FocusThread {
			m.thread.EnterNavigation()
			return m, nil
		}
	case keys.CtrlDown:
		if m.focus == FocusThread && m.thread.InNavigation() {
			m.thread.ExitNavigation()
			return m, nil
		}
	}

	if m.focus == FocusBrowser {
		return m.handleBrowserKey(msg)
	}
	return m.handleThreadKey(msg)
}

// handleEscapeKey handles escape for leaving transient modes
func (m *Model) handleEscapeKey(key string) (bool, tea.Model, tea.Cmd) {
	if key != keys.Escape {
		return false, m, nil
	}
	if m.browser.IsRenaming() {
		m.browser.CancelRename()
		return true, m, nil
	}
	if m.browser.IsSearchMode() {
		m.browser.ExitSearchMode()
		return true, m, nil
	}
	if m.browser.InPreview() {
		m.browser.ExitPreview()
		return true, m, nil
	}
	if m.thread.InNavigation() {
		m.thread.ExitNavigation()
		return true, m, nil
	}
	return false, m, nil
}

// handleBrowserKey handles keys while the browser panel is focused
func (m *Model) handleBrowserKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Rename and search modes forward most keys to the panel's inputs.
	if m.browser.IsRenaming() {
		if key == keys.Enter {
			if id, title, ok := m.browser.CommitRename(); ok {
				if m.store.Rename(id, title) {
					m.syncBrowser()
					m.syncThread()
				}
			} else {
				return m, m.ShowFlashWarning("Title cannot be empty")
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.browser, cmd = m.browser.Update(msg)
		return m, cmd
	}
	if m.browser.IsSearchMode() || m.browser.InPreview() {
		var cmd tea.Cmd
		m.browser, cmd = m.browser.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		m.stopVoiceSession()
		return m, tea.Quit
	case "/":
		return m, m.browser.EnterSearchMode()
	case "r":
		return m, m.browser.StartRename()
	case "p":
		if sel := m.browser.Selected(); sel != nil {
			if pinned, ok := m.store.TogglePin(sel.ID); ok {
				m.syncBrowser()
				if pinned {
					return m, m.ShowFlashInfo("Pinned " + sel.Title)
				}
				return m, m.ShowFlashInfo("Unpinned " + sel.Title)
			}
		}
		return m, nil
	case "d":
		if sel := m.browser.Selected(); sel != nil {
			m.modal.Show(ui.NewConfirmDeleteState(sel.ID, sel.Title))
		}
		return m, nil
	case "x":
		if m.store.Len() > 0 {
			m.modal.Show(ui.NewClearHistoryState(m.store.Len()))
		}
		return m, nil
	case "e":
		if m.store.Len() > 0 {
			m.modal.Show(ui.NewExportState(m.config.GetExportFormat()))
		}
		return m, nil
	case "s":
		m.modal.Show(ui.NewSettingsState(
			m.config.GetTheme(),
			m.config.GetModel(),
			m.config.GetVoiceStyle(),
			m.config.GetExportFormat(),
			m.config.GetNotificationsEnabled(),
		))
		return m, nil
	case "t":
		m.modal.Show(ui.NewThemeState(ui.CurrentThemeName()))
		return m, nil
	case keys.Enter:
		if sel := m.browser.Selected(); sel != nil {
			m.openConversation(sel.ID)
			m.setFocus(FocusThread)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.browser, cmd = m.browser.Update(msg)
	return m, cmd
}

// handleThreadKey handles keys while the thread panel is focused
func (m *Model) handleThreadKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.thread.InNavigation() {
		switch key {
		case keys.Up, "k":
			m.thread.StepUp()
			return m, nil
		case keys.Down, "j":
			m.thread.StepDown()
			return m, nil
		case "y":
			return m.copyCurrentMessage()
		case "v":
			return m.speakCurrentMessage()
		case keys.Enter:
			m.thread.ExitNavigation()
			return m, nil
		}
		return m, nil
	}

	if key == keys.Enter {
		if m.CanSendMessage() {
			return m.sendMessage()
		}
		return m, nil
	}

	// Scroll keys go to the thread viewport, the rest to the input.
	switch key {
	case keys.PgUp, keys.PgDown, keys.CtrlU, keys.CtrlD:
		var cmd tea.Cmd
		m.thread, cmd = m.thread.Update(msg)
		return m, cmd
	}

	cmd := m.input.Update(msg)
	m.updateSizes()
	return m, cmd
}

// copyCurrentMessage copies the navigated message to the system clipboard
func (m *Model) copyCurrentMessage() (tea.Model, tea.Cmd) {
	message, ok := m.thread.CurrentMessage()
	if !ok {
		return m, nil
	}
	if err := clipboard.Init(); err != nil {
		return m, m.ShowFlashError("Clipboard unavailable: " + err.Error())
	}
	if err := clipboard.WriteText(message.Content); err != nil {
		return m, m.ShowFlashError("Copy failed: " + err.Error())
	}
	return m, m.ShowFlashSuccess("Message copied")
}
