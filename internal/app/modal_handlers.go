package app

import (
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/parley/parley/internal/export"
	"github.com/parley/parley/internal/keys"
	"github.com/parley/parley/internal/logger"
	"github.com/parley/parley/internal/ui"
)

// handleModalKey routes keys while a modal is visible. Escape dismisses,
// enter confirms per state type, everything else goes to the state itself.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == keys.Escape {
		if state, ok := m.modal.State.(*ui.ThemeState); ok {
			// Undo any live preview.
			ui.SetTheme(state.CurrentTheme)
		}
		m.modal.Hide()
		return m, nil
	}

	if key == keys.Enter {
		return m.confirmModal()
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	if state, ok := m.modal.State.(*ui.ThemeState); ok {
		ui.SetTheme(state.GetSelectedTheme())
	}
	return m, cmd
}

// confirmModal applies the visible modal's selection.
func (m *Model) confirmModal() (tea.Model, tea.Cmd) {
	switch state := m.modal.State.(type) {
	case *ui.ConfirmDeleteState:
		m.modal.Hide()
		if !state.ShouldDelete() {
			return m, nil
		}
		title := state.ConversationTitle
		if m.store.Delete(state.ConversationID) {
			m.syncBrowser()
			m.syncThread()
			m.updateSizes()
			return m, m.ShowFlashInfo("Deleted " + title)
		}
		return m, nil

	case *ui.ClearHistoryState:
		m.modal.Hide()
		if !state.ShouldClear() {
			return m, nil
		}
		m.store.Clear()
		m.syncBrowser()
		m.syncThread()
		m.updateSizes()
		return m, m.ShowFlashInfo("History cleared")

	case *ui.SettingsState:
		m.modal.Hide()
		return m, m.applySettings(state)

	case *ui.ThemeState:
		m.modal.Hide()
		name := state.GetSelectedTheme()
		ui.SetTheme(name)
		m.config.SetTheme(string(name))
		if err := m.config.Save(); err != nil {
			logger.Error("App: Failed to save config: %v", err)
			return m, m.ShowFlashError("Theme applied but not saved")
		}
		return m, m.ShowFlashSuccess("Theme: " + string(name))

	case *ui.ExportState:
		m.modal.Hide()
		return m, m.exportCmd(state.GetSelectedFormat())

	case *ui.WelcomeState:
		m.modal.Hide()
		return m, nil
	}

	m.modal.Hide()
	return m, nil
}

// applySettings persists every settings form field and applies the theme.
func (m *Model) applySettings(state *ui.SettingsState) tea.Cmd {
	ui.SetThemeByName(state.GetSelectedTheme())
	m.config.SetTheme(state.GetSelectedTheme())
	m.config.SetModel(state.GetModel())
	m.config.SetVoiceStyle(state.GetVoiceStyle())
	m.config.SetExportFormat(state.GetExportFormat())
	m.config.SetNotificationsEnabled(state.GetNotificationsEnabled())

	m.header.SetModel(m.config.GetModel())

	if err := m.config.Save(); err != nil {
		logger.Error("App: Failed to save config: %v", err)
		return m.ShowFlashError("Settings applied but not saved")
	}
	return m.ShowFlashSuccess("Settings saved")
}

// exportCmd writes all conversations in the chosen format off the UI loop.
func (m *Model) exportCmd(format string) tea.Cmd {
	m.config.SetExportFormat(format)
	if err := m.config.Save(); err != nil {
		logger.Error("App: Failed to save config: %v", err)
	}
	conversations := m.store.Conversations()
	return func() tea.Msg {
		dir, err := os.UserHomeDir()
		if err != nil {
			dir = "."
		}
		path, err := export.Write(conversations, format, dir)
		return ExportDoneMsg{Path: path, Err: err}
	}
}
