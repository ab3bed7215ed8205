package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/parley/parley/internal/keys"
)

func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	default:
		r := []rune(key)
		return tea.KeyPressMsg{Code: r[0], Text: key}
	}
}

func TestModalShowHide(t *testing.T) {
	m := NewModal()
	if m.IsVisible() {
		t.Error("new modal should not be visible")
	}

	m.Show(NewWelcomeState())
	if !m.IsVisible() {
		t.Error("modal should be visible after Show")
	}

	m.SetError("boom")
	if m.GetError() != "boom" {
		t.Errorf("GetError() = %q, want %q", m.GetError(), "boom")
	}

	m.Hide()
	if m.IsVisible() {
		t.Error("modal should be hidden after Hide")
	}
	if m.GetError() != "" {
		t.Error("Hide should clear the error")
	}
}

func TestConfirmDeleteStateSelection(t *testing.T) {
	s := NewConfirmDeleteState("c1", "Grocery list")

	if s.ShouldDelete() {
		t.Error("default selection should be the cancel option")
	}

	next, _ := s.Update(keyPress(keys.Down))
	s = next.(*ConfirmDeleteState)
	if !s.ShouldDelete() {
		t.Error("after moving down, delete should be selected")
	}

	// Down at the last option stays put.
	next, _ = s.Update(keyPress(keys.Down))
	s = next.(*ConfirmDeleteState)
	if !s.ShouldDelete() {
		t.Error("selection should remain at delete")
	}

	view := s.Render()
	if !strings.Contains(view, "Grocery list") {
		t.Error("render should include the conversation title")
	}
}

func TestClearHistoryStateSelection(t *testing.T) {
	s := NewClearHistoryState(4)

	if s.ShouldClear() {
		t.Error("default selection should be the cancel option")
	}

	next, _ := s.Update(keyPress("j"))
	s = next.(*ClearHistoryState)
	if !s.ShouldClear() {
		t.Error("after moving down, clear should be selected")
	}

	if !strings.Contains(s.Render(), "4 conversation(s)") {
		t.Error("render should include the conversation count")
	}
}

func TestExportStatePreselectsCurrentFormat(t *testing.T) {
	s := NewExportState("pdf")
	if s.GetSelectedFormat() != "pdf" {
		t.Errorf("GetSelectedFormat() = %q, want pdf", s.GetSelectedFormat())
	}

	next, _ := s.Update(keyPress(keys.Up))
	s = next.(*ExportState)
	if s.GetSelectedFormat() != "json" {
		t.Errorf("GetSelectedFormat() = %q, want json", s.GetSelectedFormat())
	}

	view := s.Render()
	if !strings.Contains(view, "PDF (.pdf)") {
		t.Error("render should show the format labels")
	}
}

func TestThemeStateStartsAtCurrent(t *testing.T) {
	s := NewThemeState(ThemeNord)
	if s.GetSelectedTheme() != ThemeNord {
		t.Errorf("GetSelectedTheme() = %q, want %q", s.GetSelectedTheme(), ThemeNord)
	}
	if !strings.Contains(s.Render(), "(current)") {
		t.Error("render should mark the current theme")
	}
}

func TestSettingsStateGetters(t *testing.T) {
	s := NewSettingsState("dark-purple", "gpt-4o-mini", "professional-female", "txt", true)

	if s.GetSelectedTheme() != "dark-purple" {
		t.Errorf("GetSelectedTheme() = %q", s.GetSelectedTheme())
	}
	if s.GetModel() != "gpt-4o-mini" {
		t.Errorf("GetModel() = %q", s.GetModel())
	}
	if s.GetVoiceStyle() != "professional-female" {
		t.Errorf("GetVoiceStyle() = %q", s.GetVoiceStyle())
	}
	if s.GetExportFormat() != "txt" {
		t.Errorf("GetExportFormat() = %q", s.GetExportFormat())
	}
	if !s.GetNotificationsEnabled() {
		t.Error("notifications should start enabled")
	}
	if s.ThemeChanged() {
		t.Error("theme should not be marked changed initially")
	}

	s.selectedTheme = "nord"
	if !s.ThemeChanged() {
		t.Error("theme change should be detected")
	}
}

func TestSettingsStateInterceptsEnterAndEscape(t *testing.T) {
	s := NewSettingsState("dark-purple", "gpt-4o-mini", "professional-female", "txt", false)

	// Enter and Escape are reserved for the app-layer modal handlers.
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("Enter should not produce a form command")
	}
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("Escape should not produce a form command")
	}
}
