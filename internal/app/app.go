package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/parley/parley/internal/chat"
	"github.com/parley/parley/internal/config"
	"github.com/parley/parley/internal/genai"
	"github.com/parley/parley/internal/logger"
	"github.com/parley/parley/internal/speech"
	"github.com/parley/parley/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusBrowser Focus = iota
	FocusThread
)

// AppState represents the current state of the application.
// Using an explicit state machine prevents invalid state combinations
// and makes state transitions clear and traceable.
type AppState int

const (
	StateIdle          AppState = iota // Ready for user input
	StateWaitingReply                  // A reply request is outstanding
	StateVoiceCapture                  // Voice recognition is running
)

// String returns a human-readable name for the state
func (s AppState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateWaitingReply:
		return "WaitingReply"
	case StateVoiceCapture:
		return "VoiceCapture"
	default:
		return "Unknown"
	}
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string // App version (injected at build time)
	header  *ui.Header
	footer  *ui.Footer
	browser *ui.Browser
	thread  *ui.Thread
	input   *ui.Input
	modal   *ui.Modal

	store       *chat.Store
	client      genai.Client
	recognizer  speech.Recognizer
	synthesizer speech.Synthesizer

	width  int
	height int
	focus  Focus

	// State machine
	state AppState

	// Conversations with an outstanding reply request, keyed by ID.
	// Requests outlive conversation switches, so this is a set.
	inFlight map[string]bool

	voiceSession speech.Session

	kittyKeyboard bool
}

// StartupModalMsg is sent on app start to trigger the welcome modal
type StartupModalMsg struct{}

// ReplyMsg is sent when a reply request completes for a conversation
type ReplyMsg struct {
	ConversationID string
	Prompt         string
	Response       *genai.Response
	Err            error
}

// SentTickMsg flips a pending user message to sent after the send delay
type SentTickMsg struct {
	ConversationID string
	MessageID      string
}

// VoiceResultMsg carries one recognition result from the capture session
type VoiceResultMsg speech.Result

// VoiceClosedMsg is sent when the capture session's result channel closes
type VoiceClosedMsg struct {
	Err error
}

// SpeechClipMsg is sent when synthesis of a message finishes. The ids are
// captured at request time so the clip attaches to the right message even
// after a conversation switch.
type SpeechClipMsg struct {
	ConversationID string
	MessageID      string
	Clip           *speech.Clip
	Err            error
}

// ExportDoneMsg is sent when a conversation export finishes
type ExportDoneMsg struct {
	Path string
	Err  error
}

// New creates a new app model
func New(cfg *config.Config, client genai.Client, recognizer speech.Recognizer, synthesizer speech.Synthesizer, version string) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	m := &Model{
		config:      cfg,
		version:     version,
		header:      ui.NewHeader(),
		footer:      ui.NewFooter(),
		browser:     ui.NewBrowser(),
		thread:      ui.NewThread(),
		input:       ui.NewInput(),
		modal:       ui.NewModal(),
		store:       chat.NewStore(),
		client:      client,
		recognizer:  recognizer,
		synthesizer: synthesizer,
		focus:       FocusBrowser,
		state:       StateIdle,
		inFlight:    make(map[string]bool),
	}

	m.header.SetModel(cfg.GetModel())
	m.browser.SetFocused(true)
	m.syncBrowser()

	return m
}

// CanSendMessage returns true if the user can send a new message
func (m *Model) CanSendMessage() bool {
	return m.input.CanSubmit()
}

// setState transitions to a new state with logging
func (m *Model) setState(newState AppState) {
	if m.state != newState {
		logger.Log("App: State transition %s -> %s", m.state, newState)
		m.state = newState
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		return StartupModalMsg{}
	}
}

// syncBrowser pushes the store's conversation list into the browser panel
func (m *Model) syncBrowser() {
	convs := m.store.Conversations()
	list := make([]chat.Conversation, len(convs))
	for i, c := range convs {
		list[i] = *c
	}
	m.browser.SetConversations(list)
	if id := m.store.ActiveID(); id != "" {
		m.browser.Select(id)
	}
}

// syncThread pushes the active conversation into the thread panel and header
func (m *Model) syncThread() {
	active := m.store.Active()
	if active == nil {
		m.thread.ClearConversation()
		m.header.SetConversationTitle("")
		m.input.SetInFlight(false)
		return
	}
	m.thread.SetMessages(active.Messages)
	m.thread.SetTitle(active.Title)
	m.header.SetConversationTitle(active.Title)
	m.thread.SetTyping(m.inFlight[active.ID])
	m.input.SetInFlight(m.inFlight[active.ID])
}

// openConversation makes the given conversation active and shows it in the
// thread panel.
func (m *Model) openConversation(id string) {
	if !m.store.SetActive(id) {
		return
	}
	active := m.store.Active()
	if active != nil {
		m.thread.SetConversation(active.Title, active.Messages)
		m.header.SetConversationTitle(active.Title)
		m.thread.SetTyping(m.inFlight[id])
		m.input.SetInFlight(m.inFlight[id])
	}
	m.browser.Select(id)
}

// newConversation creates a conversation and focuses the input
func (m *Model) newConversation() {
	conv := m.store.CreateConversation()
	m.syncBrowser()
	m.openConversation(conv.ID)
	m.setFocus(FocusThread)
}

// commitPendingRename commits an in-progress rename the same way the enter
// path does. Called when focus leaves the browser: losing focus commits.
func (m *Model) commitPendingRename() {
	if !m.browser.IsRenaming() {
		return
	}
	if id, title, ok := m.browser.CommitRename(); ok {
		if m.store.Rename(id, title) {
			m.syncBrowser()
			m.syncThread()
		}
	}
}

// setFocus moves focus to the given panel
func (m *Model) setFocus(focus Focus) {
	if focus != FocusBrowser {
		m.commitPendingRename()
	}
	m.focus = focus
	m.browser.SetFocused(focus == FocusBrowser)
	m.thread.SetFocused(focus == FocusThread)
	m.input.SetFocused(focus == FocusThread)
}

// toggleFocus switches between the browser and thread panels
func (m *Model) toggleFocus() {
	if m.focus == FocusBrowser {
		// Only switch into the thread when a conversation is open.
		if m.store.ActiveID() == "" {
			return
		}
		m.setFocus(FocusThread)
	} else {
		m.setFocus(FocusBrowser)
	}
}
