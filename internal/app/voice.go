package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/parley/parley/internal/chat"
	perrors "github.com/parley/parley/internal/errors"
	"github.com/parley/parley/internal/logger"
	"github.com/parley/parley/internal/speech"
)

// startVoiceCapture acquires the microphone and switches the input bar into
// capture mode. Text submission stays disabled until the session ends.
func (m *Model) startVoiceCapture() (tea.Model, tea.Cmd) {
	if m.recognizer == nil || !m.recognizer.Available() {
		return m, m.ShowFlashWarning("Voice input is not supported on this system")
	}
	if m.voiceSession != nil {
		return m, nil
	}

	session, err := m.recognizer.Start(context.Background())
	if err != nil {
		switch perrors.GetKind(err) {
		case perrors.KindPermission:
			return m, m.ShowFlashError("Microphone access denied")
		case perrors.KindCapability:
			return m, m.ShowFlashWarning("Voice input is not supported on this system")
		default:
			return m, m.ShowFlashError("Could not start voice capture: " + err.Error())
		}
	}

	m.voiceSession = session
	m.input.StartVoice()
	m.setState(StateVoiceCapture)
	m.updateSizes()
	return m, m.listenVoiceCmd(session)
}

// listenVoiceCmd waits for the next recognition event. A closed channel means
// the session ended and Err carries the reason, if any.
func (m *Model) listenVoiceCmd(session speech.Session) tea.Cmd {
	return func() tea.Msg {
		result, ok := <-session.Results()
		if !ok {
			return VoiceClosedMsg{Err: session.Err()}
		}
		return VoiceResultMsg(result)
	}
}

// handleVoiceResult feeds interim hypotheses into the capture display and
// the final transcript into the draft.
func (m *Model) handleVoiceResult(msg VoiceResultMsg) (tea.Model, tea.Cmd) {
	if m.voiceSession == nil {
		return m, nil
	}
	switch msg.Kind {
	case speech.ResultInterim:
		m.input.SetInterim(msg.Text)
	case speech.ResultFinal:
		m.input.AppendTranscript(msg.Text)
	}
	return m, m.listenVoiceCmd(m.voiceSession)
}

// handleVoiceClosed tears down capture state once the session's stream ends.
func (m *Model) handleVoiceClosed(msg VoiceClosedMsg) (tea.Model, tea.Cmd) {
	if m.voiceSession == nil {
		return m, nil
	}
	m.voiceSession = nil
	m.input.StopVoice()
	if m.state == StateVoiceCapture {
		m.setState(StateIdle)
	}
	m.updateSizes()
	if msg.Err != nil {
		logger.Error("App: Voice session failed: %v", msg.Err)
		if perrors.GetKind(msg.Err) == perrors.KindAudio {
			return m, m.ShowFlashError("Audio device error, capture stopped")
		}
		return m, m.ShowFlashError("Voice capture failed: " + msg.Err.Error())
	}
	return m, nil
}

// finishVoiceCapture stops the session and keeps whatever transcript already
// landed in the draft. The close event does the rest of the teardown.
func (m *Model) finishVoiceCapture() (tea.Model, tea.Cmd) {
	if m.voiceSession == nil {
		return m, nil
	}
	m.voiceSession.Stop()
	return m, nil
}

// cancelVoiceCapture stops the session and discards the interim display.
func (m *Model) cancelVoiceCapture() (tea.Model, tea.Cmd) {
	if m.voiceSession == nil {
		return m, nil
	}
	m.input.SetInterim("")
	m.voiceSession.Stop()
	return m, nil
}

// handleSpeechClip attaches a finished clip to the message it was spoken
// from, keyed by the captured conversation id.
func (m *Model) handleSpeechClip(msg SpeechClipMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.ShowFlashError("Speech failed: " + msg.Err.Error())
	}

	conv, ok := m.store.Get(msg.ConversationID)
	if !ok {
		logger.Log("App: Clip for deleted conversation %s, dropping", msg.ConversationID)
		return m, nil
	}
	messages := make([]chat.Message, len(conv.Messages))
	copy(messages, conv.Messages)
	for i, message := range messages {
		if message.ID == msg.MessageID {
			messages[i].HasAudio = true
			messages[i].AudioRef = msg.Clip.Ref
		}
	}
	m.store.AppendMessages(msg.ConversationID, messages)
	if msg.ConversationID == m.store.ActiveID() {
		m.syncThread()
	}
	return m, m.ShowFlashSuccess("Reading message aloud")
}

// stopVoiceSession releases the microphone on shutdown paths.
func (m *Model) stopVoiceSession() {
	if m.voiceSession != nil {
		m.voiceSession.Stop()
		m.voiceSession = nil
	}
}

// speakCurrentMessage synthesizes the navigated message in the configured
// voice style.
func (m *Model) speakCurrentMessage() (tea.Model, tea.Cmd) {
	message, ok := m.thread.CurrentMessage()
	if !ok || m.synthesizer == nil {
		return m, nil
	}
	style := speech.VoiceStyle(m.config.GetVoiceStyle())
	synth := m.synthesizer
	convID := m.store.ActiveID()
	msgID := message.ID
	text := message.Content
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), GenerateTimeout)
		defer cancel()

		clip, err := synth.Synthesize(ctx, text, style)
		return SpeechClipMsg{ConversationID: convID, MessageID: msgID, Clip: clip, Err: err}
	}
}
