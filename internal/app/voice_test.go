package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/parley/parley/internal/chat"
	"github.com/parley/parley/internal/speech"
)

func voiceModel(t *testing.T) *Model {
	t.Helper()
	m := testModelWithSize(testConfig(), 100, 30)
	m = sendKey(m, "ctrl+n")
	return m
}

func TestVoice_StartEntersCaptureState(t *testing.T) {
	m := voiceModel(t)

	m = sendKey(m, "ctrl+v")

	if m.state != StateVoiceCapture {
		t.Fatalf("Expected voice capture state, got %s", m.state)
	}
	if m.voiceSession == nil {
		t.Fatal("Expected a live capture session")
	}
	if !m.input.VoiceActive() {
		t.Error("Expected input bar in capture mode")
	}
	m.stopVoiceSession()
}

func TestVoice_UnsupportedRecognizerFlashes(t *testing.T) {
	m := voiceModel(t)
	m.recognizer = &speech.MockRecognizer{Supported: false}

	m = sendKey(m, "ctrl+v")

	if m.state != StateIdle {
		t.Errorf("Expected idle state, got %s", m.state)
	}
	if !m.footer.HasFlash() {
		t.Error("Expected an unsupported-voice flash")
	}
}

func TestVoice_ResultsFeedTheDraft(t *testing.T) {
	m := voiceModel(t)
	m = sendKey(m, "ctrl+v")

	m.Update(VoiceResultMsg{Kind: speech.ResultInterim, Text: "hello wor"})
	if !strings.Contains(m.input.View(), "hello wor") {
		t.Error("Expected interim text in the capture display")
	}

	session := m.voiceSession
	m.Update(VoiceResultMsg{Kind: speech.ResultFinal, Text: "hello world"})
	m.Update(VoiceClosedMsg{})
	session.Stop()

	if m.state != StateIdle {
		t.Errorf("Expected idle state after close, got %s", m.state)
	}
	if m.input.VoiceActive() {
		t.Error("Expected capture mode ended")
	}
	if m.input.Value() != "hello world" {
		t.Errorf("Expected transcript in draft, got %q", m.input.Value())
	}
}

func TestVoice_TranscriptAppendsToExistingDraft(t *testing.T) {
	m := voiceModel(t)
	m = typeText(m, "Note:")
	m = sendKey(m, "ctrl+v")

	session := m.voiceSession
	m.Update(VoiceResultMsg{Kind: speech.ResultFinal, Text: "buy milk"})
	m.Update(VoiceClosedMsg{})
	session.Stop()

	if m.input.Value() != "Note: buy milk" {
		t.Errorf("Expected space-joined draft, got %q", m.input.Value())
	}
}

func TestVoice_TypingDisabledWhileCapturing(t *testing.T) {
	m := voiceModel(t)
	m = typeText(m, "draft")
	m = sendKey(m, "ctrl+v")

	m = typeText(m, "xyz")

	if m.input.Value() != "draft" {
		t.Errorf("Expected draft untouched during capture, got %q", m.input.Value())
	}
	m.stopVoiceSession()
}

func TestVoice_SubmitBlockedWhileCapturing(t *testing.T) {
	m := voiceModel(t)
	m = typeText(m, "ready to go")
	m = sendKey(m, "ctrl+v")

	if m.CanSendMessage() {
		t.Error("Expected submit disabled during capture")
	}
	m.stopVoiceSession()
}

func TestVoice_EscapeCancelsCapture(t *testing.T) {
	m := voiceModel(t)
	m = sendKey(m, "ctrl+v")

	m = sendKey(m, "esc")
	m.Update(VoiceClosedMsg{})

	if m.state != StateIdle {
		t.Errorf("Expected idle state after cancel, got %s", m.state)
	}
	if m.voiceSession != nil {
		t.Error("Expected session released")
	}
}

func seedAssistantReply(m *Model, convID, content string) chat.Message {
	conv, _ := m.store.Get(convID)
	reply := chat.NewAssistantMessage(content)
	m.store.AppendMessages(convID, append(conv.Messages, reply))
	m.syncThread()
	return reply
}

func TestSpeech_ClipAttachesToSpokenMessage(t *testing.T) {
	m := voiceModel(t)
	convID := m.store.ActiveID()
	reply := seedAssistantReply(m, convID, "Here is the answer.")

	m.Update(SpeechClipMsg{
		ConversationID: convID,
		MessageID:      reply.ID,
		Clip:           &speech.Clip{Ref: "mock://clip/1"},
	})

	conv, _ := m.store.Get(convID)
	got := conv.Messages[len(conv.Messages)-1]
	if !got.HasAudio {
		t.Error("Expected the spoken message marked as having audio")
	}
	if got.AudioRef != "mock://clip/1" {
		t.Errorf("Expected the clip reference recorded, got %q", got.AudioRef)
	}
	if !strings.Contains(m.RenderToString(), "audio") {
		t.Error("Expected an audio badge in the thread view")
	}
}

func TestSpeech_ClipFollowsOriginConversation(t *testing.T) {
	m := voiceModel(t)
	firstID := m.store.ActiveID()
	reply := seedAssistantReply(m, firstID, "First conversation reply.")

	m = sendKey(m, "ctrl+n")
	secondID := m.store.ActiveID()
	seedAssistantReply(m, secondID, "Second conversation reply.")

	m.Update(SpeechClipMsg{
		ConversationID: firstID,
		MessageID:      reply.ID,
		Clip:           &speech.Clip{Ref: "mock://clip/2"},
	})

	first, _ := m.store.Get(firstID)
	if !first.Messages[len(first.Messages)-1].HasAudio {
		t.Error("Expected the clip attached in its origin conversation")
	}
	second, _ := m.store.Get(secondID)
	if second.Messages[len(second.Messages)-1].HasAudio {
		t.Error("Expected the active conversation untouched")
	}
}

func TestSpeech_ClipErrorFlashesWithoutStamping(t *testing.T) {
	m := voiceModel(t)
	convID := m.store.ActiveID()
	reply := seedAssistantReply(m, convID, "Unspoken reply.")

	m.Update(SpeechClipMsg{
		ConversationID: convID,
		MessageID:      reply.ID,
		Err:            errors.New("tts down"),
	})

	conv, _ := m.store.Get(convID)
	if conv.Messages[len(conv.Messages)-1].HasAudio {
		t.Error("Expected no audio mark on synthesis failure")
	}
	if !m.footer.HasFlash() {
		t.Error("Expected a speech failure flash")
	}
}

func TestSpeech_ClipForDeletedConversationDropped(t *testing.T) {
	m := voiceModel(t)
	convID := m.store.ActiveID()
	reply := seedAssistantReply(m, convID, "Soon to be gone.")
	m.store.Delete(convID)
	m.syncBrowser()
	m.syncThread()

	m.Update(SpeechClipMsg{
		ConversationID: convID,
		MessageID:      reply.ID,
		Clip:           &speech.Clip{Ref: "mock://clip/3"},
	})

	if _, ok := m.store.Get(convID); ok {
		t.Fatal("Expected the conversation to stay deleted")
	}
}
