package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/parley/parley/internal/chat"
	perrors "github.com/parley/parley/internal/errors"
	"github.com/parley/parley/internal/genai"
	"github.com/parley/parley/internal/logger"
	"github.com/parley/parley/internal/notification"
	"github.com/parley/parley/internal/ui"
)

// SentDelay is how long an outgoing message shows as sending before it is
// marked sent. The flip is cosmetic and independent of the reply round trip.
const SentDelay = 300 * time.Millisecond

// GenerateTimeout bounds a single reply round trip.
const GenerateTimeout = 60 * time.Second

// sendMessage submits the input draft to the active conversation and kicks
// off the reply request. The conversation id is captured at send time, so a
// reply lands in the right place even if the user switches away mid-flight.
func (m *Model) sendMessage() (tea.Model, tea.Cmd) {
	prompt, ok := m.input.Submit()
	if !ok {
		return m, nil
	}

	if m.store.ActiveID() == "" {
		m.store.CreateConversation()
		m.syncBrowser()
	}
	conv := m.store.Active()
	if conv == nil {
		return m, m.ShowFlashError("No conversation to send to")
	}
	convID := conv.ID

	userMsg := chat.NewUserMessage(prompt)
	m.store.AppendMessages(convID, append(conv.Messages, userMsg))

	m.inFlight[convID] = true
	m.input.SetInFlight(true)
	m.thread.SetTyping(true)
	m.setState(StateWaitingReply)
	m.syncThread()
	m.updateSizes()

	logger.Log("App: Sending message %s on conversation %s", userMsg.ID, convID)

	return m, tea.Batch(
		m.sentTickCmd(convID, userMsg.ID),
		m.generateCmd(convID, prompt),
		ui.TypingTick(),
	)
}

// sentTickCmd schedules the sending -> sent status flip for a user message.
func (m *Model) sentTickCmd(conversationID, messageID string) tea.Cmd {
	return tea.Tick(SentDelay, func(time.Time) tea.Msg {
		return SentTickMsg{ConversationID: conversationID, MessageID: messageID}
	})
}

// generateCmd runs the reply round trip off the UI loop.
func (m *Model) generateCmd(conversationID, prompt string) tea.Cmd {
	client := m.client
	model := m.config.GetModel()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), GenerateTimeout)
		defer cancel()

		resp, err := client.Generate(ctx, &genai.Request{Prompt: prompt, Model: model})
		return ReplyMsg{ConversationID: conversationID, Prompt: prompt, Response: resp, Err: err}
	}
}

// handleSentTick marks the identified user message as sent. A message that
// already reconciled to sent or error is left alone.
func (m *Model) handleSentTick(msg SentTickMsg) {
	conv, ok := m.store.Get(msg.ConversationID)
	if !ok {
		return
	}
	messages := make([]chat.Message, len(conv.Messages))
	copy(messages, conv.Messages)
	changed := false
	for i, message := range messages {
		if message.ID == msg.MessageID && message.Status == chat.StatusSending {
			messages[i] = message.WithStatus(chat.StatusSent)
			changed = true
		}
	}
	if !changed {
		return
	}
	m.store.AppendMessages(msg.ConversationID, messages)
	if msg.ConversationID == m.store.ActiveID() {
		m.syncThread()
	}
}

// handleReply reconciles a finished reply round trip into its conversation.
func (m *Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	delete(m.inFlight, msg.ConversationID)
	if len(m.inFlight) == 0 {
		m.setState(StateIdle)
	}

	var cmd tea.Cmd
	conv, ok := m.store.Get(msg.ConversationID)
	if !ok {
		logger.Log("App: Reply for deleted conversation %s, dropping", msg.ConversationID)
	} else if msg.Err != nil {
		logger.Error("App: Generate failed on %s: %v", msg.ConversationID, msg.Err)
		m.store.AppendMessages(msg.ConversationID, markUserMessages(conv.Messages, chat.StatusError))
		cmd = m.ShowFlashError(replyErrorText(msg.Err))
	} else {
		messages := markUserMessages(conv.Messages, chat.StatusSent)
		messages = append(messages, chat.NewAssistantMessage(msg.Response.Content))
		m.store.AppendMessages(msg.ConversationID, messages)
		m.store.UpdateMetadata(msg.ConversationID, msg.Prompt)

		if msg.ConversationID != m.store.ActiveID() && m.config.GetNotificationsEnabled() {
			if err := notification.ReplyReceived(conv.Title); err != nil {
				logger.Log("App: Notification failed: %v", err)
			}
		}
	}

	m.syncBrowser()
	m.syncThread()
	m.updateSizes()
	return m, cmd
}

// markUserMessages returns a copy with every still-sending user message
// stamped with the given status.
func markUserMessages(messages []chat.Message, status chat.Status) []chat.Message {
	out := make([]chat.Message, len(messages))
	copy(out, messages)
	for i, message := range out {
		if message.Role == chat.RoleUser && message.Status == chat.StatusSending {
			out[i] = message.WithStatus(status)
		}
	}
	return out
}

// replyErrorText maps a reply failure to a short flash line.
func replyErrorText(err error) string {
	switch perrors.GetKind(err) {
	case perrors.KindTimeout:
		return "Reply timed out, message kept as draft history"
	case perrors.KindTransport:
		return "Network error, could not reach the model"
	case perrors.KindConfig:
		return "Model not configured, check settings"
	default:
		return "Reply failed: " + err.Error()
	}
}
