package ui

import (
	"testing"

	"github.com/parley/parley/internal/chat"
)

func threadWithMessages(n int) *Thread {
	th := NewThread()
	th.SetSize(80, 24)
	msgs := make([]chat.Message, 0, n)
	for i := 0; i < n; i++ {
		role := chat.RoleUser
		if i%2 == 1 {
			role = chat.RoleAssistant
		}
		msgs = append(msgs, chat.Message{ID: string(rune('a' + i)), Role: role, Content: "message"})
	}
	th.SetConversation("Test", msgs)
	return th
}

func TestEnterNavigationSetsCursorToNewest(t *testing.T) {
	th := threadWithMessages(5)
	th.EnterNavigation()

	if !th.InNavigation() {
		t.Fatal("not in navigation mode")
	}
	if th.NavIndex() != 4 {
		t.Errorf("cursor = %d, want 4", th.NavIndex())
	}
}

func TestEnterNavigationEmptyThreadIsNoOp(t *testing.T) {
	th := threadWithMessages(0)
	th.EnterNavigation()
	if th.InNavigation() {
		t.Error("navigation mode entered with no messages")
	}
}

func TestNavigationStepBounds(t *testing.T) {
	const n = 5
	th := threadWithMessages(n)
	th.EnterNavigation()

	for i := 0; i < n-1; i++ {
		th.StepUp()
	}
	if th.NavIndex() != 0 {
		t.Fatalf("cursor = %d after stepping to top, want 0", th.NavIndex())
	}
	th.StepUp()
	if th.NavIndex() != 0 {
		t.Errorf("cursor = %d, must floor at 0", th.NavIndex())
	}
	th.StepDown()
	if th.NavIndex() != 1 {
		t.Errorf("cursor = %d, want 1", th.NavIndex())
	}
	for i := 0; i < n*2; i++ {
		th.StepDown()
	}
	if th.NavIndex() != n-1 {
		t.Errorf("cursor = %d, must cap at %d", th.NavIndex(), n-1)
	}
}

func TestExitNavigationResumesFollow(t *testing.T) {
	th := threadWithMessages(3)
	th.EnterNavigation()
	th.ExitNavigation()
	if th.InNavigation() {
		t.Error("still in navigation after exit")
	}
	if !th.viewport.AtBottom() {
		t.Error("exit should scroll to the newest message")
	}
}

func TestNewMessagesAutoScrollInFollowOnly(t *testing.T) {
	th := threadWithMessages(30)
	// Follow mode: new message scrolls to bottom.
	th.viewport.SetYOffset(0)
	msgs := append(th.messages, chat.Message{ID: "new", Role: chat.RoleAssistant, Content: "hello"})
	th.SetMessages(msgs)
	if !th.viewport.AtBottom() {
		t.Error("follow mode should auto-scroll on new message")
	}

	// Navigation mode: new message must not move the scroll position.
	th.EnterNavigation()
	for i := 0; i < 29; i++ {
		th.StepUp()
	}
	if !th.viewport.AtTop() {
		t.Fatal("cursor at oldest message should scroll to the top")
	}
	msgs = append(th.messages, chat.Message{ID: "new2", Role: chat.RoleAssistant, Content: "world"})
	th.SetMessages(msgs)
	if th.viewport.AtBottom() {
		t.Error("navigation scroll jumped to bottom on new message")
	}
	if !th.InNavigation() {
		t.Error("navigation mode should survive new messages")
	}
}

func TestTypingIndicatorAutoScrollRespectsNavigation(t *testing.T) {
	th := threadWithMessages(30)
	th.EnterNavigation()
	for i := 0; i < 29; i++ {
		th.StepUp()
	}
	th.SetTyping(true)
	if th.viewport.AtBottom() {
		t.Errorf("typing toggle moved scroll in navigation mode")
	}

	th.ExitNavigation()
	th.viewport.SetYOffset(0)
	th.SetTyping(false)
	if !th.viewport.AtBottom() {
		t.Error("typing toggle should auto-scroll in follow mode")
	}
}

func TestSetMessagesClampsCursorOnShrink(t *testing.T) {
	th := threadWithMessages(5)
	th.EnterNavigation()
	th.SetMessages(th.messages[:2])
	if th.NavIndex() != 1 {
		t.Errorf("cursor = %d after shrink to 2, want 1", th.NavIndex())
	}
}

func TestCurrentMessage(t *testing.T) {
	th := threadWithMessages(3)

	msg, ok := th.CurrentMessage()
	if !ok || msg.ID != th.messages[2].ID {
		t.Errorf("follow mode current should be newest")
	}

	th.EnterNavigation()
	th.StepUp()
	msg, ok = th.CurrentMessage()
	if !ok || msg.ID != th.messages[1].ID {
		t.Errorf("navigation current should track cursor")
	}

	empty := threadWithMessages(0)
	if _, ok := empty.CurrentMessage(); ok {
		t.Error("empty thread should report no current message")
	}
}
