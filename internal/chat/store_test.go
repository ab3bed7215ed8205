package chat

import (
	"strings"
	"testing"
)

func TestCreateConversationFrontInsert(t *testing.T) {
	s := NewStore()
	first := s.CreateConversation()
	second := s.CreateConversation()

	convs := s.Conversations()
	if len(convs) != 2 {
		t.Fatalf("len = %d, want 2", len(convs))
	}
	if convs[0].ID != second.ID {
		t.Errorf("newest conversation should be first, got %s", convs[0].ID)
	}
	if convs[1].ID != first.ID {
		t.Errorf("older conversation should be second, got %s", convs[1].ID)
	}
	if s.ActiveID() != second.ID {
		t.Errorf("active = %s, want newest %s", s.ActiveID(), second.ID)
	}
	if second.Title != DefaultTitle {
		t.Errorf("title = %q, want %q", second.Title, DefaultTitle)
	}
	if second.Pinned {
		t.Error("new conversation should not be pinned")
	}
}

func TestAppendMessagesReplacesWholesale(t *testing.T) {
	s := NewStore()
	conv := s.CreateConversation()

	s.AppendMessages(conv.ID, []Message{NewUserMessage("one")})
	s.AppendMessages(conv.ID, []Message{
		NewUserMessage("one").WithStatus(StatusSent),
		NewAssistantMessage("two"),
	})

	got, _ := s.Get(conv.ID)
	if len(got.Messages) != 2 {
		t.Fatalf("len = %d, want 2 (replace, not append)", len(got.Messages))
	}
	if got.Messages[0].Status != StatusSent {
		t.Errorf("status = %q, want sent", got.Messages[0].Status)
	}
}

func TestAppendMessagesAbsentIDIsNoOp(t *testing.T) {
	s := NewStore()
	conv := s.CreateConversation()
	s.AppendMessages("no-such-id", []Message{NewUserMessage("hi")})

	got, _ := s.Get(conv.ID)
	if len(got.Messages) != 0 {
		t.Errorf("existing conversation mutated by absent-id append")
	}
}

func TestUpdateMetadata(t *testing.T) {
	t.Run("derives title from first four words", func(t *testing.T) {
		s := NewStore()
		conv := s.CreateConversation()
		s.UpdateMetadata(conv.ID, "Hello world this is a test")

		got, _ := s.Get(conv.ID)
		if got.Title != "Hello world this is..." {
			t.Errorf("title = %q, want %q", got.Title, "Hello world this is...")
		}
		if got.Preview != "Hello world this is a test" {
			t.Errorf("preview = %q", got.Preview)
		}
	})

	t.Run("short text keeps full title without ellipsis", func(t *testing.T) {
		s := NewStore()
		conv := s.CreateConversation()
		s.UpdateMetadata(conv.ID, "Hi there")

		got, _ := s.Get(conv.ID)
		if got.Title != "Hi there" {
			t.Errorf("title = %q, want %q", got.Title, "Hi there")
		}
	})

	t.Run("preview truncated to 50 characters with ellipsis", func(t *testing.T) {
		s := NewStore()
		conv := s.CreateConversation()
		long := strings.Repeat("a", 80)
		s.UpdateMetadata(conv.ID, long)

		got, _ := s.Get(conv.ID)
		want := strings.Repeat("a", 50) + "..."
		if got.Preview != want {
			t.Errorf("preview = %q, want %q", got.Preview, want)
		}
	})

	t.Run("custom title is not overwritten", func(t *testing.T) {
		s := NewStore()
		conv := s.CreateConversation()
		s.Rename(conv.ID, "My Chat")
		s.UpdateMetadata(conv.ID, "something entirely different here")

		got, _ := s.Get(conv.ID)
		if got.Title != "My Chat" {
			t.Errorf("title = %q, want %q", got.Title, "My Chat")
		}
	})
}

func TestRename(t *testing.T) {
	s := NewStore()
	conv := s.CreateConversation()

	if !s.Rename(conv.ID, "  Trimmed Title  ") {
		t.Fatal("rename rejected valid title")
	}
	got, _ := s.Get(conv.ID)
	if got.Title != "Trimmed Title" {
		t.Errorf("title = %q, want %q", got.Title, "Trimmed Title")
	}

	if s.Rename(conv.ID, "   ") {
		t.Error("whitespace-only rename should be rejected")
	}
	got, _ = s.Get(conv.ID)
	if got.Title != "Trimmed Title" {
		t.Errorf("title changed by rejected rename: %q", got.Title)
	}

	if s.Rename("no-such-id", "Name") {
		t.Error("rename of absent conversation should return false")
	}
}

func TestDeleteReassignsActive(t *testing.T) {
	s := NewStore()
	a := s.CreateConversation()
	b := s.CreateConversation()
	c := s.CreateConversation()
	// Order is now [c, b, a], active = c.

	if !s.Delete(c.ID) {
		t.Fatal("delete returned false")
	}
	if s.ActiveID() != b.ID {
		t.Errorf("active = %s, want first remaining %s", s.ActiveID(), b.ID)
	}

	// Deleting a non-active conversation leaves active alone.
	s.Delete(a.ID)
	if s.ActiveID() != b.ID {
		t.Errorf("active changed by deleting non-active conversation")
	}

	// Deleting the last one unsets active.
	s.Delete(b.ID)
	if s.ActiveID() != "" {
		t.Errorf("active = %q, want empty after deleting last", s.ActiveID())
	}
	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}
}

func TestActiveInvariantUnderMutationSequences(t *testing.T) {
	s := NewStore()
	checkInvariant := func(step string) {
		t.Helper()
		active := s.ActiveID()
		if s.Len() == 0 {
			if active != "" {
				t.Fatalf("%s: active %q set on empty collection", step, active)
			}
			return
		}
		if active == "" {
			t.Fatalf("%s: no active id with non-empty collection", step)
		}
		if _, ok := s.Get(active); !ok {
			t.Fatalf("%s: active id %s refers to absent conversation", step, active)
		}
	}

	checkInvariant("empty")
	a := s.CreateConversation()
	b := s.CreateConversation()
	checkInvariant("created")
	s.TogglePin(a.ID)
	checkInvariant("pinned")
	s.Rename(b.ID, "renamed")
	checkInvariant("renamed")
	s.Delete(b.ID)
	checkInvariant("deleted active")
	s.TogglePin(a.ID)
	s.Delete(a.ID)
	checkInvariant("deleted last")
}

func TestTogglePin(t *testing.T) {
	s := NewStore()
	conv := s.CreateConversation()

	pinned, ok := s.TogglePin(conv.ID)
	if !ok || !pinned {
		t.Errorf("TogglePin = (%v, %v), want (true, true)", pinned, ok)
	}
	pinned, ok = s.TogglePin(conv.ID)
	if !ok || pinned {
		t.Errorf("second TogglePin = (%v, %v), want (false, true)", pinned, ok)
	}
	if _, ok := s.TogglePin("absent"); ok {
		t.Error("TogglePin on absent conversation should report not found")
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.CreateConversation()
	s.CreateConversation()
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}
	if s.ActiveID() != "" {
		t.Errorf("active = %q, want empty", s.ActiveID())
	}
}

func TestSearch(t *testing.T) {
	s := NewStore()
	conv := s.CreateConversation()
	s.Rename(conv.ID, "Q3 Budget")
	s.UpdateMetadata(conv.ID, "discuss budget")

	other := s.CreateConversation()
	s.Rename(other.ID, "Vacation plans")
	s.UpdateMetadata(other.ID, "beach ideas")

	got := s.Search("budget")
	if len(got) != 1 || got[0].ID != conv.ID {
		t.Errorf("Search(budget) = %d results, want the budget conversation", len(got))
	}

	if got := s.Search("BUDGET"); len(got) != 1 {
		t.Errorf("search should be case-insensitive, got %d results", len(got))
	}

	if got := s.Search(""); len(got) != 2 {
		t.Errorf("empty query should match all, got %d", len(got))
	}

	if got := s.Search("zebra"); len(got) != 0 {
		t.Errorf("non-matching query returned %d results", len(got))
	}
}

func TestPartition(t *testing.T) {
	s := NewStore()
	a := s.CreateConversation()
	b := s.CreateConversation()
	c := s.CreateConversation()
	// Order [c, b, a].
	s.TogglePin(a.ID)
	s.TogglePin(c.ID)

	pinned, unpinned := s.Partition()
	if len(pinned) != 2 || pinned[0].ID != c.ID || pinned[1].ID != a.ID {
		t.Errorf("pinned partition out of order")
	}
	if len(unpinned) != 1 || unpinned[0].ID != b.ID {
		t.Errorf("unpinned partition wrong")
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	s := NewStore()
	conv := s.CreateConversation()
	s.AppendMessages(conv.ID, []Message{NewUserMessage("hi")})

	got, _ := s.Get(conv.ID)
	got.Messages[0].Content = "mutated"
	got.Title = "mutated"

	fresh, _ := s.Get(conv.ID)
	if fresh.Messages[0].Content != "hi" || fresh.Title != DefaultTitle {
		t.Error("snapshot mutation leaked into store")
	}
}
