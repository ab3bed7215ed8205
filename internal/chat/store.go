package chat

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/parley/parley/internal/logger"
)

// DefaultTitle is the sentinel title of a freshly created conversation.
// UpdateMetadata only derives a title while this sentinel is still in place.
const DefaultTitle = "New Conversation"

// PreviewLength is the maximum number of characters kept in a conversation
// preview before truncation.
const PreviewLength = 50

// TitleWordCount is how many leading words of the first message are used to
// derive a conversation title.
const TitleWordCount = 4

// Store is the in-memory conversation collection. It maintains the invariant
// that exactly one conversation is active when the collection is non-empty,
// and none is active when it is empty.
//
// Mutations may arrive from command goroutines completing out of order, so
// access is guarded by a mutex even though the UI itself is single-threaded.
type Store struct {
	mu            sync.RWMutex
	conversations []*Conversation
	activeID      string
}

// NewStore returns an empty store with no active conversation.
func NewStore() *Store {
	return &Store{}
}

// CreateConversation inserts a new conversation at the front of the
// collection and makes it active.
func (s *Store) CreateConversation() *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := &Conversation{
		ID:           uuid.New().String(),
		Title:        DefaultTitle,
		LastActivity: time.Now(),
		Messages:     []Message{},
	}
	s.conversations = append([]*Conversation{conv}, s.conversations...)
	s.activeID = conv.ID
	logger.Log("Store: Created conversation %s", conv.ID)
	return conv
}

// AppendMessages replaces the target conversation's message sequence
// wholesale with the provided sequence. Callers present the full desired
// sequence; this models optimistic insert followed by reconcile rather than
// incremental append. A missing conversation id is a silent no-op.
func (s *Store) AppendMessages(conversationID string, messages []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.find(conversationID)
	if conv == nil {
		logger.Log("Store: AppendMessages on absent conversation %s, ignoring", conversationID)
		return
	}
	conv.Messages = messages
}

// UpdateMetadata refreshes the conversation's preview and activity timestamp
// from the latest message text. While the title is still the default
// sentinel, a title is derived from the first words of the text.
func (s *Store) UpdateMetadata(conversationID, lastMessageText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.find(conversationID)
	if conv == nil {
		return
	}

	conv.Preview = truncate(lastMessageText, PreviewLength)
	conv.LastActivity = time.Now()
	if conv.Title == DefaultTitle {
		conv.Title = deriveTitle(lastMessageText)
	}
}

// Rename sets a conversation's title to the trimmed input. Empty or
// whitespace-only titles are rejected. Returns whether the rename applied.
func (s *Store) Rename(conversationID, title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return false
	}
	conv := s.find(conversationID)
	if conv == nil {
		return false
	}
	conv.Title = trimmed
	return true
}

// Delete removes a conversation. If it was active, the first remaining
// conversation (by current order) becomes active, or none if the collection
// is now empty. Returns whether a conversation was removed.
func (s *Store) Delete(conversationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, conv := range s.conversations {
		if conv.ID == conversationID {
			s.conversations = append(s.conversations[:i], s.conversations[i+1:]...)
			if s.activeID == conversationID {
				if len(s.conversations) > 0 {
					s.activeID = s.conversations[0].ID
				} else {
					s.activeID = ""
				}
			}
			logger.Log("Store: Deleted conversation %s, active now %q", conversationID, s.activeID)
			return true
		}
	}
	return false
}

// TogglePin flips a conversation's pinned flag. Returns the new pinned state
// and whether the conversation was found.
func (s *Store) TogglePin(conversationID string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.find(conversationID)
	if conv == nil {
		return false, false
	}
	conv.Pinned = !conv.Pinned
	return conv.Pinned, true
}

// Clear empties the collection and unsets the active conversation.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = nil
	s.activeID = ""
	logger.Log("Store: Cleared all conversations")
}

// SetActive makes the given conversation active. A missing id is a no-op.
func (s *Store) SetActive(conversationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(conversationID) == nil {
		return false
	}
	s.activeID = conversationID
	return true
}

// ActiveID returns the active conversation id, or empty if the collection
// is empty.
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Active returns a snapshot of the active conversation, or nil.
func (s *Store) Active() *Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv := s.find(s.activeID)
	if conv == nil {
		return nil
	}
	return snapshot(conv)
}

// Get returns a snapshot of the conversation with the given id.
func (s *Store) Get(conversationID string) (*Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv := s.find(conversationID)
	if conv == nil {
		return nil, false
	}
	return snapshot(conv), true
}

// Conversations returns snapshots of all conversations in collection order.
func (s *Store) Conversations() []*Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Conversation, len(s.conversations))
	for i, conv := range s.conversations {
		out[i] = snapshot(conv)
	}
	return out
}

// Len returns the number of conversations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

// Search returns conversations whose title or preview contains the query as
// a case-insensitive substring, in collection order. An empty query matches
// everything.
func (s *Store) Search(query string) []*Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Conversation
	for _, conv := range s.conversations {
		if conv.Matches(query) {
			out = append(out, snapshot(conv))
		}
	}
	return out
}

// Partition splits conversations into pinned and unpinned groups, each
// preserving collection order.
func (s *Store) Partition() (pinned, unpinned []*Conversation) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conv := range s.conversations {
		if conv.Pinned {
			pinned = append(pinned, snapshot(conv))
		} else {
			unpinned = append(unpinned, snapshot(conv))
		}
	}
	return pinned, unpinned
}

// find returns the live conversation with the given id. Caller holds the lock.
func (s *Store) find(conversationID string) *Conversation {
	for _, conv := range s.conversations {
		if conv.ID == conversationID {
			return conv
		}
	}
	return nil
}

// snapshot copies a conversation, including its message slice, so callers
// cannot mutate store state through the returned pointer.
func snapshot(conv *Conversation) *Conversation {
	c := *conv
	c.Messages = make([]Message, len(conv.Messages))
	copy(c.Messages, conv.Messages)
	return &c
}

// truncate shortens s to max runes, appending an ellipsis when it cuts.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// deriveTitle builds a title from the first few words of the text.
func deriveTitle(text string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return DefaultTitle
	}
	if len(words) <= TitleWordCount {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:TitleWordCount], " ") + "..."
}
