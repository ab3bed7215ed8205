// Package chat holds the in-memory conversation state: conversations, their
// message sequences, and the single active-conversation pointer. The Store is
// the source of truth for everything the UI renders; all mutations go through
// it so the active-conversation invariant can be enforced in one place.
package chat
