package agent

import "sync"

// MaxContextTurns caps per-session conversational memory; the oldest
// turns are evicted first.
const MaxContextTurns = 10

// Turn is one message in a conversation.
type Turn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ContextStore keeps the recent turns of each session in process memory.
// Sessions never expire by time; everything is lost on restart, which is
// accepted behavior for conversational history.
//
// The map itself is mutex-guarded. Appends for the same session from
// concurrent requests can still interleave in arrival order, which is
// harmless for history trimming.
type ContextStore struct {
	mu       sync.Mutex
	sessions map[string][]Turn
}

// NewContextStore creates an empty context store.
func NewContextStore() *ContextStore {
	return &ContextStore{
		sessions: make(map[string][]Turn),
	}
}

// Append adds a turn to the session, evicting the oldest turns beyond
// MaxContextTurns.
func (s *ContextStore) Append(sessionID string, turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.sessions[sessionID], turn)
	if len(turns) > MaxContextTurns {
		turns = turns[len(turns)-MaxContextTurns:]
	}
	s.sessions[sessionID] = turns
}

// Get returns a copy of the session's turns, oldest first.
func (s *ContextStore) Get(sessionID string) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.sessions[sessionID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// Sessions returns the number of sessions currently held.
func (s *ContextStore) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
