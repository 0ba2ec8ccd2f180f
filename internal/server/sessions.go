package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/arbor/internal/llm"
)

type chatSession struct {
	history  []llm.Message
	lastSeen time.Time
}

// chatSessions keeps chat histories for clients that do not send their
// own. Sessions idle longer than ttl are dropped on the next access.
type chatSessions struct {
	mu       sync.Mutex
	sessions map[string]*chatSession
	ttl      time.Duration
	now      func() time.Time
}

func newChatSessions(ttl time.Duration, now func() time.Time) *chatSessions {
	return &chatSessions{
		sessions: make(map[string]*chatSession),
		ttl:      ttl,
		now:      now,
	}
}

// history returns a copy of the session's history, or nil for an unknown
// or expired id.
func (c *chatSessions) history(id string) []llm.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked()

	s, ok := c.sessions[id]
	if !ok {
		return nil
	}
	s.lastSeen = c.now()
	return append([]llm.Message(nil), s.history...)
}

// save stores history under id, minting a new id when id is empty.
func (c *chatSessions) save(id string, history []llm.Message) string {
	if id == "" {
		id = uuid.NewString()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[id] = &chatSession{
		history:  append([]llm.Message(nil), history...),
		lastSeen: c.now(),
	}
	return id
}

func (c *chatSessions) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

func (c *chatSessions) pruneLocked() {
	if c.ttl <= 0 {
		return
	}
	cutoff := c.now().Add(-c.ttl)
	for id, s := range c.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(c.sessions, id)
		}
	}
}
