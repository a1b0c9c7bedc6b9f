package agent

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"dineflow/models"
)

// Conversation is one user's dialogue with the assistant. The mutex
// serializes turns so concurrent requests for the same conversation cannot
// interleave slot updates.
type Conversation struct {
	ID         string
	CreatedAt  time.Time
	Session    *models.BookingSession
	Transcript []models.ChatTurn

	mu sync.Mutex
}

// Reset clears the booking slots but keeps the conversation and its
// transcript.
func (c *Conversation) Reset() {
	c.Session.Reset()
}

// SessionStore keeps conversations in process memory. State does not survive
// a restart.
type SessionStore struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
}

func NewSessionStore() *SessionStore {
	return &SessionStore{conversations: make(map[string]*Conversation)}
}

// Create registers a fresh conversation under a random ID.
func (s *SessionStore) Create() *Conversation {
	conv := &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Session:   models.NewBookingSession(),
	}
	s.mu.Lock()
	s.conversations[conv.ID] = conv
	s.mu.Unlock()
	return conv
}

func (s *SessionStore) Get(id string) (*Conversation, bool) {
	s.mu.RLock()
	conv, ok := s.conversations[id]
	s.mu.RUnlock()
	return conv, ok
}

// GetOrCreate returns the conversation for id, registering a new session
// under that id when the server has never seen it.
func (s *SessionStore) GetOrCreate(id string) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conv, ok := s.conversations[id]; ok {
		return conv
	}
	conv := &Conversation{
		ID:        id,
		CreatedAt: time.Now(),
		Session:   models.NewBookingSession(),
	}
	s.conversations[id] = conv
	return conv
}
