package service

import (
	"log"
	"sync"

	"hypewear-studio/canvas"
	"hypewear-studio/models"

	"github.com/google/uuid"
)

// StudioService keeps the live composition sessions. Sessions are ephemeral
// and in-memory only: a design leaves the studio exclusively as a snapshot at
// cart packaging. One client drives one session; the registry lock only
// guards the session map, the per-entry lock serializes operations on a
// single session against overlapping HTTP requests.
type StudioService struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session *canvas.Session
}

// NewStudioService creates a new StudioService
func NewStudioService() *StudioService {
	return &StudioService{sessions: make(map[string]*sessionEntry)}
}

// Open creates an empty session and returns its id
func (s *StudioService) Open() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &sessionEntry{session: canvas.NewSession()}
	s.mu.Unlock()
	log.Printf("🎨 Open: studio session %s opened", id)
	return id
}

// Close tears down a session. Any in-flight drag bookkeeping goes with it;
// there are no dangling listeners firing against a torn-down session.
func (s *StudioService) Close(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	log.Printf("🎨 Close: studio session %s closed", id)
}

// With runs fn against one session while holding its lock. Returns a
// NotFoundError for unknown session ids.
func (s *StudioService) With(id string, fn func(*canvas.Session)) error {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return &models.NotFoundError{Resource: "studio session", ID: id}
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.session)
	return nil
}

// Snapshot returns an immutable copy of a session's design state
func (s *StudioService) Snapshot(id string) (*models.DesignState, error) {
	var snap *models.DesignState
	err := s.With(id, func(sess *canvas.Session) {
		snap = sess.Snapshot()
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
