// Package store holds the in-memory session state: one pipeline graph per
// editing session. Nothing is persisted; a restart wipes the board, which
// is the intended tycoon-game semantics.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"etl-tycoon/internal/engine"
	"etl-tycoon/internal/graph"
	"etl-tycoon/internal/model"
)

// ErrSessionNotFound is returned for unknown session IDs.
var ErrSessionNotFound = errors.New("session not found")

// Session is one player's editing context. The graph is owned by the
// store and only touched under its lock; analysis runs against a spec
// snapshot so long passes never hold up edits.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	graph *graph.PipelineGraph

	// LastAnalysis caches the most recent full pass for the UI.
	LastAnalysis *engine.Analysis `json:"last_analysis,omitempty"`
}

// SessionStore serializes access to all sessions. The core itself is
// single-threaded; this is the host-side serialization the game needs so
// concurrent HTTP requests cannot mutate a graph mid-analysis.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create starts a new session with an empty pipeline.
func (s *SessionStore) Create(name string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	sess := &Session{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		graph:     graph.New(),
	}
	s.sessions[sess.ID] = sess
	return sess
}

// List returns all sessions, newest first.
func (s *SessionStore) List() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

// Delete removes a session.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Spec returns the descriptor snapshot of a session's pipeline.
func (s *SessionStore) Spec(id string) (model.PipelineSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return model.PipelineSpec{}, ErrSessionNotFound
	}
	spec := sess.graph.ToSpec()
	spec.Name = sess.Name
	return spec, nil
}

// Session returns session metadata (without the live graph).
func (s *SessionStore) Session(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// AddBlock places a block on the session's board.
func (s *SessionStore) AddBlock(id string, b model.Block) error {
	return s.mutate(id, func(g *graph.PipelineGraph) error {
		return g.AddBlock(b)
	})
}

// RemoveBlock removes a block, cascading to its connections.
func (s *SessionStore) RemoveBlock(id, blockID string) error {
	return s.mutate(id, func(g *graph.PipelineGraph) error {
		return g.RemoveBlock(blockID)
	})
}

// UpdateBlockConfig replaces a block's configuration.
func (s *SessionStore) UpdateBlockConfig(id, blockID string, cfg map[string]interface{}) error {
	return s.mutate(id, func(g *graph.PipelineGraph) error {
		return g.UpdateBlockConfig(blockID, cfg)
	})
}

// AddConnection wires two blocks together and returns the stored
// connection (with its assigned ID).
func (s *SessionStore) AddConnection(id string, c model.Connection) (model.Connection, error) {
	var stored model.Connection
	err := s.mutate(id, func(g *graph.PipelineGraph) error {
		var err error
		stored, err = g.AddConnection(c)
		return err
	})
	return stored, err
}

// RemoveConnection removes a connection by ID.
func (s *SessionStore) RemoveConnection(id, connID string) error {
	return s.mutate(id, func(g *graph.PipelineGraph) error {
		return g.RemoveConnection(connID)
	})
}

// Analyze runs a full validate-simulate-score pass over a snapshot of
// the session's pipeline and caches the result on the session.
func (s *SessionStore) Analyze(id string, eng *engine.Engine) (engine.Analysis, error) {
	spec, err := s.Spec(id)
	if err != nil {
		return engine.Analysis{}, err
	}

	// the snapshot keeps the pass pure even if edits land concurrently
	snapshot, err := graph.FromSpec(spec)
	if err != nil {
		return engine.Analysis{}, err
	}
	analysis := eng.Analyze(snapshot)

	s.mu.Lock()
	if sess, ok := s.sessions[id]; ok {
		sess.LastAnalysis = &analysis
		sess.UpdatedAt = time.Now().UTC()
	}
	s.mu.Unlock()
	return analysis, nil
}

func (s *SessionStore) mutate(id string, fn func(*graph.PipelineGraph) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if err := fn(sess.graph); err != nil {
		return err
	}
	sess.UpdatedAt = time.Now().UTC()
	return nil
}
