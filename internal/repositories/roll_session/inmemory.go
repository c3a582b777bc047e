package rollsession

import (
	"context"
	"sync"

	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
	"github.com/KirkDiggler/bt-ship-roller/internal/pkg/clock"
)

// InMemoryRepository implements Repository in process memory, for the CLI and
// servers running without Redis. Expired sessions are dropped lazily.
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]*Session
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository. A nil clock uses real time.
func NewInMemory(clk clock.Clock) *InMemoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &InMemoryRepository{
		clock: clk,
		store: make(map[string]*Session),
	}
}

// Create stores a new session
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	session := &Session{
		ID:        input.ID,
		Context:   input.Context,
		Rolls:     append([]Roll(nil), input.Rolls...),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[input.ID] = session

	return &CreateOutput{Session: copySession(session)}, nil
}

// Get retrieves a session by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.store[input.ID]
	if !ok {
		return nil, errors.NotFound("roll session not found")
	}
	if clock.Expired(r.clock, session.ExpiresAt) {
		delete(r.store, input.ID)
		return nil, errors.NotFound("roll session has expired")
	}

	return &GetOutput{Session: copySession(session)}, nil
}

// Delete removes a session
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var rollsDeleted int32
	if session, ok := r.store[input.ID]; ok && !clock.Expired(r.clock, session.ExpiresAt) {
		// nolint:gosec // roll count is always small
		rollsDeleted = int32(len(session.Rolls))
	}
	delete(r.store, input.ID)

	return &DeleteOutput{RollsDeleted: rollsDeleted}, nil
}

// Update replaces an existing session
func (r *InMemoryRepository) Update(_ context.Context, session *Session) error {
	if session == nil {
		return errors.InvalidArgument(errSessionNil)
	}
	if session.ID == "" {
		return errors.InvalidArgument(errIDEmpty)
	}
	if clock.Expired(r.clock, session.ExpiresAt) {
		return errors.InvalidArgument(errSessionExpired)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[session.ID] = copySession(session)

	return nil
}

func copySession(s *Session) *Session {
	out := *s
	out.Rolls = append([]Roll(nil), s.Rolls...)
	return &out
}
