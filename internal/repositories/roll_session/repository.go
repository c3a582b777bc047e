// Package rollsession stores short-lived roll histories so a table can look
// back at the last batch without re-rolling
package rollsession

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rollsessionmock github.com/KirkDiggler/bt-ship-roller/internal/repositories/roll_session Repository

const (
	// DefaultTTL applies when CreateInput.TTL is zero
	DefaultTTL = 15 * time.Minute

	errSessionNil     = "session cannot be nil"
	errIDEmpty        = "session ID cannot be empty"
	errSessionExpired = "session has already expired"
)

// Session is a group of rolls made under one ID
type Session struct {
	ID string

	// Context labels the session, e.g. "dropship" or "campaign_week_3"
	Context string

	// Rolls in the order they were made
	Rolls []Roll

	CreatedAt time.Time
	ExpiresAt time.Time
}

// Roll is one rolled class
type Roll struct {
	RollID string

	// Table is the kind rolled: "jumpship", "dropship", "primitive_jumpship"
	Table string

	ClassName string

	// Line is the rendered result, e.g. "Union (intro 2708, Star League) [IS, common]"
	Line string

	RolledAt time.Time
}

// CreateInput contains parameters for creating a session
type CreateInput struct {
	ID      string
	Context string
	Rolls   []Roll
	TTL     time.Duration
}

// CreateOutput contains the created session
type CreateOutput struct {
	Session *Session
}

// GetInput contains parameters for retrieving a session
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved session
type GetOutput struct {
	Session *Session
}

// DeleteInput contains parameters for deleting a session
type DeleteInput struct {
	ID string
}

// DeleteOutput reports how many rolls went with the session
type DeleteOutput struct {
	RollsDeleted int32
}

// Repository defines storage for roll sessions
type Repository interface {
	// Create stores a new session with the given TTL
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a session; expired or missing sessions are NotFound
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Update replaces an existing session, keeping its expiry
	Update(ctx context.Context, session *Session) error
}
