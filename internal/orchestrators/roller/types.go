package roller

import (
	"time"

	"github.com/KirkDiggler/bt-ship-roller/internal/audit"
	"github.com/KirkDiggler/bt-ship-roller/internal/catalog"
	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/jumpship"
	rollsession "github.com/KirkDiggler/bt-ship-roller/internal/repositories/roll_session"
	"github.com/KirkDiggler/bt-ship-roller/internal/sampler"
)

// Table names a roll table
type Table string

// Roll tables
const (
	TableJumpShip          Table = jumpship.EntityType
	TableDropShip          Table = Table(vessel.KindDropShip)
	TablePrimitiveJumpShip Table = Table(vessel.KindPrimitiveJumpShip)
)

// Result is one rolled class
type Result struct {
	RollID string
	Class  string
	// Table is the rolled entity's type
	Table Table
	// Record is set for catalog rolls, nil for the JumpShip table
	Record *vessel.ClassRecord
	// Era is empty when the intro year is unknown or not applicable
	Era string
	// Line is the display form, e.g. "Union (intro 2708, Star League) [IS, common]"
	Line string
}

// RollInput defines a catalog roll request
type RollInput struct {
	Filter sampler.Filter
	Count  int
	// SessionID, when set, appends the batch to that roll session
	SessionID string
	// SessionTTL overrides the configured TTL for a new session
	SessionTTL time.Duration
}

// RollOutput defines a catalog roll response
type RollOutput struct {
	Results []Result
	Session *rollsession.Session
}

// RollJumpShipsInput defines a JumpShip roll request
type RollJumpShipsInput struct {
	Count      int
	SessionID  string
	SessionTTL time.Duration
}

// RollJumpShipsOutput defines a JumpShip roll response
type RollJumpShipsOutput struct {
	Results []Result
	Session *rollsession.Session
}

// GetRollSessionInput defines the request for getting a roll session
type GetRollSessionInput struct {
	SessionID string
}

// GetRollSessionOutput defines the response for getting a roll session
type GetRollSessionOutput struct {
	Session *rollsession.Session
}

// ClearRollSessionInput defines the request for clearing a roll session
type ClearRollSessionInput struct {
	SessionID string
}

// ClearRollSessionOutput defines the response for clearing a roll session
type ClearRollSessionOutput struct {
	RollsDeleted int32
}

// AuditInput defines an audit request
type AuditInput struct {
	// Table defaults to TableDropShip
	Table Table
}

// AuditOutput defines an audit response
type AuditOutput struct {
	Report audit.Report
	// Catalog is the snapshot the report was built from
	Catalog *catalog.Catalog
}
