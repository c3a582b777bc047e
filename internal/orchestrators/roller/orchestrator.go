// Package roller implements the roller orchestrator: it draws from the
// current catalogs and records batches in roll sessions
package roller

//go:generate mockgen -destination=mock/mock_service.go -package=rollermock github.com/KirkDiggler/bt-ship-roller/internal/orchestrators/roller Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/bt-ship-roller/internal/audit"
	"github.com/KirkDiggler/bt-ship-roller/internal/catalog"
	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
	"github.com/KirkDiggler/bt-ship-roller/internal/jumpship"
	"github.com/KirkDiggler/bt-ship-roller/internal/pkg/clock"
	"github.com/KirkDiggler/bt-ship-roller/internal/pkg/idgen"
	rollsession "github.com/KirkDiggler/bt-ship-roller/internal/repositories/roll_session"
	"github.com/KirkDiggler/bt-ship-roller/internal/sampler"
)

// MaxCount caps a single batch
const MaxCount = 1000

// Service defines the roller operations
type Service interface {
	RollDropShips(ctx context.Context, input *RollInput) (*RollOutput, error)
	RollPrimitiveJumpShips(ctx context.Context, input *RollInput) (*RollOutput, error)
	RollJumpShips(ctx context.Context, input *RollJumpShipsInput) (*RollJumpShipsOutput, error)

	GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error)
	ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error)

	Audit(ctx context.Context, input *AuditInput) (*AuditOutput, error)
}

// Config holds the dependencies for the roller orchestrator
type Config struct {
	DropShips          *catalog.Store
	PrimitiveJumpShips *catalog.Store

	DropShipSampler  *sampler.Sampler
	PrimitiveSampler *sampler.Sampler
	JumpShipTable    *jumpship.Table

	// SessionRepo is optional; without it rolls are not recorded
	SessionRepo rollsession.Repository
	SessionTTL  time.Duration

	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DropShips == nil {
		vb.RequiredField("DropShips")
	}
	if c.PrimitiveJumpShips == nil {
		vb.RequiredField("PrimitiveJumpShips")
	}
	if c.DropShipSampler == nil {
		vb.RequiredField("DropShipSampler")
	}
	if c.PrimitiveSampler == nil {
		vb.RequiredField("PrimitiveSampler")
	}
	if c.JumpShipTable == nil {
		vb.RequiredField("JumpShipTable")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.SessionTTL < 0 {
		vb.InvalidField("SessionTTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	dropShips          *catalog.Store
	primitiveJumpShips *catalog.Store
	dropShipSampler    *sampler.Sampler
	primitiveSampler   *sampler.Sampler
	jumpShips          *jumpship.Table
	sessionRepo        rollsession.Repository
	sessionTTL         time.Duration
	idGen              idgen.Generator
	clock              clock.Clock
}

// NewOrchestrator creates a new roller orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = rollsession.DefaultTTL
	}

	return &orchestrator{
		dropShips:          cfg.DropShips,
		primitiveJumpShips: cfg.PrimitiveJumpShips,
		dropShipSampler:    cfg.DropShipSampler,
		primitiveSampler:   cfg.PrimitiveSampler,
		jumpShips:          cfg.JumpShipTable,
		sessionRepo:        cfg.SessionRepo,
		sessionTTL:         ttl,
		idGen:              cfg.IDGenerator,
		clock:              clk,
	}, nil
}

func validateCount(n int) error {
	if n <= 0 {
		return errors.InvalidArgument("count must be a positive integer")
	}
	if n > MaxCount {
		return errors.InvalidArgumentf("count must be at most %d", MaxCount)
	}
	return nil
}

// RollDropShips draws from the DropShip catalog
func (o *orchestrator) RollDropShips(ctx context.Context, input *RollInput) (*RollOutput, error) {
	return o.rollCatalog(ctx, TableDropShip, o.dropShips, o.dropShipSampler, input)
}

// RollPrimitiveJumpShips draws from the primitive JumpShip catalog
func (o *orchestrator) RollPrimitiveJumpShips(ctx context.Context, input *RollInput) (*RollOutput, error) {
	return o.rollCatalog(ctx, TablePrimitiveJumpShip, o.primitiveJumpShips, o.primitiveSampler, input)
}

func (o *orchestrator) rollCatalog(
	ctx context.Context, table Table, store *catalog.Store, s *sampler.Sampler, input *RollInput,
) (*RollOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateCount(input.Count); err != nil {
		return nil, err
	}

	records, err := s.RollMany(store.Catalog(), input.Count, input.Filter)
	if err != nil {
		slog.Debug("Roll produced no result",
			"table", table,
			"reason", errors.GetReason(err),
		)
		return nil, err
	}

	results := make([]Result, 0, len(records))
	for _, r := range records {
		rec := r
		res := o.newResult(&rec, vessel.Describe(rec))
		res.Record = &rec
		if rec.IntroYear != nil {
			res.Era = vessel.EraForYear(*rec.IntroYear)
		}
		results = append(results, res)
	}

	session, err := o.record(ctx, table, input.SessionID, input.SessionTTL, results)
	if err != nil {
		return nil, err
	}

	slog.Info("Rolled classes",
		"table", table,
		"count", len(results),
		"session_id", input.SessionID,
	)

	return &RollOutput{Results: results, Session: session}, nil
}

// RollJumpShips rolls the fixed JumpShip table
func (o *orchestrator) RollJumpShips(ctx context.Context, input *RollJumpShipsInput) (*RollJumpShipsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateCount(input.Count); err != nil {
		return nil, err
	}

	rolled, err := o.jumpShips.RollMany(input.Count)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll jumpships")
	}

	results := make([]Result, 0, len(rolled))
	for _, r := range rolled {
		results = append(results, o.newResult(&r, r.String()))
	}

	session, err := o.record(ctx, TableJumpShip, input.SessionID, input.SessionTTL, results)
	if err != nil {
		return nil, err
	}

	slog.Info("Rolled jumpships",
		"count", len(results),
		"session_id", input.SessionID,
	)

	return &RollJumpShipsOutput{Results: results, Session: session}, nil
}

// newResult identifies a rolled class by its entity ID and type
func (o *orchestrator) newResult(e core.Entity, line string) Result {
	return Result{
		RollID: o.idGen.Generate(),
		Class:  e.GetID(),
		Table:  Table(e.GetType()),
		Line:   line,
	}
}

// record appends results to the named session, creating it if needed.
// An empty session ID records nothing.
func (o *orchestrator) record(
	ctx context.Context, table Table, sessionID string, ttl time.Duration, results []Result,
) (*rollsession.Session, error) {
	if sessionID == "" {
		return nil, nil
	}
	if o.sessionRepo == nil {
		return nil, errors.FailedPrecondition("roll sessions are not enabled")
	}

	now := o.clock.Now()
	rolls := make([]rollsession.Roll, 0, len(results))
	for _, r := range results {
		rolls = append(rolls, rollsession.Roll{
			RollID:    r.RollID,
			Table:     string(r.Table),
			ClassName: r.Class,
			Line:      r.Line,
			RolledAt:  now,
		})
	}

	getOutput, err := o.sessionRepo.Get(ctx, rollsession.GetInput{ID: sessionID})
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to check for existing session")
		}

		if ttl == 0 {
			ttl = o.sessionTTL
		}
		createOutput, err := o.sessionRepo.Create(ctx, rollsession.CreateInput{
			ID:      sessionID,
			Context: string(table),
			Rolls:   rolls,
			TTL:     ttl,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create roll session")
		}
		return createOutput.Session, nil
	}

	session := getOutput.Session
	session.Rolls = append(session.Rolls, rolls...)
	if err := o.sessionRepo.Update(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to update roll session")
	}
	return session, nil
}

// GetRollSession retrieves a roll session
func (o *orchestrator) GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if o.sessionRepo == nil {
		return nil, errors.FailedPrecondition("roll sessions are not enabled")
	}

	getOutput, err := o.sessionRepo.Get(ctx, rollsession.GetInput{ID: input.SessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get roll session")
	}

	return &GetRollSessionOutput{Session: getOutput.Session}, nil
}

// ClearRollSession removes a roll session
func (o *orchestrator) ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if o.sessionRepo == nil {
		return nil, errors.FailedPrecondition("roll sessions are not enabled")
	}

	deleteOutput, err := o.sessionRepo.Delete(ctx, rollsession.DeleteInput{ID: input.SessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete roll session")
	}

	slog.Info("Roll session cleared",
		"session_id", input.SessionID,
		"rolls_deleted", deleteOutput.RollsDeleted,
	)

	return &ClearRollSessionOutput{RollsDeleted: deleteOutput.RollsDeleted}, nil
}

// Audit summarises the current catalog for a table
func (o *orchestrator) Audit(_ context.Context, input *AuditInput) (*AuditOutput, error) {
	table := TableDropShip
	if input != nil && input.Table != "" {
		table = input.Table
	}

	var store *catalog.Store
	switch table {
	case TableDropShip:
		store = o.dropShips
	case TablePrimitiveJumpShip:
		store = o.primitiveJumpShips
	default:
		return nil, errors.InvalidArgumentf("table %q has no catalog to audit", table)
	}

	cat := store.Catalog()
	return &AuditOutput{
		Report:  audit.Build(vessel.Kind(table), cat),
		Catalog: cat,
	}, nil
}
