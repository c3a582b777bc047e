// Package v1alpha1 serves the roller over gRPC
package v1alpha1

import (
	"context"
	"strings"
	"time"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
	"github.com/KirkDiggler/bt-ship-roller/internal/orchestrators/roller"
	rollsession "github.com/KirkDiggler/bt-ship-roller/internal/repositories/roll_session"
	"github.com/KirkDiggler/bt-ship-roller/internal/sampler"
)

// HandlerConfig holds dependencies for the roller handler
type HandlerConfig struct {
	RollerService roller.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.RollerService == nil {
		return errors.InvalidArgument("roller service is required")
	}
	return nil
}

// Handler implements RollerServiceServer
type Handler struct {
	UnimplementedRollerServiceServer
	rollerService roller.Service
}

var _ RollerServiceServer = (*Handler)(nil)

// NewHandler creates a new roller handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		rollerService: cfg.RollerService,
	}, nil
}

// RollDropShips rolls the DropShip catalog
func (h *Handler) RollDropShips(ctx context.Context, req *RollRequest) (*RollResponse, error) {
	input, err := toRollInput(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.rollerService.RollDropShips(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toRollResponse(output.Results, output.Session), nil
}

// RollPrimitiveJumpShips rolls the primitive JumpShip catalog
func (h *Handler) RollPrimitiveJumpShips(ctx context.Context, req *RollRequest) (*RollResponse, error) {
	input, err := toRollInput(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.rollerService.RollPrimitiveJumpShips(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toRollResponse(output.Results, output.Session), nil
}

// RollJumpShips rolls the fixed JumpShip table
func (h *Handler) RollJumpShips(ctx context.Context, req *RollJumpShipsRequest) (*RollResponse, error) {
	if req == nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("request is required"))
	}

	output, err := h.rollerService.RollJumpShips(ctx, &roller.RollJumpShipsInput{
		Count:      int(req.Count),
		SessionID:  req.SessionId,
		SessionTTL: time.Duration(req.SessionTtlSeconds) * time.Second,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return toRollResponse(output.Results, output.Session), nil
}

// GetRollSession returns a stored roll session
func (h *Handler) GetRollSession(ctx context.Context, req *GetRollSessionRequest) (*GetRollSessionResponse, error) {
	if req == nil || req.SessionId == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	output, err := h.rollerService.GetRollSession(ctx, &roller.GetRollSessionInput{SessionID: req.SessionId})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetRollSessionResponse{Session: toSession(output.Session)}, nil
}

// ClearRollSession removes a roll session
func (h *Handler) ClearRollSession(ctx context.Context, req *ClearRollSessionRequest) (*ClearRollSessionResponse, error) {
	if req == nil || req.SessionId == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("session_id is required"))
	}

	output, err := h.rollerService.ClearRollSession(ctx, &roller.ClearRollSessionInput{SessionID: req.SessionId})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ClearRollSessionResponse{RollsDeleted: output.RollsDeleted}, nil
}

// Audit reports on a catalog
func (h *Handler) Audit(ctx context.Context, req *AuditRequest) (*AuditResponse, error) {
	input := &roller.AuditInput{}
	if req != nil {
		input.Table = roller.Table(req.Table)
	}

	output, err := h.rollerService.Audit(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	rep := output.Report
	resp := &AuditResponse{
		TotalClasses:    int32(rep.TotalClasses),
		OverridesLoaded: int32(rep.OverridesLoaded),
		MissingYear:     int32(rep.MissingYear),
	}
	for _, c := range rep.TechCounts {
		resp.TechCounts = append(resp.TechCounts, &Count{Label: c.Label, N: int32(c.N)})
	}
	for _, c := range rep.RarityCounts {
		resp.RarityCounts = append(resp.RarityCounts, &Count{Label: c.Label, N: int32(c.N)})
	}
	for _, l := range rep.Layers {
		la := &LayerAudit{Name: l.Name, Patches: int32(l.Patches), Applied: int32(l.Applied)}
		for _, u := range l.Unknown {
			la.Unknown = append(la.Unknown, &UnknownOverride{Name: u.Name, Suggestion: u.Suggestion})
		}
		resp.Layers = append(resp.Layers, la)
	}

	var sb strings.Builder
	if err := rep.WriteText(&sb); err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to render audit"))
	}
	resp.Text = sb.String()

	return resp, nil
}

func toRollInput(req *RollRequest) (*roller.RollInput, error) {
	if req == nil {
		return nil, errors.InvalidArgument("request is required")
	}

	filter, err := toFilter(req.Filter)
	if err != nil {
		return nil, err
	}

	return &roller.RollInput{
		Filter:     filter,
		Count:      int(req.Count),
		SessionID:  req.SessionId,
		SessionTTL: time.Duration(req.SessionTtlSeconds) * time.Second,
	}, nil
}

func toFilter(f *Filter) (sampler.Filter, error) {
	out := sampler.AnyFilter()
	if f == nil {
		return out, nil
	}

	vb := errors.NewValidationBuilder()

	tech, ok := sampler.ParseTechFilter(f.Tech)
	if !ok {
		vb.InvalidField("filter.tech", "must be any, IS or Clan")
	}
	rarity, ok := sampler.ParseRarityPolicy(f.Rarity)
	if !ok {
		vb.InvalidField("filter.rarity", "must be common, common_uncommon or any")
	}
	if err := vb.Build(); err != nil {
		return sampler.Filter{}, err
	}

	out.Tech = tech
	out.Rarity = rarity
	if f.Year != nil {
		out.Year = vessel.Year(int(*f.Year))
		out.StrictYear = f.StrictYear
	}
	if f.IncludeUnknownTech != nil {
		out.IncludeUnknownTech = *f.IncludeUnknownTech
	}
	if f.IncludeUnknownRarity != nil {
		out.IncludeUnknownRarity = *f.IncludeUnknownRarity
	}
	return out, nil
}

func toRollResponse(results []roller.Result, session *rollsession.Session) *RollResponse {
	resp := &RollResponse{
		Results: make([]*RollResult, 0, len(results)),
		Session: toSession(session),
	}
	for _, r := range results {
		out := &RollResult{
			RollId: r.RollID,
			Class:  r.Class,
			Era:    r.Era,
			Line:   r.Line,
		}
		if r.Record != nil {
			out.TechBase = string(r.Record.TechBase)
			out.Rarity = string(r.Record.Rarity)
			if r.Record.IntroYear != nil {
				y := int32(*r.Record.IntroYear)
				out.IntroYear = &y
			}
		}
		resp.Results = append(resp.Results, out)
	}
	return resp
}

func toSession(s *rollsession.Session) *RollSession {
	if s == nil {
		return nil
	}
	out := &RollSession{
		Id:        s.ID,
		Context:   s.Context,
		Rolls:     make([]*SessionRoll, 0, len(s.Rolls)),
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
	for _, r := range s.Rolls {
		out.Rolls = append(out.Rolls, &SessionRoll{
			RollId:    r.RollID,
			Table:     r.Table,
			ClassName: r.ClassName,
			Line:      r.Line,
			RolledAt:  r.RolledAt,
		})
	}
	return out
}
