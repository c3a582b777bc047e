package v1alpha1_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/bt-ship-roller/internal/audit"
	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
	"github.com/KirkDiggler/bt-ship-roller/internal/handlers/roller/v1alpha1"
	"github.com/KirkDiggler/bt-ship-roller/internal/orchestrators/roller"
	rollermock "github.com/KirkDiggler/bt-ship-roller/internal/orchestrators/roller/mock"
	rollsession "github.com/KirkDiggler/bt-ship-roller/internal/repositories/roll_session"
	"github.com/KirkDiggler/bt-ship-roller/internal/sampler"
	"github.com/KirkDiggler/bt-ship-roller/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockRoller *rollermock.MockService
	handler    *v1alpha1.Handler
	ctx        context.Context
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRoller = rollermock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		RollerService: s.mockRoller,
	})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) TestNewHandlerRequiresService() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Error(err)
}

func (s *HandlerTestSuite) TestRollDropShips_DefaultFilter() {
	union := testutils.DropShipRecords()[0]

	s.mockRoller.EXPECT().
		RollDropShips(s.ctx, &roller.RollInput{Filter: sampler.AnyFilter(), Count: 1}).
		Return(&roller.RollOutput{Results: []roller.Result{{
			RollID: "roll_1",
			Class:  "Union",
			Record: &union,
			Era:    "Star League",
			Line:   vessel.Describe(union),
		}}}, nil)

	resp, err := s.handler.RollDropShips(s.ctx, &v1alpha1.RollRequest{Count: 1})
	s.Require().NoError(err)
	s.Require().Len(resp.Results, 1)

	r := resp.Results[0]
	s.Equal("roll_1", r.RollId)
	s.Equal("IS", r.TechBase)
	s.Equal("common", r.Rarity)
	s.Require().NotNil(r.IntroYear)
	s.Equal(int32(2708), *r.IntroYear)
	s.Equal("Union (intro 2708, Star League) [IS, common]", r.Line)
	s.Nil(resp.Session)
}

func (s *HandlerTestSuite) TestRollDropShips_FilterMapping() {
	exclude := false
	year := int32(3025)

	s.mockRoller.EXPECT().
		RollDropShips(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *roller.RollInput) (*roller.RollOutput, error) {
			s.Equal(sampler.TechClan, input.Filter.Tech)
			s.Equal(sampler.RarityCommonAndUncommon, input.Filter.Rarity)
			s.Require().NotNil(input.Filter.Year)
			s.Equal(3025, *input.Filter.Year)
			s.True(input.Filter.StrictYear)
			s.False(input.Filter.IncludeUnknownTech)
			s.True(input.Filter.IncludeUnknownRarity)
			s.Equal(4, input.Count)
			s.Equal("table-1", input.SessionID)
			s.Equal(time.Minute, input.SessionTTL)
			return &roller.RollOutput{}, nil
		})

	_, err := s.handler.RollDropShips(s.ctx, &v1alpha1.RollRequest{
		Filter: &v1alpha1.Filter{
			Tech:               "clan",
			Year:               &year,
			StrictYear:         true,
			Rarity:             "2",
			IncludeUnknownTech: &exclude,
		},
		Count:             4,
		SessionId:         "table-1",
		SessionTtlSeconds: 60,
	})
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TestRollDropShips_BadFilterTokens() {
	_, err := s.handler.RollDropShips(s.ctx, &v1alpha1.RollRequest{
		Filter: &v1alpha1.Filter{Tech: "comstar", Rarity: "legendary"},
		Count:  1,
	})
	s.Require().Error(err)
	st, ok := status.FromError(err)
	s.Require().True(ok)
	s.Equal(codes.InvalidArgument, st.Code())
	s.Contains(st.Message(), "filter.tech")
	s.Contains(st.Message(), "filter.rarity")
}

func (s *HandlerTestSuite) TestRollErrorsMapToStatus() {
	s.mockRoller.EXPECT().
		RollDropShips(s.ctx, gomock.Any()).
		Return(nil, sampler.ErrNoDataLoaded)

	_, err := s.handler.RollDropShips(s.ctx, &v1alpha1.RollRequest{Count: 1})
	st, _ := status.FromError(err)
	s.Equal(codes.FailedPrecondition, st.Code())
	s.Contains(st.Message(), sampler.ReasonNoDataLoaded)

	s.mockRoller.EXPECT().
		RollPrimitiveJumpShips(s.ctx, gomock.Any()).
		Return(nil, sampler.ErrNoEligibleCandidates)

	_, err = s.handler.RollPrimitiveJumpShips(s.ctx, &v1alpha1.RollRequest{Count: 1})
	st, _ = status.FromError(err)
	s.Equal(codes.NotFound, st.Code())
	s.Contains(st.Message(), sampler.ReasonNoEligibleCandidates)
}

func (s *HandlerTestSuite) TestRollJumpShips_WithSession() {
	now := time.Date(3025, 1, 1, 0, 0, 0, 0, time.UTC)
	session := &rollsession.Session{
		ID:      "table-1",
		Context: "jumpship",
		Rolls: []rollsession.Roll{
			{RollID: "roll_1", Table: "jumpship", ClassName: "Uma", Line: "Uma (minor bucket)", RolledAt: now},
		},
		CreatedAt: now,
		ExpiresAt: now.Add(rollsession.DefaultTTL),
	}

	s.mockRoller.EXPECT().
		RollJumpShips(s.ctx, &roller.RollJumpShipsInput{Count: 1, SessionID: "table-1"}).
		Return(&roller.RollJumpShipsOutput{
			Results: []roller.Result{{RollID: "roll_1", Class: "Uma", Line: "Uma (minor bucket)"}},
			Session: session,
		}, nil)

	resp, err := s.handler.RollJumpShips(s.ctx, &v1alpha1.RollJumpShipsRequest{Count: 1, SessionId: "table-1"})
	s.Require().NoError(err)
	s.Equal("Uma (minor bucket)", resp.Results[0].Line)
	s.Empty(resp.Results[0].TechBase)
	s.Nil(resp.Results[0].IntroYear)
	s.Require().NotNil(resp.Session)
	s.Equal("table-1", resp.Session.Id)
	s.Len(resp.Session.Rolls, 1)
	s.Equal(now, resp.Session.Rolls[0].RolledAt)
}

func (s *HandlerTestSuite) TestSessionEndpoints() {
	_, err := s.handler.GetRollSession(s.ctx, &v1alpha1.GetRollSessionRequest{})
	st, _ := status.FromError(err)
	s.Equal(codes.InvalidArgument, st.Code())

	s.mockRoller.EXPECT().
		GetRollSession(s.ctx, &roller.GetRollSessionInput{SessionID: "gone"}).
		Return(nil, errors.NotFound("roll session not found"))
	_, err = s.handler.GetRollSession(s.ctx, &v1alpha1.GetRollSessionRequest{SessionId: "gone"})
	st, _ = status.FromError(err)
	s.Equal(codes.NotFound, st.Code())

	s.mockRoller.EXPECT().
		ClearRollSession(s.ctx, &roller.ClearRollSessionInput{SessionID: "table-1"}).
		Return(&roller.ClearRollSessionOutput{RollsDeleted: 3}, nil)
	resp, err := s.handler.ClearRollSession(s.ctx, &v1alpha1.ClearRollSessionRequest{SessionId: "table-1"})
	s.Require().NoError(err)
	s.Equal(int32(3), resp.RollsDeleted)
}

func (s *HandlerTestSuite) TestAudit() {
	cat := testutils.DropShipCatalog()
	s.mockRoller.EXPECT().
		Audit(s.ctx, &roller.AuditInput{Table: roller.TableDropShip}).
		Return(&roller.AuditOutput{Report: audit.Build(vessel.KindDropShip, cat), Catalog: cat}, nil)

	resp, err := s.handler.Audit(s.ctx, &v1alpha1.AuditRequest{Table: "dropship"})
	s.Require().NoError(err)
	s.Equal(int32(6), resp.TotalClasses)
	s.Equal(int32(2), resp.MissingYear)
	s.Contains(resp.Text, "Total classes in DB: 6")
	s.Require().NotEmpty(resp.TechCounts)
	s.Equal("IS", resp.TechCounts[0].Label)
	s.Equal(int32(3), resp.TechCounts[0].N)
}
