package catalog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/bt-ship-roller/internal/catalog"
	catalogmock "github.com/KirkDiggler/bt-ship-roller/internal/catalog/mock"
	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
)

type LoaderTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	scraped *catalogmock.MockLayerSource
	local   *catalogmock.MockLayerSource
	ctx     context.Context
}

func TestLoaderSuite(t *testing.T) {
	suite.Run(t, new(LoaderTestSuite))
}

func (s *LoaderTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.scraped = catalogmock.NewMockLayerSource(s.ctrl)
	s.local = catalogmock.NewMockLayerSource(s.ctrl)
	s.ctx = context.Background()
}

func (s *LoaderTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *LoaderTestSuite) newLoader() *catalog.Loader {
	l, err := catalog.NewLoader(&catalog.LoaderConfig{
		Kind:      vessel.KindDropShip,
		BaseLayer: s.scraped,
		Layers:    []catalog.LayerSource{s.local},
	})
	s.Require().NoError(err)
	return l
}

func (s *LoaderTestSuite) TestNewLoaderValidation() {
	_, err := catalog.NewLoader(nil)
	s.Error(err)

	_, err = catalog.NewLoader(&catalog.LoaderConfig{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Kind")
}

func (s *LoaderTestSuite) TestLoadAppliesLayersInOrder() {
	scraped := vessel.NewOverrideLayer("scraped")
	scraped.Patches["League"] = vessel.Patch{Rarity: rarity(vessel.RarityCommon)}
	scraped.Patches["Union"] = vessel.Patch{IntroYear: vessel.Year(2708), TechBase: tech(vessel.TechInnerSphere)}

	local := vessel.NewOverrideLayer("local")
	local.Patches["League"] = vessel.Patch{IntroYear: vessel.Year(2750), Rarity: rarity(vessel.RarityVeryRare)}

	s.scraped.EXPECT().Load(s.ctx).Return(scraped, nil)
	s.local.EXPECT().Load(s.ctx).Return(local, nil)

	cat, err := s.newLoader().Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, cat.Len())

	league, ok := cat.Get("League")
	s.Require().True(ok)
	s.Equal(vessel.RarityVeryRare, league.Rarity)
	s.Equal(2750, *league.IntroYear)
	s.Equal(vessel.TechUnknown, league.TechBase)

	report := cat.Report()
	s.Require().NotNil(report.BaseLayer)
	s.Equal("scraped", report.BaseLayer.Name)
	s.Equal(2, report.BaseLayer.Patches)
	s.Equal([]string{"League", "Union"}, report.BaseLayer.Applied)
	s.Require().Len(report.Layers, 1)
	s.Equal("local", report.Layers[0].Name)
}

func (s *LoaderTestSuite) TestMissingBaseYieldsEmptyCatalog() {
	s.scraped.EXPECT().Load(s.ctx).Return(nil, errors.NotFound("no scraped file"))
	s.local.EXPECT().Load(s.ctx).Return(vessel.NewOverrideLayer("local"), nil)

	cat, err := s.newLoader().Load(s.ctx)
	s.Require().NoError(err)
	s.True(cat.IsEmpty())
	s.Nil(cat.Report().BaseLayer)
}

func (s *LoaderTestSuite) TestMissingLayerIsAbsent() {
	scraped := vessel.NewOverrideLayer("scraped")
	scraped.Patches["Union"] = vessel.Patch{}

	s.scraped.EXPECT().Load(s.ctx).Return(scraped, nil)
	s.local.EXPECT().Load(s.ctx).Return(nil, errors.NotFound("no local file"))

	cat, err := s.newLoader().Load(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, cat.Len())
	s.Empty(cat.Report().Layers)
}

func (s *LoaderTestSuite) TestBrokenLayerFails() {
	s.scraped.EXPECT().Load(s.ctx).Return(vessel.NewOverrideLayer("scraped"), nil)
	s.local.EXPECT().Load(s.ctx).Return(nil, fmt.Errorf("toml: line 3: bad value"))

	_, err := s.newLoader().Load(s.ctx)
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to load override layer 0")
}

func (s *LoaderTestSuite) TestStaticBaseRecordsTakeKind() {
	l, err := catalog.NewLoader(&catalog.LoaderConfig{
		Kind:        vessel.KindPrimitiveJumpShip,
		BaseRecords: []vessel.ClassRecord{{Name: "Kaiser", TechBase: vessel.TechInnerSphere, Rarity: vessel.RarityUnknown}},
	})
	s.Require().NoError(err)

	cat, err := l.Load(s.ctx)
	s.Require().NoError(err)
	kaiser, _ := cat.Get("Kaiser")
	s.Equal(vessel.KindPrimitiveJumpShip, kaiser.Kind)
	s.Nil(cat.Report().BaseLayer)
}

func (s *LoaderTestSuite) TestStoreReloadKeepsPreviousOnError() {
	first := catalog.Build(baseRecords())
	store := catalog.NewStore(first)

	s.scraped.EXPECT().Load(s.ctx).Return(nil, fmt.Errorf("redis down"))

	err := store.Reload(s.ctx, s.newLoader())
	s.Error(err)
	s.Same(first, store.Catalog())
}
