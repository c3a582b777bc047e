package scraper

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
)

const categoryPage1 = `<html><body>
<div id="mw-subcategories"><a href="/wiki/Category:Clan_DropShips" title="Category:Clan DropShips">Clan DropShips</a></div>
<div id="mw-pages">
<a href="/wiki/Union_(DropShip_class)" title="Union (DropShip class)">Union</a>
<a href="/wiki/Union_(DropShip_class)" title="Union (DropShip class)">Union again</a>
<a href="/wiki/Special:Random" title="Special:Random">Random</a>
<a href="/wiki/Category:Spacecraft" title="Category:Spacecraft">Spacecraft</a>
<a href="/w/index.php?title=Category:DropShip_classes&amp;pagefrom=L">next page</a>
</div>
<div class="printfooter">footer</div>
</body></html>`

const categoryPage2 = `<html><body><div id="mw-pages">
<a href="/wiki/Leopard_(DropShip_class)" title="Leopard (DropShip class)">Leopard</a>
<a href="/wiki/Broken" title="Broken">Broken</a>
</div></body></html>`

const unionRaw = `{{InfoBox DropShip
| name = Union
| introduced = 2790
| production year = c. 2708
| tech base = Inner Sphere
}}`

const unionHTML = `<html><body>
<h2>Description</h2>
<p>The Union is among the most common DropShips &amp; a true workhorse.</p>
<script>var note = 'prototype';</script>
</body></html>`

const leopardHTML = `<html><body>
<table><tr><th>Production Year</th><td>2537</td></tr>
<tr><th>Tech Base</th><td>Inner Sphere</td></tr></table>
<h2>Description</h2>
<p>An experimental prototype. Only 12 were built.</p>
</body></html>`

type ScraperTestSuite struct {
	suite.Suite
	server     *httptest.Server
	userAgents []string
	scraper    *Scraper
}

func TestScraperSuite(t *testing.T) {
	suite.Run(t, new(ScraperTestSuite))
}

func (s *ScraperTestSuite) SetupTest() {
	s.userAgents = nil
	mux := http.NewServeMux()
	page := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			s.userAgents = append(s.userAgents, r.UserAgent())
			_, _ = w.Write([]byte(body))
		}
	}
	mux.HandleFunc("/wiki/Category:DropShip_classes", page(categoryPage1))
	mux.HandleFunc("/w/index.php", page(categoryPage2))
	mux.HandleFunc("/wiki/Union_(DropShip_class)", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("action") == "raw" {
			_, _ = w.Write([]byte(unionRaw))
			return
		}
		_, _ = w.Write([]byte(unionHTML))
	})
	mux.HandleFunc("/wiki/Leopard_(DropShip_class)", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("action") == "raw" {
			_, _ = w.Write([]byte("no infobox here"))
			return
		}
		_, _ = w.Write([]byte(leopardHTML))
	})
	mux.HandleFunc("/wiki/Broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	s.server = httptest.NewServer(mux)

	var err error
	s.scraper, err = New(&Config{
		BaseURL:   s.server.URL,
		Category:  "Category:DropShip_classes",
		UserAgent: "bt-roller-test",
	}, s.server.Client())
	s.Require().NoError(err)
}

func (s *ScraperTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ScraperTestSuite) TestMembersFollowsNextPageAndDedupes() {
	members, err := s.scraper.Members(context.Background())
	s.Require().NoError(err)
	s.Equal([]Member{
		{Title: "Union (DropShip class)", Href: "/wiki/Union_(DropShip_class)"},
		{Title: "Leopard (DropShip class)", Href: "/wiki/Leopard_(DropShip_class)"},
		{Title: "Broken", Href: "/wiki/Broken"},
	}, members)
	s.Contains(s.userAgents, "bt-roller-test")
}

func (s *ScraperTestSuite) TestRunBuildsLayer() {
	res, err := s.scraper.Run(context.Background())
	s.Require().NoError(err)
	s.Equal(3, res.Members)
	s.Equal("scraped", res.Layer.Name)
	s.Equal([]string{"Leopard", "Union"}, res.Layer.Names())

	union := res.Layer.Patches["Union"]
	s.Require().NotNil(union.IntroYear)
	s.Equal(2708, *union.IntroYear)
	s.Require().NotNil(union.TechBase)
	s.Equal(vessel.TechInnerSphere, *union.TechBase)
	s.Require().NotNil(union.Rarity)
	s.Equal(vessel.RarityCommon, *union.Rarity)
	s.Equal("Union (DropShip class)", union.SourceTitle)
	s.Equal(s.server.URL+"/wiki/Union_(DropShip_class)", union.SourceURL)
	s.Equal([]string{
		`common: /\bmost common\b/`,
		`common: /\bamong the most common\b/`,
		`common: /\bworkhorse\b/`,
	}, union.Evidence)

	leopard := res.Layer.Patches["Leopard"]
	s.Require().NotNil(leopard.IntroYear)
	s.Equal(2537, *leopard.IntroYear)
	s.Require().NotNil(leopard.TechBase)
	s.Equal(vessel.TechInnerSphere, *leopard.TechBase)
	s.Require().NotNil(leopard.Rarity)
	s.Equal(vessel.RarityVeryRare, *leopard.Rarity)

	s.Require().Len(res.Failures, 1)
	s.Equal("Broken", res.Failures[0].Title)
	s.Equal(errors.CodeUnavailable, errors.GetCode(res.Failures[0].Err))

	var buf bytes.Buffer
	s.Require().NoError(WriteFailures(&buf, res.Failures))
	s.Contains(buf.String(), "Broken\t"+s.server.URL+"/wiki/Broken\t")
}

func (s *ScraperTestSuite) TestRunStopsOnCancel() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.scraper.Run(ctx)
	s.Error(err)
}

func TestInfoboxKeyPriority(t *testing.T) {
	year, tech := infoboxFields("| introduced = 3052\n| year = 3060\n| techbase = Clan (Wolf)\n")
	require.NotNil(t, year)
	assert.Equal(t, 3052, *year)
	require.NotNil(t, tech)
	assert.Equal(t, vessel.TechClan, *tech)

	year, tech = infoboxFields("| production year = unknown\n| year = 2650\n")
	require.NotNil(t, year)
	assert.Equal(t, 2650, *year)
	assert.Nil(t, tech)
}

func TestGuessRarity(t *testing.T) {
	tier, evidence := GuessRarity("Description: a common sight, but relatively uncommon in the Periphery.")
	assert.Equal(t, vessel.RarityUncommon, tier)
	assert.Equal(t, []string{`uncommon: /\buncommon\b/`, `uncommon: /\brelatively uncommon\b/`}, evidence)

	tier, evidence = GuessRarity("Nothing notable here.")
	assert.Equal(t, vessel.RarityUnknown, tier)
	assert.Empty(t, evidence)

	// Phrases before the description section are ignored
	tier, _ = GuessRarity("A mass-produced design. Description: a few hulls remain.")
	assert.Equal(t, vessel.RarityUnknown, tier)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Union", NormalizeName("Union (DropShip class)"))
	assert.Equal(t, "K-1", NormalizeName("K-1 (dropshuttle class) "))
	assert.Equal(t, "Kü", NormalizeName("Kü"))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SARNA_REQUEST_DELAY", "1s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://www.sarna.net", cfg.BaseURL)
	assert.Equal(t, time.Second, cfg.RequestDelay)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "https://www.sarna.net/wiki/Category:DropShip_classes", cfg.CategoryURL())
	assert.NoError(t, cfg.Validate())

	cfg.BaseURL = "not a url"
	assert.Error(t, cfg.Validate())
}
