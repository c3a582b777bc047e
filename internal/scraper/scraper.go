package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/bt-ship-roller/internal/entities/vessel"
	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
	"github.com/KirkDiggler/bt-ship-roller/internal/repositories/overrides"
)

// Failure is a page that could not be scraped
type Failure struct {
	Title string
	URL   string
	Err   error
}

// Result is the outcome of a full crawl
type Result struct {
	Layer    *vessel.OverrideLayer
	Failures []Failure
	Members  int
}

// Scraper crawls the category and each listed class page
type Scraper struct {
	base        *url.URL
	categoryURL string
	userAgent   string
	delay       time.Duration
	client      *http.Client
}

// New creates a scraper. A nil client gets one with cfg.HTTPTimeout.
func New(cfg *Config, client *http.Client) (*Scraper, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid base URL")
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &Scraper{
		base:        base,
		categoryURL: cfg.CategoryURL(),
		userAgent:   cfg.UserAgent,
		delay:       cfg.RequestDelay,
		client:      client,
	}, nil
}

// Members lists every page in the category, following "next page" links.
// Members are deduplicated by href in listing order.
func (s *Scraper) Members(ctx context.Context) ([]Member, error) {
	var members []Member
	seenPages := make(map[string]bool)
	seenHrefs := make(map[string]bool)

	for next := s.categoryURL; next != "" && !seenPages[next]; {
		seenPages[next] = true

		page, err := s.fetch(ctx, next)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch category page %s", next)
		}
		listed, nextHref, err := parseCategoryPage(page)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse category page %s", next)
		}

		for _, m := range listed {
			if seenHrefs[m.Href] {
				continue
			}
			seenHrefs[m.Href] = true
			members = append(members, m)
		}

		next = ""
		if nextHref != "" {
			next = s.resolve(nextHref)
		}

		if err := s.pause(ctx); err != nil {
			return nil, err
		}
	}

	return members, nil
}

// ScrapePage builds the patch for one class page. Year and tech come from
// the raw infobox, falling back to rendered text. Rarity is guessed from prose.
func (s *Scraper) ScrapePage(ctx context.Context, m Member) (string, vessel.Patch, error) {
	pageURL := s.resolve(m.Href)

	wikitext, err := s.fetchRaw(ctx, pageURL)
	if err != nil {
		return "", vessel.Patch{}, errors.Wrap(err, "failed to fetch wikitext")
	}
	year, tech := infoboxFields(wikitext)

	page, err := s.fetch(ctx, pageURL)
	if err != nil {
		return "", vessel.Patch{}, errors.Wrap(err, "failed to fetch page")
	}
	text := stripTags(page)

	if year == nil || tech == nil {
		y2, t2 := textFields(text)
		if year == nil {
			year = y2
		}
		if tech == nil {
			tech = t2
		}
	}

	rarity, evidence := GuessRarity(text)
	patch := vessel.Patch{
		IntroYear:   year,
		TechBase:    tech,
		Rarity:      vessel.RarityPtr(string(rarity)),
		Evidence:    evidence,
		SourceTitle: m.Title,
		SourceURL:   pageURL,
	}
	return NormalizeName(m.Title), patch, nil
}

// Run crawls the whole category. Per-page failures are collected; only a
// failed category listing or a cancelled ctx stops the crawl.
func (s *Scraper) Run(ctx context.Context) (*Result, error) {
	slog.Info("Scraping class list", "category", s.categoryURL)

	members, err := s.Members(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("Found category members", "count", len(members))

	res := &Result{
		Layer:   vessel.NewOverrideLayer(overrides.LayerScraped),
		Members: len(members),
	}

	for i, m := range members {
		name, patch, err := s.ScrapePage(ctx, m)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("Page scrape failed", "title", m.Title, "error", err)
			res.Failures = append(res.Failures, Failure{Title: m.Title, URL: s.resolve(m.Href), Err: err})
		} else {
			res.Layer.Patches[name] = patch
		}

		if (i+1)%10 == 0 {
			slog.Info("Scrape progress", "done", i+1, "total", len(members))
		}

		if err := s.pause(ctx); err != nil {
			return nil, err
		}
	}

	slog.Info("Scrape finished",
		"classes", res.Layer.Len(),
		"failures", len(res.Failures),
	)
	return res, nil
}

func (s *Scraper) resolve(href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return strings.TrimRight(s.base.String(), "/") + href
	}
	return s.base.ResolveReference(ref).String()
}

// WriteFailures writes one tab-separated line per failure
func WriteFailures(w io.Writer, failures []Failure) error {
	for _, f := range failures {
		msg := strings.ReplaceAll(f.Err.Error(), "\n", " ")
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", f.Title, f.URL, msg); err != nil {
			return err
		}
	}
	return nil
}
