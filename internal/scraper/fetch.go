package scraper

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
)

// maxBody caps one response; wiki pages are far smaller
const maxBody = 8 << 20

func (s *Scraper) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to build request")
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		code := errors.CodeUnavailable
		if resp.StatusCode == http.StatusNotFound {
			code = errors.CodeNotFound
		}
		return "", errors.Newf(code, "GET %s: %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read body")
	}
	return strings.ToValidUTF8(string(body), "�"), nil
}

func (s *Scraper) fetchRaw(ctx context.Context, pageURL string) (string, error) {
	sep := "?"
	if strings.Contains(pageURL, "?") {
		sep = "&"
	}
	return s.fetch(ctx, pageURL+sep+"action=raw")
}

// pause waits out the request delay unless ctx ends first
func (s *Scraper) pause(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
