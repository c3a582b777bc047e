package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
	redisclient "github.com/KirkDiggler/bt-ship-roller/internal/redis"
	"github.com/KirkDiggler/bt-ship-roller/internal/repositories/overrides"
	"github.com/KirkDiggler/bt-ship-roller/internal/scraper"
)

var (
	scrapeJSON     string
	scrapeSQLite   string
	scrapeRedis    bool
	scrapeFailures string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Build the DropShip override layer from the Sarna wiki",
	Long: `Crawl the Sarna DropShip class category and save the scraped layer.
Crawler settings come from SARNA_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeJSON, "json", "", "JSON output file (default overrides.scraped_json)")
	scrapeCmd.Flags().StringVar(&scrapeSQLite, "sqlite", "", "also save to this SQLite database")
	scrapeCmd.Flags().BoolVar(&scrapeRedis, "redis", false, "also save to redis.url")
	scrapeCmd.Flags().StringVar(&scrapeFailures, "failures", "dropship_failures.txt", "file listing pages that failed")
}

func runScrape(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	scrapeCfg, err := scraper.LoadConfig()
	if err != nil {
		return err
	}
	s, err := scraper.New(scrapeCfg, nil)
	if err != nil {
		return err
	}

	repos, closeRepos, err := scrapeTargets(ctx)
	if err != nil {
		return err
	}
	defer closeRepos()

	res, err := s.Run(ctx)
	if err != nil {
		return errors.Wrap(err, "scrape failed")
	}
	_, _ = fmt.Fprintf(out, "Found %d category members, scraped %d classes.\n", res.Members, res.Layer.Len())

	_, _ = fmt.Fprintln(out, "\nWrote:")
	for _, t := range repos {
		if err := t.repo.Save(ctx, res.Layer); err != nil {
			return errors.Wrapf(err, "failed to save to %s", t.label)
		}
		_, _ = fmt.Fprintf(out, "  - %s\n", t.label)
	}

	if len(res.Failures) > 0 {
		f, err := os.Create(scrapeFailures)
		if err != nil {
			return errors.Wrap(err, "failed to create failures file")
		}
		defer func() { _ = f.Close() }()
		if err := scraper.WriteFailures(f, res.Failures); err != nil {
			return errors.Wrap(err, "failed to write failures file")
		}
		_, _ = fmt.Fprintf(out, "  - %s (%d failures)\n", scrapeFailures, len(res.Failures))
	}
	return nil
}

type scrapeTarget struct {
	label string
	repo  overrides.Repository
}

// scrapeTargets opens every destination before the crawl so a bad path
// fails fast
func scrapeTargets(ctx context.Context) (_ []scrapeTarget, _ func(), err error) {
	var targets []scrapeTarget
	var closers []func() error
	closeAll := func() {
		for _, c := range closers {
			_ = c()
		}
	}
	defer func() {
		if err != nil {
			closeAll()
		}
	}()

	path := scrapeJSON
	if path == "" {
		path = cfg.Overrides.ScrapedJSON
	}
	jsonRepo, err := overrides.NewJSONFile(&overrides.JSONFileConfig{Name: overrides.LayerScraped, Path: path})
	if err != nil {
		return nil, nil, err
	}
	targets = append(targets, scrapeTarget{label: path, repo: jsonRepo})

	if scrapeSQLite != "" {
		sqliteRepo, err := overrides.NewSQLite(ctx, &overrides.SQLiteConfig{
			Path:  scrapeSQLite,
			Layer: overrides.LayerScraped,
		})
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, sqliteRepo.Close)
		targets = append(targets, scrapeTarget{label: scrapeSQLite, repo: sqliteRepo})
	}

	if scrapeRedis {
		if cfg.Redis.URL == "" {
			return nil, nil, errors.InvalidArgument("--redis needs redis.url")
		}
		client, err := redisclient.NewClientFromURL(cfg.Redis.URL, nil)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, client.Close)
		redisRepo, err := overrides.NewRedis(&overrides.RedisConfig{Client: client, Layer: overrides.LayerScraped})
		if err != nil {
			return nil, nil, err
		}
		targets = append(targets, scrapeTarget{label: "redis " + overrides.LayerScraped, repo: redisRepo})
	}

	return targets, closeAll, nil
}
