package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/fr4nk3nst1ner/devsalary/internal/models"
	"github.com/fr4nk3nst1ner/devsalary/internal/scraper"
	"github.com/fr4nk3nst1ner/devsalary/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options controls how keywords are collected and summarized
type Options struct {
	// Workers bounds how many keywords are fetched at once. 0 or 1 keeps
	// the run strictly sequential.
	Workers int
	// KeepEmpty records keywords without estimates as zero rows instead of dropping them
	KeepEmpty bool
	// OnKeyword is called after each keyword finishes. It must be safe for
	// concurrent use when Workers > 1.
	OnKeyword func(keyword string)
	Logger    *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Collect fetches every keyword and returns the results in keyword order.
// The first error stops the remaining fetches.
func Collect(ctx context.Context, fetcher scraper.Fetcher, keywords []string, periodDays int, opts Options) ([]models.FetchResult, error) {
	results := make([]models.FetchResult, len(keywords))
	logger := opts.logger().With(zap.String("vendor", fetcher.Name()))

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, keyword := range keywords {
		i, keyword := i, keyword
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			result, err := fetcher.Fetch(ctx, keyword, periodDays)
			if err != nil {
				logger.Error("fetch failed", zap.String("keyword", keyword), zap.Error(err))
				return fmt.Errorf("%s: fetching %q: %w", fetcher.Name(), keyword, err)
			}

			result.Keyword = keyword
			results[i] = result

			if opts.OnKeyword != nil {
				opts.OnKeyword(keyword)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summarize reduces fetch results to per-keyword statistics. Keywords with
// no usable estimates are dropped unless opts.KeepEmpty is set.
func Summarize(vendor, title string, results []models.FetchResult, opts Options) models.VendorReport {
	report := models.VendorReport{
		Vendor: vendor,
		Title:  title,
		Stats:  make([]models.KeywordStats, 0, len(results)),
	}

	for _, result := range results {
		average, ok := utils.Average(result.Estimates)
		if !ok {
			opts.logger().Warn("no salaries to average",
				zap.String("vendor", vendor),
				zap.String("keyword", result.Keyword),
				zap.Int("found", result.Found))
			if !opts.KeepEmpty {
				continue
			}
		}

		report.Stats = append(report.Stats, models.KeywordStats{
			Keyword:   result.Keyword,
			Found:     result.Found,
			Processed: len(result.Estimates),
			Average:   average,
		})
	}

	return report
}

// Aggregate runs Collect and Summarize for one vendor
func Aggregate(ctx context.Context, fetcher scraper.Fetcher, keywords []string, periodDays int, opts Options) (models.VendorReport, error) {
	results, err := Collect(ctx, fetcher, keywords, periodDays, opts)
	if err != nil {
		return models.VendorReport{}, err
	}
	return Summarize(fetcher.Name(), fetcher.Name(), results, opts), nil
}

// Merge combines results of several vendors keyword by keyword. Found
// counts are added and estimates concatenated so the combined average is
// taken over every listing. Keywords keep their first-seen order.
func Merge(sets ...[]models.FetchResult) []models.FetchResult {
	var merged []models.FetchResult
	index := make(map[string]int)

	for _, set := range sets {
		for _, result := range set {
			key := strings.ToLower(result.Keyword)
			pos, exists := index[key]
			if !exists {
				index[key] = len(merged)
				merged = append(merged, models.FetchResult{Keyword: result.Keyword})
				pos = len(merged) - 1
			}

			merged[pos].Found += result.Found
			merged[pos].Pages += result.Pages
			merged[pos].Estimates = append(merged[pos].Estimates, result.Estimates...)
		}
	}

	return merged
}
