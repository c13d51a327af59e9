package scraper

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fr4nk3nst1ner/devsalary/internal/errors"
	"github.com/fr4nk3nst1ner/devsalary/internal/models"
	"github.com/fr4nk3nst1ner/devsalary/internal/utils"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Fetcher collects salary estimates for one keyword from one vendor
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, keyword string, periodDays int) (models.FetchResult, error)
}

// getJSON performs a GET and decodes a successful response into out
func getJSON(ctx context.Context, httpClient *resty.Client, vendor, url string, params map[string]string, headers map[string]string, out any) error {
	req := httpClient.R().
		SetContext(ctx).
		SetQueryParams(params)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}

	resp, err := req.Get(url)
	if err != nil {
		return errors.Transport(fmt.Sprintf("%s request failed", vendor), err)
	}

	if !resp.IsSuccess() {
		return errors.Upstream(vendor, resp.StatusCode(), string(resp.Body()))
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return errors.Malformed(fmt.Sprintf("failed to parse %s response", vendor), err)
	}

	return nil
}

// collectEstimates appends the estimate of every listing that has one
func collectEstimates(logger *zap.Logger, vendor string, listings []models.Listing, estimates []float64) []float64 {
	for _, listing := range listings {
		logger.Debug("listing",
			zap.String("vendor", vendor),
			zap.String("area", listing.Area),
			zap.String("currency", listing.Currency))

		if listing.Bounds == nil {
			continue
		}
		if estimate, ok := utils.Estimate(listing.Bounds); ok {
			estimates = append(estimates, estimate)
		}
	}
	return estimates
}
