package scraper

import (
	"context"
	stderrors "errors"
	"strconv"
	"strings"

	"github.com/fr4nk3nst1ner/devsalary/internal/config"
	"github.com/fr4nk3nst1ner/devsalary/internal/errors"
	"github.com/fr4nk3nst1ner/devsalary/internal/models"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// hhSearchResponse represents one page of the hh.ru vacancy search
type hhSearchResponse struct {
	Found *int        `json:"found"`
	Pages *int        `json:"pages"`
	Page  int         `json:"page"`
	Items []hhVacancy `json:"items"`
}

// hhVacancy represents a vacancy as returned by the search endpoint
type hhVacancy struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Salary *hhSalary `json:"salary"`
	Area   struct {
		Name string `json:"name"`
	} `json:"area"`
}

type hhSalary struct {
	From     *float64 `json:"from"`
	To       *float64 `json:"to"`
	Currency string   `json:"currency"`
}

// HeadHunter fetches vacancies from the public hh.ru API. No credentials are needed.
type HeadHunter struct {
	httpClient *resty.Client
	cfg        config.HeadHunterConfig
	maxPages   int
	logger     *zap.Logger
}

// NewHeadHunter creates a HeadHunter fetcher. A maxPages of 0 uses DefaultMaxPages.
func NewHeadHunter(httpClient *resty.Client, cfg config.HeadHunterConfig, maxPages int, logger *zap.Logger) *HeadHunter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HeadHunter{
		httpClient: httpClient,
		cfg:        cfg,
		maxPages:   maxPages,
		logger:     logger.With(zap.String("vendor", models.VendorHeadHunter)),
	}
}

// Name returns the vendor name used in logs and table titles
func (h *HeadHunter) Name() string {
	return models.VendorHeadHunter
}

// Fetch walks all result pages for keyword. The last page is the one whose
// index is pages-1 as reported by the API.
func (h *HeadHunter) Fetch(ctx context.Context, keyword string, periodDays int) (models.FetchResult, error) {
	result := models.FetchResult{Keyword: keyword}

	pages, err := Paginate(ctx, h.maxPages,
		func(ctx context.Context, page int) (*hhSearchResponse, error) {
			return h.fetchPage(ctx, keyword, periodDays, page)
		},
		func(page int, resp *hhSearchResponse) bool {
			return page >= *resp.Pages-1
		},
		func(resp *hhSearchResponse) error {
			result.Found = *resp.Found
			result.Estimates = collectEstimates(h.logger, h.Name(), h.toListings(resp.Items), result.Estimates)
			return nil
		},
	)
	result.Pages = pages

	if stderrors.Is(err, ErrMaxPages) {
		h.logger.Warn("page limit reached, results are partial",
			zap.String("keyword", keyword),
			zap.Int("pages", pages))
		return result, nil
	}
	if err != nil {
		return result, err
	}

	h.logger.Debug("keyword fetched",
		zap.String("keyword", keyword),
		zap.Int("pages", pages),
		zap.Int("found", result.Found),
		zap.Int("estimates", len(result.Estimates)))
	return result, nil
}

func (h *HeadHunter) fetchPage(ctx context.Context, keyword string, periodDays, page int) (*hhSearchResponse, error) {
	params := map[string]string{
		"text":   keyword,
		"period": strconv.Itoa(periodDays),
		"page":   strconv.Itoa(page),
	}
	if h.cfg.Area != "" {
		params["area"] = h.cfg.Area
	}
	if h.cfg.PerPage > 0 {
		params["per_page"] = strconv.Itoa(h.cfg.PerPage)
	}
	if h.cfg.OnlyWithSalary {
		params["only_with_salary"] = "true"
	}

	var resp hhSearchResponse
	if err := getJSON(ctx, h.httpClient, h.Name(), h.cfg.URL, params, nil, &resp); err != nil {
		return nil, err
	}

	if resp.Found == nil || resp.Pages == nil {
		return nil, errors.Malformed("HeadHunter response is missing found/pages", nil)
	}

	return &resp, nil
}

// toListings keeps salary bounds only for vacancies priced in the configured currency
func (h *HeadHunter) toListings(items []hhVacancy) []models.Listing {
	listings := make([]models.Listing, 0, len(items))
	for _, item := range items {
		listing := models.Listing{Area: item.Area.Name}
		if item.Salary != nil {
			listing.Currency = item.Salary.Currency
			if strings.EqualFold(item.Salary.Currency, h.cfg.Currency) {
				listing.Bounds = &models.SalaryBounds{From: item.Salary.From, To: item.Salary.To}
			}
		}
		listings = append(listings, listing)
	}
	return listings
}
