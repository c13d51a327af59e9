package scraper

import (
	"context"
	stderrors "errors"
	"strconv"

	"github.com/fr4nk3nst1ner/devsalary/internal/config"
	"github.com/fr4nk3nst1ner/devsalary/internal/errors"
	"github.com/fr4nk3nst1ner/devsalary/internal/models"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const superJobAPIKeyHeader = "X-Api-App-Id"

// sjSearchResponse represents one page of the SuperJob vacancy search
type sjSearchResponse struct {
	Total   *int        `json:"total"`
	More    *bool       `json:"more"`
	Objects []sjVacancy `json:"objects"`
}

// sjVacancy represents a vacancy from SuperJob. Unpublished payments are 0 or null.
type sjVacancy struct {
	ID          int      `json:"id"`
	Profession  string   `json:"profession"`
	PaymentFrom *float64 `json:"payment_from"`
	PaymentTo   *float64 `json:"payment_to"`
	Currency    string   `json:"currency"`
	Town        struct {
		Title string `json:"title"`
	} `json:"town"`
}

// SuperJob fetches vacancies from api.superjob.ru using an application key
type SuperJob struct {
	httpClient *resty.Client
	cfg        config.SuperJobConfig
	apiKey     string
	maxPages   int
	logger     *zap.Logger
}

// NewSuperJob creates a SuperJob fetcher authenticated with apiKey
func NewSuperJob(httpClient *resty.Client, cfg config.SuperJobConfig, apiKey string, maxPages int, logger *zap.Logger) *SuperJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuperJob{
		httpClient: httpClient,
		cfg:        cfg,
		apiKey:     apiKey,
		maxPages:   maxPages,
		logger:     logger.With(zap.String("vendor", models.VendorSuperJob)),
	}
}

// Name returns the vendor name used in logs and table titles
func (s *SuperJob) Name() string {
	return models.VendorSuperJob
}

// Fetch walks result pages until the API reports there are no more
func (s *SuperJob) Fetch(ctx context.Context, keyword string, periodDays int) (models.FetchResult, error) {
	result := models.FetchResult{Keyword: keyword}

	pages, err := Paginate(ctx, s.maxPages,
		func(ctx context.Context, page int) (*sjSearchResponse, error) {
			return s.fetchPage(ctx, keyword, periodDays, page)
		},
		func(_ int, resp *sjSearchResponse) bool {
			return !*resp.More
		},
		func(resp *sjSearchResponse) error {
			result.Found = *resp.Total
			result.Estimates = collectEstimates(s.logger, s.Name(), toSuperJobListings(resp.Objects), result.Estimates)
			return nil
		},
	)
	result.Pages = pages

	if stderrors.Is(err, ErrMaxPages) {
		s.logger.Warn("page limit reached, results are partial",
			zap.String("keyword", keyword),
			zap.Int("pages", pages))
		return result, nil
	}
	if err != nil {
		return result, err
	}

	s.logger.Debug("keyword fetched",
		zap.String("keyword", keyword),
		zap.Int("pages", pages),
		zap.Int("found", result.Found),
		zap.Int("estimates", len(result.Estimates)))
	return result, nil
}

func (s *SuperJob) fetchPage(ctx context.Context, keyword string, periodDays, page int) (*sjSearchResponse, error) {
	keywordParam := s.cfg.KeywordParam
	if keywordParam == "" {
		keywordParam = "keyword"
	}

	params := map[string]string{
		keywordParam: keyword,
		"period":     strconv.Itoa(periodDays),
		"page":       strconv.Itoa(page),
	}
	if s.cfg.Town != "" {
		params["town"] = s.cfg.Town
	}
	if s.cfg.Currency != "" {
		params["currency"] = s.cfg.Currency
	}
	if s.cfg.Count > 0 {
		params["count"] = strconv.Itoa(s.cfg.Count)
	}

	headers := map[string]string{superJobAPIKeyHeader: s.apiKey}

	var resp sjSearchResponse
	if err := getJSON(ctx, s.httpClient, s.Name(), s.cfg.URL, params, headers, &resp); err != nil {
		return nil, err
	}

	if resp.Total == nil || resp.More == nil {
		return nil, errors.Malformed("SuperJob response is missing total/more", nil)
	}

	return &resp, nil
}

// toSuperJobListings maps vacancies to listings. Currency is already
// restricted by the query, so every published range is kept.
func toSuperJobListings(objects []sjVacancy) []models.Listing {
	listings := make([]models.Listing, 0, len(objects))
	for _, object := range objects {
		listing := models.Listing{
			Currency: object.Currency,
			Area:     object.Town.Title,
		}
		if object.PaymentFrom != nil || object.PaymentTo != nil {
			listing.Bounds = &models.SalaryBounds{From: object.PaymentFrom, To: object.PaymentTo}
		}
		listings = append(listings, listing)
	}
	return listings
}
