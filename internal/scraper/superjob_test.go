package scraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/fr4nk3nst1ner/devsalary/internal/client"
	"github.com/fr4nk3nst1ner/devsalary/internal/config"
	"github.com/fr4nk3nst1ner/devsalary/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sjPage(total int, more bool, objects ...map[string]any) map[string]any {
	if objects == nil {
		objects = []map[string]any{}
	}
	return map[string]any{"total": total, "more": more, "objects": objects}
}

func sjObject(from, to any) map[string]any {
	return map[string]any{
		"id":           1,
		"profession":   "Developer",
		"payment_from": from,
		"payment_to":   to,
		"currency":     "rub",
		"town":         map[string]any{"title": "Москва"},
	}
}

func newSuperJobServer(t *testing.T, pages []map[string]any) (*httptest.Server, *[]http.Header, *[]map[string]string) {
	t.Helper()
	var headers []http.Header
	var queries []map[string]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = append(headers, r.Header.Clone())
		q := map[string]string{}
		for k := range r.URL.Query() {
			q[k] = r.URL.Query().Get(k)
		}
		queries = append(queries, q)

		if r.Header.Get("X-Api-App-Id") == "" {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":{"code":403,"message":"Invalid app_key"}}`))
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page >= len(pages) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pages[page])
	}))
	return ts, &headers, &queries
}

func newTestSuperJob(url, key string) *SuperJob {
	cfg := config.Default().SuperJob
	cfg.URL = url
	return NewSuperJob(client.CreateHTTPClient(client.Options{}), cfg, key, 0, nil)
}

func TestSuperJobFetchAllPages(t *testing.T) {
	ts, headers, queries := newSuperJobServer(t, []map[string]any{
		sjPage(42, true, sjObject(100000, 200000), sjObject(0, 0)),
		sjPage(42, false, sjObject(nil, 100000), sjObject(100000, 0)),
	})
	defer ts.Close()

	result, err := newTestSuperJob(ts.URL, "v3.secret").Fetch(context.Background(), "python", 14)
	require.NoError(t, err)

	require.Len(t, *queries, 2, "stops once more is false")
	for i, q := range *queries {
		assert.Equal(t, strconv.Itoa(i), q["page"])
		assert.Equal(t, "python", q["keyword"])
		assert.Equal(t, "14", q["period"])
		assert.Equal(t, "Москва", q["town"])
		assert.Equal(t, "rub", q["currency"])
		assert.Equal(t, "100", q["count"])
	}
	for _, h := range *headers {
		assert.Equal(t, "v3.secret", h.Get("X-Api-App-Id"))
	}

	assert.Equal(t, 42, result.Found)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, []float64{150000, 80000, 120000}, result.Estimates, "zero payments count as absent")
}

func TestSuperJobKeywordParam(t *testing.T) {
	ts, _, queries := newSuperJobServer(t, []map[string]any{sjPage(0, false)})
	defer ts.Close()

	cfg := config.Default().SuperJob
	cfg.URL = ts.URL
	cfg.KeywordParam = "keywords"
	_, err := NewSuperJob(client.CreateHTTPClient(client.Options{}), cfg, "key", 0, nil).
		Fetch(context.Background(), "java", 30)
	require.NoError(t, err)
	assert.Equal(t, "java", (*queries)[0]["keywords"])
}

func TestSuperJobInvalidKey(t *testing.T) {
	ts, _, queries := newSuperJobServer(t, nil)
	defer ts.Close()

	_, err := newTestSuperJob(ts.URL, "").Fetch(context.Background(), "python", 30)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTypeUpstream))
	assert.Contains(t, err.Error(), "Invalid app_key")
	assert.Len(t, *queries, 1)
}

func TestSuperJobMissingMoreFlag(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total": 3, "objects": []}`))
	}))
	defer ts.Close()

	_, err := newTestSuperJob(ts.URL, "key").Fetch(context.Background(), "python", 30)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTypeMalformed))
}

func TestSuperJobPageLimitKeepsPartialResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sjPage(1000, true, sjObject(100000, 100000)))
	}))
	defer ts.Close()

	cfg := config.Default().SuperJob
	cfg.URL = ts.URL
	result, err := NewSuperJob(client.CreateHTTPClient(client.Options{}), cfg, "key", 2, nil).
		Fetch(context.Background(), "go", 30)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, []float64{100000, 100000}, result.Estimates)
}
