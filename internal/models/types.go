package models

// Vendor names used in logs, titles and the -source flag
const (
	VendorHeadHunter = "HeadHunter"
	VendorSuperJob   = "SuperJob"
	VendorCombined   = "Combined"
)

// SalaryBounds represents the declared salary range of a single listing.
// Either bound may be missing.
type SalaryBounds struct {
	From *float64 `json:"from,omitempty"`
	To   *float64 `json:"to,omitempty"`
}

// Listing is a vacancy reduced to the fields used for salary statistics
type Listing struct {
	Bounds   *SalaryBounds `json:"bounds,omitempty"`
	Currency string        `json:"currency"`
	Area     string        `json:"area"`
}

// FetchResult is everything collected for one keyword from one vendor
type FetchResult struct {
	Keyword   string    `json:"keyword"`
	Found     int       `json:"found"`
	Estimates []float64 `json:"estimates"`
	Pages     int       `json:"pages"`
}

// KeywordStats represents the aggregated salary statistics for a keyword.
// Found is the vendor's own total and is not reconciled with Processed.
type KeywordStats struct {
	Keyword   string `json:"keyword"`
	Found     int    `json:"vacancies_found"`
	Processed int    `json:"vacancies_processed"`
	Average   int    `json:"average_salary"`
}

// VendorReport holds per-keyword statistics in request order
type VendorReport struct {
	Vendor string         `json:"vendor"`
	Title  string         `json:"title"`
	Stats  []KeywordStats `json:"stats"`
}

// Float returns a pointer to v, handy for building SalaryBounds literals
func Float(v float64) *float64 {
	return &v
}
