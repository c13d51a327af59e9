package utils

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fr4nk3nst1ner/devsalary/internal/models"
)

const (
	// Multipliers applied when only one side of the range is published
	upperOnlyFactor = 0.8
	lowerOnlyFactor = 1.2
)

// BoundPresent reports whether a salary bound carries a usable value.
// Vendors use both null and 0 for "not specified", so both count as absent.
func BoundPresent(bound *float64) bool {
	return bound != nil && *bound > 0
}

// Estimate predicts a single salary figure from a listing's range
func Estimate(bounds *models.SalaryBounds) (float64, bool) {
	if bounds == nil {
		return 0, false
	}

	hasFrom := BoundPresent(bounds.From)
	hasTo := BoundPresent(bounds.To)

	switch {
	case !hasFrom && !hasTo:
		return 0, false
	case !hasFrom:
		return *bounds.To * upperOnlyFactor, true
	case !hasTo:
		return *bounds.From * lowerOnlyFactor, true
	default:
		return (*bounds.From + *bounds.To) / 2, true
	}
}

// Average returns the mean of values truncated toward zero.
// The second result is false when there is nothing to average.
func Average(values []float64) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return int(sum / float64(len(values))), true
}

// IsValidSource checks if the source is supported
func IsValidSource(source string) bool {
	validSources := map[string]bool{
		"all":        true,
		"hh":         true,
		"headhunter": true,
		"sj":         true,
		"superjob":   true,
	}
	return validSources[strings.ToLower(source)]
}

// NormalizeSource maps source aliases to vendor names
func NormalizeSource(source string) []string {
	switch strings.ToLower(source) {
	case "hh", "headhunter":
		return []string{models.VendorHeadHunter}
	case "sj", "superjob":
		return []string{models.VendorSuperJob}
	default:
		return []string{models.VendorSuperJob, models.VendorHeadHunter}
	}
}

// FormatSalary formats a salary for human readable output, e.g. "150,000 RUB"
func FormatSalary(salary int) string {
	if salary <= 0 {
		return "Not Available"
	}
	return fmt.Sprintf("%s RUB", humanize.Comma(int64(salary)))
}

// NormalizeKeywords trims keywords, splits comma separated values and drops
// duplicates while keeping the first occurrence order
func NormalizeKeywords(raw []string) []string {
	seen := make(map[string]struct{})
	var keywords []string

	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			keyword := strings.TrimSpace(part)
			if keyword == "" {
				continue
			}
			key := strings.ToLower(keyword)
			if _, exists := seen[key]; exists {
				continue
			}
			seen[key] = struct{}{}
			keywords = append(keywords, keyword)
		}
	}

	return keywords
}
