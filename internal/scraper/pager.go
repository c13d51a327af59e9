package scraper

import (
	"context"
	stderrors "errors"
	"fmt"
)

// DefaultMaxPages bounds pagination when the vendor never reports exhaustion
const DefaultMaxPages = 100

// PageFunc fetches one page by its zero-based index
type PageFunc[T any] func(ctx context.Context, page int) (T, error)

// ExhaustedFunc reports whether page was the last one the vendor serves
type ExhaustedFunc[T any] func(page int, resp T) bool

// ErrMaxPages is returned when pagination hits the page guard
var ErrMaxPages = stderrors.New("pagination stopped at page limit")

// Paginate requests pages 0, 1, 2, ... and hands each one to visit. It stops
// right after the page for which exhausted returns true, so every page is
// requested exactly once. It returns the number of pages visited.
func Paginate[T any](ctx context.Context, maxPages int, fetch PageFunc[T], exhausted ExhaustedFunc[T], visit func(T) error) (int, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	for page := 0; ; page++ {
		if page >= maxPages {
			return page, ErrMaxPages
		}
		if err := ctx.Err(); err != nil {
			return page, err
		}

		resp, err := fetch(ctx, page)
		if err != nil {
			return page, fmt.Errorf("page %d: %w", page, err)
		}
		if err := visit(resp); err != nil {
			return page + 1, err
		}
		if exhausted(page, resp) {
			return page + 1, nil
		}
	}
}
