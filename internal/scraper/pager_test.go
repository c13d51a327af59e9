package scraper

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePage struct {
	index int
	total int
}

func TestPaginateRequestsEveryPageOnce(t *testing.T) {
	for _, total := range []int{1, 2, 5} {
		var requested, visited []int

		pages, err := Paginate(context.Background(), 0,
			func(_ context.Context, page int) (fakePage, error) {
				requested = append(requested, page)
				return fakePage{index: page, total: total}, nil
			},
			func(page int, resp fakePage) bool { return page >= resp.total-1 },
			func(resp fakePage) error {
				visited = append(visited, resp.index)
				return nil
			},
		)

		require.NoError(t, err)
		assert.Equal(t, total, pages)
		assert.Len(t, requested, total, "exactly %d requests", total)
		assert.Equal(t, requested, visited)
	}
}

func TestPaginateZeroPagesStopsAfterFirstRequest(t *testing.T) {
	calls := 0
	pages, err := Paginate(context.Background(), 0,
		func(_ context.Context, page int) (fakePage, error) {
			calls++
			return fakePage{total: 0}, nil
		},
		func(page int, resp fakePage) bool { return page >= resp.total-1 },
		func(fakePage) error { return nil },
	)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
	assert.Equal(t, 1, calls)
}

func TestPaginateStopsOnError(t *testing.T) {
	boom := stderrors.New("boom")
	calls := 0

	_, err := Paginate(context.Background(), 0,
		func(_ context.Context, page int) (fakePage, error) {
			calls++
			if page == 1 {
				return fakePage{}, boom
			}
			return fakePage{total: 10}, nil
		},
		func(page int, resp fakePage) bool { return page >= resp.total-1 },
		func(fakePage) error { return nil },
	)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestPaginateMaxPages(t *testing.T) {
	calls := 0
	pages, err := Paginate(context.Background(), 3,
		func(_ context.Context, page int) (fakePage, error) {
			calls++
			return fakePage{}, nil
		},
		func(int, fakePage) bool { return false },
		func(fakePage) error { return nil },
	)
	assert.ErrorIs(t, err, ErrMaxPages)
	assert.EqualError(t, err, "pagination stopped at page limit")
	assert.Equal(t, 3, pages)
	assert.Equal(t, 3, calls)
}

func TestPaginateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Paginate(ctx, 0,
		func(_ context.Context, page int) (fakePage, error) {
			calls++
			return fakePage{}, nil
		},
		func(int, fakePage) bool { return false },
		func(fakePage) error { return nil },
	)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}
