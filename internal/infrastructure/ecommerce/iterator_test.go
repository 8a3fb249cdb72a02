package ecommerce

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagedIteratorWalksPages(t *testing.T) {
	pages := [][]int{{1, 2}, {3}, {}}
	var calls int
	it := newPagedIterator(func(ctx context.Context, cursor *string) ([]int, bool, string, error) {
		page := pages[calls]
		calls++
		return page, calls < len(pages), "next", nil
	})

	var got []int
	for it.Next(context.Background()) {
		got = append(got, it.Record())
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, len(pages), calls)
}

func TestPagedIteratorStopsOnFetchError(t *testing.T) {
	boom := errors.New("boom")
	it := newPagedIterator(func(ctx context.Context, cursor *string) ([]int, bool, string, error) {
		return nil, false, "", boom
	})

	assert.False(t, it.Next(context.Background()))
	assert.ErrorIs(t, it.Err(), boom)
	// Next stays false once an error is recorded.
	assert.False(t, it.Next(context.Background()))
}

func TestFailedIterator(t *testing.T) {
	boom := errors.New("gateway init failed")
	it := &failedIterator[int]{err: boom}
	assert.False(t, it.Next(context.Background()))
	assert.ErrorIs(t, it.Err(), boom)
}
