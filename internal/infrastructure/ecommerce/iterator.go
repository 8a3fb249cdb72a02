package ecommerce

import (
	"context"
)

// fetchPage loads one page of records. A nil cursor requests the first
// page; hasNext/endCursor drive the following call.
type fetchPage[T any] func(ctx context.Context, cursor *string) (items []T, hasNext bool, endCursor string, err error)

// pagedIterator adapts cursor pagination to the domain iterator contract.
// It buffers one page at a time; a transport error ends iteration and is
// reported through Err.
type pagedIterator[T any] struct {
	fetch   fetchPage[T]
	buf     []T
	idx     int
	cursor  *string
	done    bool
	err     error
	current T
}

func newPagedIterator[T any](fetch fetchPage[T]) *pagedIterator[T] {
	return &pagedIterator[T]{fetch: fetch}
}

// Next advances to the next record, fetching further pages as needed.
func (it *pagedIterator[T]) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	for it.idx >= len(it.buf) {
		if it.done {
			return false
		}
		items, hasNext, endCursor, err := it.fetch(ctx, it.cursor)
		if err != nil {
			it.err = err
			return false
		}
		it.buf = items
		it.idx = 0
		if hasNext {
			cursor := endCursor
			it.cursor = &cursor
		} else {
			it.done = true
		}
	}
	it.current = it.buf[it.idx]
	it.idx++
	return true
}

// Record returns the current record.
func (it *pagedIterator[T]) Record() T {
	return it.current
}

// Err returns the error that stopped iteration, if any.
func (it *pagedIterator[T]) Err() error {
	return it.err
}

// failedIterator yields nothing and reports a fixed error.
type failedIterator[T any] struct {
	err error
}

func (it *failedIterator[T]) Next(context.Context) bool { return false }
func (it *failedIterator[T]) Record() (zero T)          { return zero }
func (it *failedIterator[T]) Err() error                { return it.err }
