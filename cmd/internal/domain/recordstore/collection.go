package recordstore

import (
	"context"
	"errors"
	"sync"

	"eventmarket/cmd/internal/utils/apierror"
)

// Collection is the single writer for one Store.
//
// Every Update holds the lock across its read, compute and write, so two
// concurrent mutations in this process can no longer discard each other.
type Collection[T any] struct {
	mu    sync.Mutex
	store Store[T]
}

func NewCollection[T any](store Store[T]) *Collection[T] {
	return &Collection[T]{store: store}
}

func (c *Collection[T]) Name() string {
	return c.store.Name()
}

// View returns a snapshot of the collection. The slice is owned by the caller.
func (c *Collection[T]) View(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.store.Read(ctx)
	if err != nil {
		return nil, c.unavailable(err)
	}
	return records, nil
}

// Update reads the collection, hands it to fn and writes back whatever fn returns.
//
// If fn fails nothing is written and its error is returned untouched, which is
// how domain preconditions reject an operation without a partial write.
func (c *Collection[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.store.Read(ctx)
	if err != nil {
		return c.unavailable(err)
	}

	next, err := fn(records)
	if err != nil {
		return err
	}

	if err := c.store.Write(ctx, next); err != nil {
		return c.unavailable(err)
	}
	return nil
}

func (c *Collection[T]) unavailable(err error) error {
	// Cancellation is the caller's doing, not a storage outage.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apierror.StorageUnavailable(c.store.Name(), err)
}
