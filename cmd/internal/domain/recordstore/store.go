// Package recordstore persists named collections as whole JSON arrays.
//
// There is no query support: callers read the full collection, filter or
// mutate it in memory and write the full collection back. Collection
// serializes those read-modify-write cycles inside one process; separate
// processes sharing the same backend can still overwrite each other.
package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store holds one named collection of records of type T.
type Store[T any] interface {
	// Name is the collection name, used in errors and logs.
	Name() string
	// Read returns the current collection, or an empty slice if it was never written.
	Read(ctx context.Context) ([]T, error)
	// Write replaces the whole collection. Readers never observe a partial write.
	Write(ctx context.Context, records []T) error
}

// encode and decode are shared by every backend so they agree on the on-disk shape.
func encode[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal data: %w", err)
	}
	return data, nil
}

func decode[T any](data []byte) ([]T, error) {
	records := make([]T, 0)
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}
	return records, nil
}

// Encode and Decode expose the shared codec to backends living in other packages.
func Encode[T any](records []T) ([]byte, error) { return encode(records) }
func Decode[T any](data []byte) ([]T, error)    { return decode[T](data) }
