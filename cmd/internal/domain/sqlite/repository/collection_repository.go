package repository

import (
	"context"
	"errors"
	"sync"

	"eventmarket/cmd/internal/domain/entity"
	"eventmarket/cmd/internal/domain/recordstore"
	"eventmarket/cmd/internal/utils"

	"gorm.io/gorm"
)

// ErrStaleCollection is returned by Write when another writer replaced the row
// after this repository last read it. The caller has to read again.
var ErrStaleCollection = errors.New("collection changed since it was last read")

// CollectionRepository is a recordstore.Store keeping the whole collection in one row.
//
// Every write is conditional on the row version seen by the previous Read or Write,
// so two processes sharing the database cannot silently overwrite each other.
type CollectionRepository[T any] struct {
	db   *gorm.DB
	name string

	mu   sync.Mutex
	seen int64
}

func NewCollectionRepository[T any](db *gorm.DB, name string) *CollectionRepository[T] {
	return &CollectionRepository[T]{db: db, name: name}
}

func (r *CollectionRepository[T]) Name() string {
	return r.name
}

func (r *CollectionRepository[T]) Read(ctx context.Context) ([]T, error) {
	var row entity.CollectionRow
	err := r.db.WithContext(ctx).
		Where("name = ?", r.name).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.observe(0)
		return make([]T, 0), nil
	}

	if err != nil {
		return nil, err
	}

	r.observe(row.Version)
	return recordstore.Decode[T]([]byte(row.Payload))
}

func (r *CollectionRepository[T]) Write(ctx context.Context, records []T) error {
	data, err := recordstore.Encode(records)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.seen + 1
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.CollectionRow{}).
			Where("name = ? AND version = ?", r.name, r.seen).
			Updates(map[string]any{
				"payload":    string(data),
				"version":    next,
				"updated_at": utils.NowUTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			return nil
		}

		// Nothing matched: either the row was never written or someone else moved it on.
		if r.seen != 0 {
			return ErrStaleCollection
		}

		var count int64
		if err := tx.Model(&entity.CollectionRow{}).Where("name = ?", r.name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrStaleCollection
		}

		return tx.Create(&entity.CollectionRow{
			Name:      r.name,
			Payload:   string(data),
			Version:   next,
			UpdatedAt: utils.NowUTC(),
		}).Error
	})
	if err != nil {
		return err
	}

	r.seen = next
	return nil
}

func (r *CollectionRepository[T]) observe(version int64) {
	r.mu.Lock()
	r.seen = version
	r.mu.Unlock()
}
