package repository

import (
	"context"
	"path/filepath"
	"testing"

	"eventmarket/cmd/internal/domain/entity"
	"eventmarket/cmd/internal/domain/recordstore"
	"eventmarket/cmd/internal/domain/sqlite"
	"eventmarket/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func rowVersion(t *testing.T, db *gorm.DB, name string) int64 {
	t.Helper()
	var row entity.CollectionRow
	require.NoError(t, db.Where("name = ?", name).First(&row).Error)
	return row.Version
}

func TestCollectionRepositoryRoundTrip(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	repo := NewCollectionRepository[entity.ReverseProposal](db, "reverseProposals")

	var _ recordstore.Store[entity.ReverseProposal] = repo

	empty, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	first := []entity.ReverseProposal{{ID: "p1", BusinessID: "b1", EventID: "e1", Status: entity.StatusSent}}
	require.NoError(t, repo.Write(ctx, first))

	second := append(first, entity.ReverseProposal{ID: "p2", BusinessID: "b2", EventID: "e1", Status: entity.StatusSent})
	require.NoError(t, repo.Write(ctx, second))

	got, err := repo.Read(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[1].ID)
	assert.Equal(t, int64(2), rowVersion(t, db, "reverseProposals"))
}

func TestCollectionRepositoryRejectsStaleWrites(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	// Two repositories over one database stand in for two processes.
	a := NewCollectionRepository[entity.BusinessDirectoryEntry](db, "businessDirectory")
	b := NewCollectionRepository[entity.BusinessDirectoryEntry](db, "businessDirectory")

	_, err := a.Read(ctx)
	require.NoError(t, err)
	_, err = b.Read(ctx)
	require.NoError(t, err)

	require.NoError(t, a.Write(ctx, []entity.BusinessDirectoryEntry{{ID: "b1", Name: "Acme"}}))

	err = b.Write(ctx, []entity.BusinessDirectoryEntry{{ID: "b2", Name: "Bright Lights"}})
	require.ErrorIs(t, err, ErrStaleCollection)

	got, err := b.Read(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b1", got[0].ID)

	require.NoError(t, b.Write(ctx, append(got, entity.BusinessDirectoryEntry{ID: "b2", Name: "Bright Lights"})))
	assert.Equal(t, int64(2), rowVersion(t, db, "businessDirectory"))

	err = a.Write(ctx, []entity.BusinessDirectoryEntry{{ID: "b3"}})
	require.ErrorIs(t, err, ErrStaleCollection)
}

func TestStaleWriteSurfacesAsStorageUnavailable(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	other := NewCollectionRepository[entity.ReverseProposal](db, "reverseProposals")
	coll := recordstore.NewCollection[entity.ReverseProposal](NewCollectionRepository[entity.ReverseProposal](db, "reverseProposals"))

	err := coll.Update(ctx, func(records []entity.ReverseProposal) ([]entity.ReverseProposal, error) {
		_, err := other.Read(ctx)
		require.NoError(t, err)
		require.NoError(t, other.Write(ctx, []entity.ReverseProposal{{ID: "p0"}}))
		return append(records, entity.ReverseProposal{ID: "p1"}), nil
	})
	require.ErrorIs(t, err, apierror.ErrStorageUnavailable)
	assert.ErrorIs(t, err, ErrStaleCollection)

	got, err := coll.View(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p0", got[0].ID)
}

func TestCollectionRepositoryCollectionsAreIndependent(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	a := NewCollectionRepository[entity.BusinessDirectoryEntry](db, "businessDirectory")
	b := NewCollectionRepository[entity.ReverseProposal](db, "reverseProposals")

	require.NoError(t, a.Write(ctx, []entity.BusinessDirectoryEntry{{ID: "b1", Name: "Acme"}}))

	got, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
