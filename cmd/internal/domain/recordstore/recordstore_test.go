package recordstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"eventmarket/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string  `json:"id"`
	Note  *string `json:"note,omitempty"`
	Count int     `json:"count"`
}

func TestFileStoreReadMissingReturnsEmpty(t *testing.T) {
	store := NewFileStore[item](t.TempDir(), "items")

	items, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestFileStoreWriteThenRead(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore[item](dir, "items")
	note := "hello"

	err := store.Write(context.Background(), []item{{ID: "a", Note: &note}, {ID: "b", Count: 2}})
	require.NoError(t, err)

	items, err := store.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "hello", *items[0].Note)
	assert.Nil(t, items[1].Note)

	// No temp files are left behind after the rename
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "items.json", entries[0].Name())
}

func TestFileStoreOmitsAbsentOptionalFields(t *testing.T) {
	store := NewFileStore[item](t.TempDir(), "items")
	require.NoError(t, store.Write(context.Background(), []item{{ID: "a"}}))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "note")
	assert.NotContains(t, string(raw), "null")
}

func TestFileStoreWriteNilWritesEmptyArray(t *testing.T) {
	store := NewFileStore[item](t.TempDir(), "items")
	require.NoError(t, store.Write(context.Background(), nil))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestFileStoreWriteFailsWhenDirectoryIsAFile(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	store := NewFileStore[item](blocker, "items")
	err := store.Write(context.Background(), []item{{ID: "a"}})
	assert.Error(t, err)
}

func TestCollectionUpdateSerializesWriters(t *testing.T) {
	col := NewCollection[item](NewFileStore[item](t.TempDir(), "items"))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := col.Update(ctx, func(items []item) ([]item, error) {
				if len(items) == 0 {
					return []item{{ID: "counter", Count: 1}}, nil
				}
				items[0].Count++
				return items, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := col.View(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 25, items[0].Count)
}

func TestCollectionUpdateRejectionWritesNothing(t *testing.T) {
	store := NewFileStore[item](t.TempDir(), "items")
	col := NewCollection[item](store)
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, []item{{ID: "a"}}))

	rejected := errors.New("rejected")
	err := col.Update(ctx, func(items []item) ([]item, error) {
		items[0].Count = 99
		return nil, rejected
	})
	assert.ErrorIs(t, err, rejected)

	items, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, items[0].Count)
}

type brokenStore struct{}

func (brokenStore) Name() string { return "broken" }
func (brokenStore) Read(context.Context) ([]item, error) {
	return nil, errors.New("disk on fire")
}
func (brokenStore) Write(context.Context, []item) error {
	return errors.New("disk on fire")
}

func TestCollectionWrapsBackendFailures(t *testing.T) {
	col := NewCollection[item](brokenStore{})

	_, err := col.View(context.Background())
	assert.ErrorIs(t, err, apierror.ErrStorageUnavailable)

	err = col.Update(context.Background(), func(items []item) ([]item, error) { return items, nil })
	assert.ErrorIs(t, err, apierror.ErrStorageUnavailable)

	var de *apierror.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "broken", de.ID)
}
