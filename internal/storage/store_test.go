// store_test.go - Tests for the in-memory document store
package storage

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/docqa/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore(8, time.Minute)
}

func TestMemoryStore_Save(t *testing.T) {
	t.Run("assigns fresh ids", func(t *testing.T) {
		store := createTestStore(t)
		seen := make(map[string]bool)
		for i := 0; i < 5; i++ {
			doc, err := store.Save(models.Document{Name: "a.pdf", Content: "text"})
			require.NoError(t, err)
			assert.NotEmpty(t, doc.ID)
			assert.False(t, seen[doc.ID], "id reused: %s", doc.ID)
			seen[doc.ID] = true
		}
		assert.Equal(t, 5, store.Len())
	})

	t.Run("ignores caller id", func(t *testing.T) {
		store := createTestStore(t)
		doc, err := store.Save(models.Document{ID: "chosen", Name: "a.pdf"})
		require.NoError(t, err)
		assert.NotEqual(t, "chosen", doc.ID)
	})

	t.Run("stored copy is isolated", func(t *testing.T) {
		store := createTestStore(t)
		doc, err := store.Save(models.Document{Name: "a.pdf", Content: "original"})
		require.NoError(t, err)
		doc.Content = "mutated"

		got, err := store.Get(doc.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", got.Content)
	})
}

func TestMemoryStore_Get(t *testing.T) {
	store := createTestStore(t)
	saved, err := store.Save(models.Document{Name: "slides.pptx", Size: 42, Type: "application/x", Content: "c"})
	require.NoError(t, err)

	got, err := store.Get(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, *saved, *got)

	_, err = store.Get("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_Delete(t *testing.T) {
	store := createTestStore(t)
	saved, _ := store.Save(models.Document{Name: "a.pdf"})

	require.NoError(t, store.Delete(saved.ID))
	assert.Equal(t, 0, store.Len())

	err := store.Delete(saved.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_EvictsOldest(t *testing.T) {
	store := NewMemoryStore(3, time.Minute)
	var ids []string
	for i := 0; i < 4; i++ {
		doc, err := store.Save(models.Document{Name: fmt.Sprintf("doc%d.pdf", i)})
		require.NoError(t, err)
		ids = append(ids, doc.ID)
	}

	assert.Equal(t, 3, store.Len())
	_, err := store.Get(ids[0])
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ids[3])
	assert.NoError(t, err)
}

func TestMemoryStore_Expires(t *testing.T) {
	store := NewMemoryStore(4, 20*time.Millisecond)
	saved, _ := store.Save(models.Document{Name: "a.pdf"})

	assert.Eventually(t, func() bool {
		_, err := store.Get(saved.ID)
		return errors.Is(err, ErrNotFound)
	}, time.Second, 10*time.Millisecond)
}

func TestNewMemoryStore_Defaults(t *testing.T) {
	store := NewMemoryStore(0, 0)
	require.NotNil(t, store)
	_, err := store.Save(models.Document{Name: "a.pdf"})
	assert.NoError(t, err)
}
