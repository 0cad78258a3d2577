package imagestore

import (
	"context"
	"sync"
	"testing"
	"time"

	"soko/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu       sync.Mutex
	attempts []string
	results  map[string]Result
}

func (f *fakeStore) Delete(_ context.Context, publicID string) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts = append(f.attempts, publicID)
	if r, ok := f.results[publicID]; ok {
		return r, nil
	}
	return ResultOK, nil
}

func TestCleanUpSkipsUnparseableImages(t *testing.T) {
	store := &fakeStore{}
	cleaner := NewCleaner(store, time.Second)

	cleaner.CleanUp([]models.ImageRef{
		{URL: "https://res.cloudinary.com/demo/image/upload/v1/uploads/a.jpg"},
		{URL: "https://example.com/not-cloudinary.jpg"},
		{URL: "https://res.cloudinary.com/demo/image/upload/v1/uploads/b.jpg"},
	})

	// Two parseable images, first candidate succeeds for each.
	assert.Equal(t, []string{"uploads/a", "uploads/b"}, store.attempts)
}

func TestCleanUpFallsBackThroughCandidates(t *testing.T) {
	store := &fakeStore{results: map[string]Result{
		"uploads/pic": ResultError,
		"pic":         ResultNotFound,
	}}
	cleaner := NewCleaner(store, time.Second)

	cleaner.CleanUp([]models.ImageRef{{URL: "https://x", PublicID: "pic"}})

	// Folder-prefixed form first, bare form second; not_found counts as done.
	assert.Equal(t, []string{"uploads/pic", "pic"}, store.attempts)
}

func TestCleanUpAllCandidatesFailingIsNonFatal(t *testing.T) {
	store := &fakeStore{results: map[string]Result{
		"uploads/pic": ResultError,
		"pic":         ResultError,
	}}
	cleaner := NewCleaner(store, time.Second)

	// Must not panic or error; the failure is only logged.
	cleaner.CleanUp([]models.ImageRef{{URL: "https://x", PublicID: "pic"}})
	assert.Len(t, store.attempts, 2)
}

func TestCleanUpRemovedDeletesOnlyDroppedImages(t *testing.T) {
	old := []models.ImageRef{
		{URL: "https://x/1", PublicID: "uploads/keep"},
		{URL: "https://x/2", PublicID: "uploads/drop"},
	}
	current := []models.ImageRef{
		{URL: "https://x/1", PublicID: "uploads/keep"},
		{URL: "https://x/3", PublicID: "uploads/fresh"},
	}

	store := &fakeStore{}
	cleaner := NewCleaner(store, time.Second)
	cleaner.CleanUpRemoved(old, current)

	require.Equal(t, []string{"uploads/drop"}, store.attempts)
}
