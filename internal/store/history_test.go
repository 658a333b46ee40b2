package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layarproject/layar/internal/domain"
	"github.com/layarproject/layar/internal/log"
)

func newMemHistory(t *testing.T) *History {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewHistory(s, log.NullLogger())
}

func TestHistoryAddAndAll(t *testing.T) {
	h := newMemHistory(t)
	h.Add(domain.WatchHistoryItem{ID: "1", Type: domain.ContentTypeMovie, Title: "First"})
	h.Add(domain.WatchHistoryItem{ID: "2", Type: domain.ContentTypeSeries, Title: "Second"})

	items := h.All()
	require.Len(t, items, 2)
	assert.Equal(t, "Second", items[0].Title, "most recent first")
	assert.Equal(t, "First", items[1].Title)
	assert.NotZero(t, items[0].WatchedAt)
}

func TestHistoryUpsertSameKey(t *testing.T) {
	h := newMemHistory(t)
	base := time.Now()
	h.now = func() time.Time { return base }
	h.Add(domain.WatchHistoryItem{ID: "1", Type: domain.ContentTypeSeries, Title: "S1E1", Episode: 1})
	h.Add(domain.WatchHistoryItem{ID: "other", Type: domain.ContentTypeMovie, Title: "Other"})

	h.now = func() time.Time { return base.Add(time.Minute) }
	h.Add(domain.WatchHistoryItem{ID: "1", Type: domain.ContentTypeSeries, Title: "S1E2", Episode: 2})

	items := h.All()
	require.Len(t, items, 2)
	assert.Equal(t, "S1E2", items[0].Title, "rewatch replaces the old entry up front")
	assert.Equal(t, 2, items[0].Episode)
	assert.Equal(t, base.Add(time.Minute).UnixMilli(), items[0].WatchedAt)
}

func TestHistorySameIDDifferentTypeCoexist(t *testing.T) {
	h := newMemHistory(t)
	h.Add(domain.WatchHistoryItem{ID: "7", Type: domain.ContentTypeMovie})
	h.Add(domain.WatchHistoryItem{ID: "7", Type: domain.ContentTypeSeries})

	assert.Len(t, h.All(), 2)
}

func TestHistoryCap(t *testing.T) {
	h := newMemHistory(t)
	for i := 0; i < maxHistoryItems+1; i++ {
		h.Add(domain.WatchHistoryItem{
			ID:   fmt.Sprintf("%d", i),
			Type: domain.ContentTypeMovie,
		})
	}

	items := h.All()
	require.Len(t, items, maxHistoryItems)
	assert.Equal(t, fmt.Sprintf("%d", maxHistoryItems), items[0].ID)
	// The very first entry fell off the end.
	for _, item := range items {
		assert.NotEqual(t, "0", item.ID)
	}
}

func TestHistoryByType(t *testing.T) {
	h := newMemHistory(t)
	h.Add(domain.WatchHistoryItem{ID: "m1", Type: domain.ContentTypeMovie})
	h.Add(domain.WatchHistoryItem{ID: "d1", Type: domain.ContentTypeDrama})
	h.Add(domain.WatchHistoryItem{ID: "m2", Type: domain.ContentTypeMovie})

	movies := h.ByType(domain.ContentTypeMovie)
	require.Len(t, movies, 2)
	assert.Equal(t, "m2", movies[0].ID)
	assert.Equal(t, "m1", movies[1].ID)
}

func TestHistoryRemove(t *testing.T) {
	h := newMemHistory(t)
	h.Add(domain.WatchHistoryItem{ID: "1", Type: domain.ContentTypeMovie})
	h.Add(domain.WatchHistoryItem{ID: "2", Type: domain.ContentTypeMovie})

	h.Remove("1", domain.ContentTypeMovie)
	items := h.All()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)

	h.Remove("missing", domain.ContentTypeMovie)
	assert.Len(t, h.All(), 1)
}

func TestHistoryClear(t *testing.T) {
	h := newMemHistory(t)
	h.Add(domain.WatchHistoryItem{ID: "1", Type: domain.ContentTypeMovie})
	h.Clear()
	assert.Empty(t, h.All())
}

func TestHistoryCorruptDataReadsEmpty(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Set(historyKey, "not a list"))

	h := NewHistory(s, log.NullLogger())
	assert.Empty(t, h.All())

	// Adding after corruption starts a fresh list.
	h.Add(domain.WatchHistoryItem{ID: "1", Type: domain.ContentTypeMovie})
	assert.Len(t, h.All(), 1)
}

func TestHistoryPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	h := NewHistory(s, log.NullLogger())
	h.Add(domain.WatchHistoryItem{ID: "1", Type: domain.ContentTypeMovie, Title: "Kept"})
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()
	items := NewHistory(s, log.NullLogger()).All()
	require.Len(t, items, 1)
	assert.Equal(t, "Kept", items[0].Title)
}
