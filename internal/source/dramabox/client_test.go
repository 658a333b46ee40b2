package dramabox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layarproject/layar/internal/domain"
)

func TestDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/detail", r.URL.Path)
		assert.Equal(t, "b42", r.URL.Query().Get("bookId"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"bookId": "b42", "bookName": "Found", "chapterCount": 60},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	drama, err := c.Detail(context.Background(), "b42")
	require.NoError(t, err)
	assert.Equal(t, "Found", drama.BookName)
	assert.Equal(t, 60, drama.ChapterCount)
}

func TestDetailNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Detail(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "ceo", r.URL.Query().Get("query"))
		json.NewEncoder(w).Encode([]map[string]any{{"bookId": "s1", "bookName": "CEO Story"}})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	dramas, err := c.Search(context.Background(), "ceo")
	require.NoError(t, err)
	require.Len(t, dramas, 1)
	assert.Equal(t, "s1", dramas[0].BookID)
}

func TestTrendingPageClamp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Trending(context.Background(), 0)
	require.NoError(t, err)
}
