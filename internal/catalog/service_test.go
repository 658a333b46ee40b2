package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layarproject/layar/internal/domain"
	"github.com/layarproject/layar/internal/fetch"
	"github.com/layarproject/layar/internal/log"
	"github.com/layarproject/layar/internal/source/dramabox"
	"github.com/layarproject/layar/internal/source/tmdb"
	"github.com/layarproject/layar/internal/source/yts"
)

func failingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusInternalServerError)
}

// newTestService wires a Service against three stub upstreams.
func newTestService(t *testing.T, tmdbH, ytsH, dramaH http.HandlerFunc) *Service {
	t.Helper()
	if tmdbH == nil {
		tmdbH = failingHandler
	}
	if ytsH == nil {
		ytsH = failingHandler
	}
	if dramaH == nil {
		dramaH = failingHandler
	}

	tmdbSrv := httptest.NewServer(tmdbH)
	ytsSrv := httptest.NewServer(ytsH)
	dramaSrv := httptest.NewServer(dramaH)
	t.Cleanup(func() {
		tmdbSrv.Close()
		ytsSrv.Close()
		dramaSrv.Close()
	})

	fetcher := fetch.NewClient(nil, time.Second, log.NullLogger())
	return NewService(
		tmdb.NewClient(tmdbSrv.URL, "test-key", fetcher, log.NullLogger()),
		yts.NewClient(ytsSrv.URL, fetcher, log.NullLogger()),
		dramabox.NewClient(dramaSrv.URL, fetcher, log.NullLogger()),
		log.NullLogger(),
	)
}

func writeJSON(w http.ResponseWriter, v any) {
	json.NewEncoder(w).Encode(v)
}

func TestMoviesPopular(t *testing.T) {
	tmdbH := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		writeJSON(w, map[string]any{
			"page":        1,
			"total_pages": 42,
			"results": []map[string]any{
				{"id": 1, "title": "A", "release_date": "2020-03-01", "vote_average": 7.2},
				{"id": 2, "title": "B", "release_date": "2021-07-15"},
			},
		})
	}

	s := newTestService(t, tmdbH, nil, nil)
	page := s.Movies(context.Background(), MoviesPopular, 1)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 42, page.TotalPages)
	assert.Equal(t, "A", page.Items[0].Title)
	assert.Equal(t, 2020, page.Items[0].Year)
	assert.Equal(t, 7.2, page.Items[0].Rating)
}

func TestMoviesDegradeToEmptyPage(t *testing.T) {
	s := newTestService(t, nil, nil, nil)
	page := s.Movies(context.Background(), MoviesTrending, 1)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.TotalPages)
}

func TestSearchMergesSourcesAndDropsPeople(t *testing.T) {
	tmdbH := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/multi", r.URL.Path)
		assert.Equal(t, "love", r.URL.Query().Get("query"))
		writeJSON(w, map[string]any{
			"page":        1,
			"total_pages": 3,
			"results": []map[string]any{
				{"id": 1, "media_type": "movie", "title": "Love Movie"},
				{"id": 2, "media_type": "person", "name": "Some Actor"},
				{"id": 3, "media_type": "tv", "name": "Love Series", "first_air_date": "2022-01-01"},
			},
		})
	}
	dramaH := func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"data": []map[string]any{
			{"bookId": "d1", "bookName": "Love Drama"},
		}})
	}

	s := newTestService(t, tmdbH, nil, dramaH)
	results := s.Search(context.Background(), "love", 1)

	require.Len(t, results.Results, 2)
	assert.Equal(t, domain.ContentTypeMovie, results.Results[0].Type)
	assert.Equal(t, "Love Movie", results.Results[0].Movie.Title)
	assert.Equal(t, domain.ContentTypeSeries, results.Results[1].Type)
	assert.Equal(t, "Love Series", results.Results[1].Series.Name)
	assert.Equal(t, 3, results.TotalPages)

	require.Len(t, results.Dramas, 1)
	assert.Equal(t, "Love Drama", results.Dramas[0].BookName)
}

func TestSearchHalfFailureKeepsOtherHalf(t *testing.T) {
	dramaH := func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"data": []map[string]any{
			{"bookId": "d1", "bookName": "Still Here"},
		}})
	}

	s := newTestService(t, nil, nil, dramaH)
	results := s.Search(context.Background(), "anything", 1)
	assert.Empty(t, results.Results)
	require.Len(t, results.Dramas, 1)
	assert.Equal(t, "Still Here", results.Dramas[0].BookName)
}

func TestMovieRecommendationsFallsBackToSimilar(t *testing.T) {
	tmdbH := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/5/recommendations":
			writeJSON(w, map[string]any{"results": []any{}})
		case "/movie/5/similar":
			writeJSON(w, map[string]any{"results": []map[string]any{
				{"id": 9, "title": "Similar Pick"},
			}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}

	s := newTestService(t, tmdbH, nil, nil)
	movies := s.MovieRecommendations(context.Background(), 5)
	require.Len(t, movies, 1)
	assert.Equal(t, "Similar Pick", movies[0].Title)
}

func TestTorrentMovies(t *testing.T) {
	ytsH := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list_movies.json", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		writeJSON(w, map[string]any{
			"status": "ok",
			"data": map[string]any{
				"movie_count": 45,
				"movies": []map[string]any{
					{"id": 1, "title": "Seeded", "year": 2020, "torrents": []map[string]any{
						{"quality": "1080p", "seeds": 120, "size": "2.1 GB"},
					}},
				},
			},
		})
	}

	s := newTestService(t, nil, ytsH, nil)
	result := s.TorrentMovies(context.Background(), yts.ListParams{Page: 1})
	require.Len(t, result.Movies, 1)
	assert.Equal(t, 45, result.MovieCount)
	assert.Equal(t, 3, result.TotalPages)
	require.Len(t, result.Movies[0].Torrents, 1)
	assert.Equal(t, "1080p", result.Movies[0].Torrents[0].Quality)
}

func TestEpisodeVideoURL(t *testing.T) {
	s := newTestService(t, nil, nil, nil)

	url, err := s.EpisodeVideoURL(domain.DramaEpisode{
		ChapterID: "c1", DirectURL: "https://cdn/ep.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/ep.mp4", url)

	_, err = s.EpisodeVideoURL(domain.DramaEpisode{ChapterID: "c2"})
	assert.ErrorIs(t, err, domain.ErrVideoUnavailable)
}

func TestDramaDetailNotFoundIsNil(t *testing.T) {
	dramaH := func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"data": []any{}})
	}
	s := newTestService(t, nil, nil, dramaH)
	assert.Nil(t, s.DramaDetail(context.Background(), "missing"))
}

func TestEnhancedMovieMergesBothSources(t *testing.T) {
	tmdbH := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/movie":
			assert.Equal(t, "Inception", r.URL.Query().Get("query"))
			assert.Equal(t, "2010", r.URL.Query().Get("year"))
			writeJSON(w, map[string]any{"results": []map[string]any{
				{"id": 27205, "title": "Inception", "release_date": "2010-07-15"},
			}})
		case "/movie/27205":
			writeJSON(w, map[string]any{
				"id": 27205, "title": "Inception", "release_date": "2010-07-15",
				"vote_average": 8.4, "runtime": 148, "overview": "A thief who steals secrets.",
				"poster_path": "/incep.jpg",
				"genres":      []map[string]any{{"id": 878, "name": "Science Fiction"}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
	ytsH := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/list_movies.json":
			assert.Equal(t, "Inception 2010", r.URL.Query().Get("query_term"))
			writeJSON(w, map[string]any{"data": map[string]any{
				"movie_count": 1,
				"movies": []map[string]any{{
					"id": 55, "title": "Inception", "year": 2010, "imdb_code": "tt1375666",
					"torrents": []map[string]any{{"quality": "1080p", "seeds": 300}},
				}},
			}})
		case "/movie_details.json":
			assert.Equal(t, "55", r.URL.Query().Get("movie_id"))
			writeJSON(w, map[string]any{"data": map[string]any{
				"movie": map[string]any{
					"id": 55, "title": "Inception", "year": 2010, "imdb_code": "tt1375666",
					"torrents": []map[string]any{
						{"quality": "720p", "seeds": 150},
						{"quality": "1080p", "seeds": 300},
					},
				},
			}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}

	s := newTestService(t, tmdbH, ytsH, nil)
	movie := s.EnhancedMovie(context.Background(), "Nonton Inception (2010)", 2010)

	assert.Equal(t, 27205, movie.TMDBID)
	assert.Equal(t, "Inception", movie.Title)
	assert.Equal(t, 8.4, movie.Rating)
	assert.Equal(t, 148, movie.Runtime)
	assert.Equal(t, []string{"Science Fiction"}, movie.Genres)
	assert.Contains(t, movie.PosterURL, "/incep.jpg")
	assert.Equal(t, "tt1375666", movie.ImdbCode)
	assert.Len(t, movie.Torrents, 2)
}

func TestEnhancedMovieRejectsMismatchedTorrent(t *testing.T) {
	tmdbH := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/movie":
			writeJSON(w, map[string]any{"results": []map[string]any{
				{"id": 1, "title": "Obscure Film", "release_date": "2023-01-01"},
			}})
		case "/movie/1":
			writeJSON(w, map[string]any{"id": 1, "title": "Obscure Film", "release_date": "2023-01-01"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
	ytsH := func(w http.ResponseWriter, r *http.Request) {
		// The index returns its closest guess, which is a different film.
		writeJSON(w, map[string]any{"data": map[string]any{
			"movie_count": 1,
			"movies": []map[string]any{{
				"id": 99, "title": "Completely Unrelated Horror 9",
				"torrents": []map[string]any{{"quality": "1080p"}},
			}},
		}})
	}

	s := newTestService(t, tmdbH, ytsH, nil)
	movie := s.EnhancedMovie(context.Background(), "Obscure Film", 2023)

	assert.Equal(t, "Obscure Film", movie.Title)
	assert.Empty(t, movie.Torrents, "mismatched torrent hit must be discarded")
	assert.Empty(t, movie.ImdbCode)
}

func TestEnhancedMovieBothSourcesDown(t *testing.T) {
	s := newTestService(t, nil, nil, nil)
	movie := s.EnhancedMovie(context.Background(), "Ghost Title (1999)", 1999)
	require.NotNil(t, movie)
	assert.Equal(t, "Ghost Title", movie.Title)
	assert.Equal(t, 1999, movie.Year)
}
