package tmdb

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/layarproject/layar/internal/domain"
	"github.com/layarproject/layar/internal/fetch"
)

const (
	imageBase = "https://image.tmdb.org/t/p"

	// PlaceholderImage is returned for items with no artwork.
	PlaceholderImage = "/placeholder.svg"

	// recommendation/similar lists are trimmed to one display row
	recommendLimit = 12

	// person credits are paginated client-side; the endpoint is unpaged
	personPageSize = 20
)

// Client wraps the metadata-provider API. All endpoints are read-only GETs
// keyed by an API-key query parameter; pagination is 1-based.
type Client struct {
	baseURL string
	apiKey  string
	fetcher *fetch.Client
	logger  *slog.Logger
}

// NewClient creates a metadata-provider client on top of the fallback fetcher.
func NewClient(baseURL, apiKey string, fetcher *fetch.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		fetcher: fetcher,
		logger:  logger,
	}
}

// params returns the base query values every endpoint carries.
func (c *Client) params() url.Values {
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	query.Set("language", "en-US")
	return query
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	c.logger.Debug("tmdb request", "path", path)
	if err := c.fetcher.GetJSON(ctx, reqURL, dest); err != nil {
		return fmt.Errorf("tmdb %s: %w", path, err)
	}
	return nil
}

// movieList fetches a paginated movie list endpoint.
func (c *Client) movieList(ctx context.Context, path string, query url.Values, page int) ([]domain.Movie, int, error) {
	if page < 1 {
		page = 1
	}
	query.Set("page", strconv.Itoa(page))

	var resp listResponse[movieItem]
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, 0, err
	}
	return mapMovies(resp.Results), resp.TotalPages, nil
}

// seriesList fetches a paginated TV list endpoint.
func (c *Client) seriesList(ctx context.Context, path string, query url.Values, page int) ([]domain.Series, int, error) {
	if page < 1 {
		page = 1
	}
	query.Set("page", strconv.Itoa(page))

	var resp listResponse[tvItem]
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, 0, err
	}
	return mapSeriesList(resp.Results), resp.TotalPages, nil
}

// === Movie lists ===

func (c *Client) PopularMovies(ctx context.Context, page int) ([]domain.Movie, int, error) {
	return c.movieList(ctx, "/movie/popular", c.params(), page)
}

func (c *Client) NowPlayingMovies(ctx context.Context, page int) ([]domain.Movie, int, error) {
	return c.movieList(ctx, "/movie/now_playing", c.params(), page)
}

func (c *Client) TopRatedMovies(ctx context.Context, page int) ([]domain.Movie, int, error) {
	return c.movieList(ctx, "/movie/top_rated", c.params(), page)
}

func (c *Client) UpcomingMovies(ctx context.Context, page int) ([]domain.Movie, int, error) {
	return c.movieList(ctx, "/movie/upcoming", c.params(), page)
}

// TrendingMovies returns the daily trending chart.
func (c *Client) TrendingMovies(ctx context.Context, page int) ([]domain.Movie, int, error) {
	return c.movieList(ctx, "/trending/movie/day", c.params(), page)
}

// === Series lists ===

func (c *Client) PopularSeries(ctx context.Context, page int) ([]domain.Series, int, error) {
	return c.seriesList(ctx, "/tv/popular", c.params(), page)
}

func (c *Client) OnTheAirSeries(ctx context.Context, page int) ([]domain.Series, int, error) {
	return c.seriesList(ctx, "/tv/on_the_air", c.params(), page)
}

func (c *Client) AiringTodaySeries(ctx context.Context, page int) ([]domain.Series, int, error) {
	return c.seriesList(ctx, "/tv/airing_today", c.params(), page)
}

// === Search ===

func (c *Client) SearchMovies(ctx context.Context, query string, page int) ([]domain.Movie, int, error) {
	params := c.params()
	params.Set("query", query)
	return c.movieList(ctx, "/search/movie", params, page)
}

func (c *Client) SearchSeries(ctx context.Context, query string, page int) ([]domain.Series, int, error) {
	params := c.params()
	params.Set("query", query)
	return c.seriesList(ctx, "/search/tv", params, page)
}

// SearchMulti searches movies and series in one query. Person hits are
// filtered out; the provider's interleaved ordering is preserved.
func (c *Client) SearchMulti(ctx context.Context, query string, page int) ([]domain.MultiResult, int, error) {
	if page < 1 {
		page = 1
	}
	params := c.params()
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	var resp listResponse[multiItem]
	if err := c.get(ctx, "/search/multi", params, &resp); err != nil {
		return nil, 0, err
	}
	return mapMulti(resp.Results), resp.TotalPages, nil
}

// FindMovie returns the best search hit for a title, optionally narrowed by
// release year. A nil result with nil error means no match.
func (c *Client) FindMovie(ctx context.Context, title string, year int) (*domain.Movie, error) {
	params := c.params()
	params.Set("query", title)
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}

	var resp listResponse[movieItem]
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	movie := mapMovie(resp.Results[0])
	return &movie, nil
}

// === Details ===

// MovieDetail fetches one movie with credits and videos appended.
func (c *Client) MovieDetail(ctx context.Context, id int) (*domain.MovieDetail, error) {
	params := c.params()
	params.Set("append_to_response", "credits,videos")

	var resp movieDetail
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), params, &resp); err != nil {
		return nil, err
	}
	return mapMovieDetail(resp), nil
}

// SeriesDetail fetches one series with credits and videos appended.
func (c *Client) SeriesDetail(ctx context.Context, id int) (*domain.SeriesDetail, error) {
	params := c.params()
	params.Set("append_to_response", "credits,videos")

	var resp tvDetail
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", id), params, &resp); err != nil {
		return nil, err
	}
	return mapTVDetail(resp), nil
}

// SeasonDetail fetches the episode list of one season.
func (c *Client) SeasonDetail(ctx context.Context, seriesID, seasonNumber int) (*domain.SeasonDetail, error) {
	var resp seasonDetail
	path := fmt.Sprintf("/tv/%d/season/%d", seriesID, seasonNumber)
	if err := c.get(ctx, path, c.params(), &resp); err != nil {
		return nil, err
	}
	return mapSeasonDetail(resp), nil
}

// PersonDetail fetches one person record.
func (c *Client) PersonDetail(ctx context.Context, id int) (*domain.Person, error) {
	var resp personDetail
	if err := c.get(ctx, fmt.Sprintf("/person/%d", id), c.params(), &resp); err != nil {
		return nil, err
	}
	return mapPerson(resp), nil
}

// PersonMovies returns a person's filmography. The endpoint is unpaged, so
// cast and crew credits are merged, deduplicated by ID, sorted by popularity,
// and paged client-side.
func (c *Client) PersonMovies(ctx context.Context, id, page int) ([]domain.Movie, int, error) {
	if page < 1 {
		page = 1
	}

	var resp personCredits
	path := fmt.Sprintf("/person/%d/movie_credits", id)
	if err := c.get(ctx, path, c.params(), &resp); err != nil {
		return nil, 0, err
	}

	seen := make(map[int]bool)
	var unique []movieItem
	for _, m := range append(resp.Cast, resp.Crew...) {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		unique = append(unique, m)
	}
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Popularity > unique[j].Popularity
	})

	totalPages := (len(unique) + personPageSize - 1) / personPageSize
	start := (page - 1) * personPageSize
	if start >= len(unique) {
		return []domain.Movie{}, totalPages, nil
	}
	end := start + personPageSize
	if end > len(unique) {
		end = len(unique)
	}
	return mapMovies(unique[start:end]), totalPages, nil
}

// === Discover ===

func (c *Client) MoviesByGenre(ctx context.Context, genreID, page int) ([]domain.Movie, int, error) {
	params := c.params()
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "popularity.desc")
	return c.movieList(ctx, "/discover/movie", params, page)
}

func (c *Client) MoviesByYear(ctx context.Context, year, page int) ([]domain.Movie, int, error) {
	params := c.params()
	params.Set("primary_release_year", strconv.Itoa(year))
	params.Set("sort_by", "popularity.desc")
	return c.movieList(ctx, "/discover/movie", params, page)
}

func (c *Client) MoviesByCountry(ctx context.Context, countryCode string, page int) ([]domain.Movie, int, error) {
	params := c.params()
	params.Set("with_origin_country", countryCode)
	params.Set("sort_by", "popularity.desc")
	return c.movieList(ctx, "/discover/movie", params, page)
}

// === Recommendations ===

func (c *Client) limitedMovieList(ctx context.Context, path string) ([]domain.Movie, error) {
	movies, _, err := c.movieList(ctx, path, c.params(), 1)
	if err != nil {
		return nil, err
	}
	if len(movies) > recommendLimit {
		movies = movies[:recommendLimit]
	}
	return movies, nil
}

func (c *Client) limitedSeriesList(ctx context.Context, path string) ([]domain.Series, error) {
	series, _, err := c.seriesList(ctx, path, c.params(), 1)
	if err != nil {
		return nil, err
	}
	if len(series) > recommendLimit {
		series = series[:recommendLimit]
	}
	return series, nil
}

func (c *Client) MovieRecommendations(ctx context.Context, id int) ([]domain.Movie, error) {
	return c.limitedMovieList(ctx, fmt.Sprintf("/movie/%d/recommendations", id))
}

// SimilarMovies is the fallback when recommendations come back empty.
func (c *Client) SimilarMovies(ctx context.Context, id int) ([]domain.Movie, error) {
	return c.limitedMovieList(ctx, fmt.Sprintf("/movie/%d/similar", id))
}

func (c *Client) SeriesRecommendations(ctx context.Context, id int) ([]domain.Series, error) {
	return c.limitedSeriesList(ctx, fmt.Sprintf("/tv/%d/recommendations", id))
}

func (c *Client) SimilarSeries(ctx context.Context, id int) ([]domain.Series, error) {
	return c.limitedSeriesList(ctx, fmt.Sprintf("/tv/%d/similar", id))
}
