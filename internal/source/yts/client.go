package yts

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/layarproject/layar/internal/domain"
	"github.com/layarproject/layar/internal/fetch"
)

const defaultLimit = 20

// ListParams are the filter/sort query parameters of the list endpoint.
// Zero values are omitted from the request.
type ListParams struct {
	Page          int
	Limit         int
	QueryTerm     string
	Genre         string
	SortBy        string // title, year, rating, seeds, download_count, ...
	OrderBy       string // asc or desc
	MinimumRating float64
}

// ListResult is one page of torrent-index movies.
type ListResult struct {
	Movies     []domain.TorrentMovie
	TotalPages int
	MovieCount int
}

// Client wraps the torrent-index movie API.
type Client struct {
	baseURL string
	fetcher *fetch.Client
	logger  *slog.Logger
}

// NewClient creates a torrent-index client on top of the fallback fetcher.
func NewClient(baseURL string, fetcher *fetch.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
		logger:  logger,
	}
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, dest *envelope) error {
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, query.Encode())
	c.logger.Debug("yts request", "endpoint", endpoint)
	if err := c.fetcher.GetJSON(ctx, reqURL, dest); err != nil {
		return fmt.Errorf("yts %s: %w", endpoint, err)
	}
	return nil
}

// ListMovies returns one filtered, sorted page of movies.
func (c *Client) ListMovies(ctx context.Context, params ListParams) (*ListResult, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("page", strconv.Itoa(page))
	if params.QueryTerm != "" {
		query.Set("query_term", params.QueryTerm)
	}
	if params.Genre != "" {
		query.Set("genre", params.Genre)
	}
	if params.SortBy != "" {
		query.Set("sort_by", params.SortBy)
	}
	if params.OrderBy != "" {
		query.Set("order_by", params.OrderBy)
	}
	if params.MinimumRating > 0 {
		query.Set("minimum_rating", strconv.FormatFloat(params.MinimumRating, 'f', -1, 64))
	}

	var resp envelope
	if err := c.get(ctx, "list_movies.json", query, &resp); err != nil {
		return nil, err
	}

	count := resp.Data.MovieCount
	return &ListResult{
		Movies:     mapMovies(resp.Data.Movies),
		TotalPages: (count + limit - 1) / limit,
		MovieCount: count,
	}, nil
}

// MovieDetail fetches one movie by its torrent-index ID.
func (c *Client) MovieDetail(ctx context.Context, movieID int) (*domain.TorrentMovie, error) {
	query := url.Values{}
	query.Set("movie_id", strconv.Itoa(movieID))
	query.Set("with_images", "true")
	query.Set("with_cast", "true")

	var resp envelope
	if err := c.get(ctx, "movie_details.json", query, &resp); err != nil {
		return nil, err
	}
	if resp.Data.Movie == nil || resp.Data.Movie.ID == 0 {
		return nil, domain.ErrItemNotFound
	}
	movie := mapMovie(*resp.Data.Movie)
	return &movie, nil
}

// FindMovie returns the best list hit for a "title year" query term. A nil
// result with nil error means no match.
func (c *Client) FindMovie(ctx context.Context, title string, year int) (*domain.TorrentMovie, error) {
	term := title
	if year > 0 {
		term = fmt.Sprintf("%s %d", title, year)
	}
	result, err := c.ListMovies(ctx, ListParams{QueryTerm: term, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(result.Movies) == 0 {
		return nil, nil
	}
	return &result.Movies[0], nil
}
