package dramabox

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

// Client wraps the drama API. Response shapes vary by endpoint and over time,
// so every body goes through the normalizer rather than a fixed DTO.
type Client struct {
	baseURL string
	fetcher *fetch.Client
	logger  *slog.Logger
}

// NewClient creates a drama API client on top of the fallback fetcher.
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

// list fetches an endpoint and normalizes whatever shape comes back.
func (c *Client) list(ctx context.Context, endpoint string, query url.Values) ([]domain.Drama, error) {
	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	body, err := c.fetcher.Get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("dramabox %s: %w", endpoint, err)
	}

	dramas := normalizeList(body)
	c.logger.Debug("dramabox list", "endpoint", endpoint, "items", len(dramas))
	return dramas, nil
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	return query
}

// Trending returns the trending chart, paged.
func (c *Client) Trending(ctx context.Context, page int) ([]domain.Drama, error) {
	return c.list(ctx, "/trending", pageQuery(page))
}

// Latest returns the most recent additions, paged.
func (c *Client) Latest(ctx context.Context, page int) ([]domain.Drama, error) {
	return c.list(ctx, "/latest", pageQuery(page))
}

// ForYou returns the personalized feed, paged.
func (c *Client) ForYou(ctx context.Context, page int) ([]domain.Drama, error) {
	return c.list(ctx, "/foryou", pageQuery(page))
}

// VIP returns the premium shelf.
func (c *Client) VIP(ctx context.Context) ([]domain.Drama, error) {
	return c.list(ctx, "/vip", nil)
}

// Random returns a random pick.
func (c *Client) Random(ctx context.Context) ([]domain.Drama, error) {
	return c.list(ctx, "/randomdrama", nil)
}

// DubIndo returns Indonesian-dubbed dramas for a classify bucket
// ("terbaru", "terpopuler", ...).
func (c *Client) DubIndo(ctx context.Context, classify string) ([]domain.Drama, error) {
	if classify == "" {
		classify = "terbaru"
	}
	query := url.Values{}
	query.Set("classify", classify)
	return c.list(ctx, "/dubindo", query)
}

// Search queries dramas by free text.
func (c *Client) Search(ctx context.Context, term string) ([]domain.Drama, error) {
	query := url.Values{}
	query.Set("query", term)
	return c.list(ctx, "/search", query)
}

// Detail fetches one drama by its bookId.
func (c *Client) Detail(ctx context.Context, bookID string) (*domain.Drama, error) {
	query := url.Values{}
	query.Set("bookId", bookID)
	dramas, err := c.list(ctx, "/detail", query)
	if err != nil {
		return nil, err
	}
	if len(dramas) == 0 {
		return nil, domain.ErrItemNotFound
	}
	return &dramas[0], nil
}

// Episodes fetches the full chapter list for a drama.
func (c *Client) Episodes(ctx context.Context, bookID string) ([]domain.DramaEpisode, error) {
	query := url.Values{}
	query.Set("bookId", bookID)
	body, err := c.fetcher.Get(ctx, c.baseURL+"/allepisode?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("dramabox /allepisode: %w", err)
	}

	episodes := parseEpisodes(body)
	c.logger.Debug("dramabox episodes", "bookId", bookID, "count", len(episodes))
	return episodes, nil
}
