package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/layarproject/layar/internal/domain"
	"github.com/layarproject/layar/internal/source/dramabox"
	"github.com/layarproject/layar/internal/source/tmdb"
	"github.com/layarproject/layar/internal/source/yts"
)

// MovieList selects a metadata-provider movie chart.
type MovieList string

const (
	MoviesPopular    MovieList = "popular"
	MoviesNowPlaying MovieList = "now_playing"
	MoviesTopRated   MovieList = "top_rated"
	MoviesTrending   MovieList = "trending"
	MoviesUpcoming   MovieList = "upcoming"
)

// SeriesList selects a metadata-provider TV chart.
type SeriesList string

const (
	SeriesPopular     SeriesList = "popular"
	SeriesOnTheAir    SeriesList = "on_the_air"
	SeriesAiringToday SeriesList = "airing_today"
)

// DramaList selects a drama shelf.
type DramaList string

const (
	DramasTrending DramaList = "trending"
	DramasLatest   DramaList = "latest"
	DramasForYou   DramaList = "foryou"
	DramasVIP      DramaList = "vip"
	DramasRandom   DramaList = "random"
)

// Page is one page of a list query with its page count.
type Page[T any] struct {
	Items      []T
	TotalPages int
}

// SearchResults merges one mixed search across the metadata provider and the
// drama API.
type SearchResults struct {
	Results    []domain.MultiResult
	Dramas     []domain.Drama
	TotalPages int
}

// Service is the adapter boundary the presentation layer talks to. Every
// query returns a concrete (possibly empty) result: transport and parse
// failures are caught here, logged, and converted to empty results. No error
// crosses upward.
type Service struct {
	tmdb   *tmdb.Client
	yts    *yts.Client
	dramas *dramabox.Client
	logger *slog.Logger
}

// NewService wires the three source adapters into one catalog.
func NewService(metadata *tmdb.Client, torrents *yts.Client, dramas *dramabox.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{tmdb: metadata, yts: torrents, dramas: dramas, logger: logger}
}

// pageOf logs a failed list query and degrades it to an empty page.
func pageOf[T any](s *Service, op string, items []T, totalPages int, err error) Page[T] {
	if err != nil {
		s.logger.Error("catalog query failed", "op", op, "error", err)
		return Page[T]{Items: []T{}}
	}
	return Page[T]{Items: items, TotalPages: totalPages}
}

// Movies returns one page of a movie chart.
func (s *Service) Movies(ctx context.Context, list MovieList, page int) Page[domain.Movie] {
	var (
		movies     []domain.Movie
		totalPages int
		err        error
	)
	switch list {
	case MoviesNowPlaying:
		movies, totalPages, err = s.tmdb.NowPlayingMovies(ctx, page)
	case MoviesTopRated:
		movies, totalPages, err = s.tmdb.TopRatedMovies(ctx, page)
	case MoviesTrending:
		movies, totalPages, err = s.tmdb.TrendingMovies(ctx, page)
	case MoviesUpcoming:
		movies, totalPages, err = s.tmdb.UpcomingMovies(ctx, page)
	default:
		movies, totalPages, err = s.tmdb.PopularMovies(ctx, page)
	}
	return pageOf(s, "movies/"+string(list), movies, totalPages, err)
}

// Series returns one page of a TV chart.
func (s *Service) Series(ctx context.Context, list SeriesList, page int) Page[domain.Series] {
	var (
		series     []domain.Series
		totalPages int
		err        error
	)
	switch list {
	case SeriesOnTheAir:
		series, totalPages, err = s.tmdb.OnTheAirSeries(ctx, page)
	case SeriesAiringToday:
		series, totalPages, err = s.tmdb.AiringTodaySeries(ctx, page)
	default:
		series, totalPages, err = s.tmdb.PopularSeries(ctx, page)
	}
	return pageOf(s, "series/"+string(list), series, totalPages, err)
}

// Dramas returns one shelf of the drama catalog. Only trending, latest, and
// for-you respect the page parameter.
func (s *Service) Dramas(ctx context.Context, list DramaList, page int) []domain.Drama {
	var (
		dramas []domain.Drama
		err    error
	)
	switch list {
	case DramasLatest:
		dramas, err = s.dramas.Latest(ctx, page)
	case DramasForYou:
		dramas, err = s.dramas.ForYou(ctx, page)
	case DramasVIP:
		dramas, err = s.dramas.VIP(ctx)
	case DramasRandom:
		dramas, err = s.dramas.Random(ctx)
	default:
		dramas, err = s.dramas.Trending(ctx, page)
	}
	if err != nil {
		s.logger.Error("catalog query failed", "op", "dramas/"+string(list), "error", err)
		return []domain.Drama{}
	}
	return dramas
}

// DubIndoDramas returns the Indonesian-dubbed shelf for a classify bucket.
func (s *Service) DubIndoDramas(ctx context.Context, classify string) []domain.Drama {
	dramas, err := s.dramas.DubIndo(ctx, classify)
	if err != nil {
		s.logger.Error("catalog query failed", "op", "dramas/dubindo", "error", err)
		return []domain.Drama{}
	}
	return dramas
}

// SearchMovies searches the metadata provider's movie catalog.
func (s *Service) SearchMovies(ctx context.Context, query string, page int) Page[domain.Movie] {
	movies, totalPages, err := s.tmdb.SearchMovies(ctx, query, page)
	return pageOf(s, "search/movies", movies, totalPages, err)
}

// SearchSeries searches the metadata provider's TV catalog.
func (s *Service) SearchSeries(ctx context.Context, query string, page int) Page[domain.Series] {
	series, totalPages, err := s.tmdb.SearchSeries(ctx, query, page)
	return pageOf(s, "search/series", series, totalPages, err)
}

// Search runs the mixed-kind metadata search and the drama search
// concurrently and merges the outcome. Either side failing degrades to its
// empty half.
func (s *Service) Search(ctx context.Context, query string, page int) SearchResults {
	var (
		wg         sync.WaitGroup
		multi      []domain.MultiResult
		totalPages int
		multiErr   error
		dramas     []domain.Drama
		dramaErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		multi, totalPages, multiErr = s.tmdb.SearchMulti(ctx, query, page)
	}()
	go func() {
		defer wg.Done()
		dramas, dramaErr = s.dramas.Search(ctx, query)
	}()
	wg.Wait()

	if multiErr != nil {
		s.logger.Error("catalog query failed", "op", "search/multi", "error", multiErr)
		multi, totalPages = []domain.MultiResult{}, 0
	}
	if dramaErr != nil {
		s.logger.Error("catalog query failed", "op", "search/dramas", "error", dramaErr)
		dramas = []domain.Drama{}
	}

	return SearchResults{Results: multi, Dramas: dramas, TotalPages: totalPages}
}

// MovieDetail returns one movie with credits and videos, or nil.
func (s *Service) MovieDetail(ctx context.Context, id int) *domain.MovieDetail {
	detail, err := s.tmdb.MovieDetail(ctx, id)
	if err != nil {
		s.logger.Error("catalog query failed", "op", "movie/detail", "id", id, "error", err)
		return nil
	}
	return detail
}

// SeriesDetail returns one series with its season list, or nil.
func (s *Service) SeriesDetail(ctx context.Context, id int) *domain.SeriesDetail {
	detail, err := s.tmdb.SeriesDetail(ctx, id)
	if err != nil {
		s.logger.Error("catalog query failed", "op", "series/detail", "id", id, "error", err)
		return nil
	}
	return detail
}

// SeasonDetail returns the lazily fetched episodes of one season, or nil.
func (s *Service) SeasonDetail(ctx context.Context, seriesID, seasonNumber int) *domain.SeasonDetail {
	detail, err := s.tmdb.SeasonDetail(ctx, seriesID, seasonNumber)
	if err != nil {
		s.logger.Error("catalog query failed", "op", "series/season", "id", seriesID, "error", err)
		return nil
	}
	return detail
}

// Person returns one person record, or nil.
func (s *Service) Person(ctx context.Context, id int) *domain.Person {
	person, err := s.tmdb.PersonDetail(ctx, id)
	if err != nil {
		s.logger.Error("catalog query failed", "op", "person/detail", "id", id, "error", err)
		return nil
	}
	return person
}

// PersonMovies returns one page of a person's filmography.
func (s *Service) PersonMovies(ctx context.Context, id, page int) Page[domain.Movie] {
	movies, totalPages, err := s.tmdb.PersonMovies(ctx, id, page)
	return pageOf(s, "person/movies", movies, totalPages, err)
}

// MoviesByGenre returns one discover page filtered by genre.
func (s *Service) MoviesByGenre(ctx context.Context, genreID, page int) Page[domain.Movie] {
	movies, totalPages, err := s.tmdb.MoviesByGenre(ctx, genreID, page)
	return pageOf(s, "discover/genre", movies, totalPages, err)
}

// MoviesByYear returns one discover page filtered by release year.
func (s *Service) MoviesByYear(ctx context.Context, year, page int) Page[domain.Movie] {
	movies, totalPages, err := s.tmdb.MoviesByYear(ctx, year, page)
	return pageOf(s, "discover/year", movies, totalPages, err)
}

// MoviesByCountry returns one discover page filtered by origin country.
func (s *Service) MoviesByCountry(ctx context.Context, code string, page int) Page[domain.Movie] {
	movies, totalPages, err := s.tmdb.MoviesByCountry(ctx, code, page)
	return pageOf(s, "discover/country", movies, totalPages, err)
}

// MovieRecommendations returns up to 12 recommendations, falling back to the
// similar-movies list when recommendations come back empty.
func (s *Service) MovieRecommendations(ctx context.Context, id int) []domain.Movie {
	movies, err := s.tmdb.MovieRecommendations(ctx, id)
	if err == nil && len(movies) > 0 {
		return movies
	}
	if err != nil {
		s.logger.Warn("recommendations failed, trying similar", "id", id, "error", err)
	}
	movies, err = s.tmdb.SimilarMovies(ctx, id)
	if err != nil {
		s.logger.Error("catalog query failed", "op", "movie/similar", "id", id, "error", err)
		return []domain.Movie{}
	}
	return movies
}

// SeriesRecommendations mirrors MovieRecommendations for series.
func (s *Service) SeriesRecommendations(ctx context.Context, id int) []domain.Series {
	series, err := s.tmdb.SeriesRecommendations(ctx, id)
	if err == nil && len(series) > 0 {
		return series
	}
	if err != nil {
		s.logger.Warn("recommendations failed, trying similar", "id", id, "error", err)
	}
	series, err = s.tmdb.SimilarSeries(ctx, id)
	if err != nil {
		s.logger.Error("catalog query failed", "op", "series/similar", "id", id, "error", err)
		return []domain.Series{}
	}
	return series
}

// TorrentMovies returns one filtered page from the torrent index.
func (s *Service) TorrentMovies(ctx context.Context, params yts.ListParams) *yts.ListResult {
	result, err := s.yts.ListMovies(ctx, params)
	if err != nil {
		s.logger.Error("catalog query failed", "op", "torrents/list", "error", err)
		return &yts.ListResult{Movies: []domain.TorrentMovie{}}
	}
	return result
}

// TorrentMovieDetail returns one torrent-index movie, or nil.
func (s *Service) TorrentMovieDetail(ctx context.Context, id int) *domain.TorrentMovie {
	movie, err := s.yts.MovieDetail(ctx, id)
	if err != nil {
		s.logger.Error("catalog query failed", "op", "torrents/detail", "id", id, "error", err)
		return nil
	}
	return movie
}

// DramaDetail returns one drama record, or nil.
func (s *Service) DramaDetail(ctx context.Context, bookID string) *domain.Drama {
	drama, err := s.dramas.Detail(ctx, bookID)
	if err != nil {
		s.logger.Error("catalog query failed", "op", "drama/detail", "bookId", bookID, "error", err)
		return nil
	}
	return drama
}

// EpisodeVideoURL resolves the playable URL for a drama episode, failing
// with domain.ErrVideoUnavailable when no CDN or direct URL resolves.
func (s *Service) EpisodeVideoURL(ep domain.DramaEpisode) (string, error) {
	url := dramabox.VideoURL(ep)
	if url == "" {
		return "", fmt.Errorf("%w: chapter %s", domain.ErrVideoUnavailable, ep.ChapterID)
	}
	return url, nil
}

// DramaEpisodes returns a drama's chapter list.
func (s *Service) DramaEpisodes(ctx context.Context, bookID string) []domain.DramaEpisode {
	episodes, err := s.dramas.Episodes(ctx, bookID)
	if err != nil {
		s.logger.Error("catalog query failed", "op", "drama/episodes", "bookId", bookID, "error", err)
		return []domain.DramaEpisode{}
	}
	return episodes
}

// RelatedDramas returns up to 12 dramas similar to ref.
func (s *Service) RelatedDramas(ctx context.Context, ref domain.Drama) []domain.Drama {
	dramas, err := s.dramas.Related(ctx, ref)
	if err != nil {
		s.logger.Error("catalog query failed", "op", "drama/related", "bookId", ref.BookID, "error", err)
		return []domain.Drama{}
	}
	return dramas
}

// DramasByTag filters the drama shelves by tag.
func (s *Service) DramasByTag(ctx context.Context, tag string) []domain.Drama {
	dramas, err := s.dramas.ByTag(ctx, tag)
	if err != nil {
		s.logger.Error("catalog query failed", "op", "drama/bytag", "tag", tag, "error", err)
		return []domain.Drama{}
	}
	return dramas
}
