package catalog

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/layarproject/layar/internal/domain"
	"github.com/layarproject/layar/internal/source/tmdb"
)

var yearSuffix = regexp.MustCompile(`\s*\(\d{4}\)\s*$`)

// cleanTitle strips scraping artifacts before the title is used as a search
// term: a trailing "(YYYY)", a "Nonton " prefix, and a "Sub Indo" suffix.
func cleanTitle(title string) string {
	title = yearSuffix.ReplaceAllString(title, "")
	if len(title) >= 7 && strings.EqualFold(title[:7], "Nonton ") {
		title = title[7:]
	}
	if len(title) >= 8 && strings.EqualFold(title[len(title)-8:], "Sub Indo") {
		title = title[:len(title)-8]
	}
	return strings.TrimSpace(title)
}

// EnhancedMovie looks a film up on the metadata provider and the torrent
// index concurrently and merges the two records field by field: each field
// independently prefers the metadata provider and falls back to the torrent
// index. There is no shared id space between the sources, so the torrent hit
// is verified against the requested title with a fuzzy match before its
// fields are trusted.
func (s *Service) EnhancedMovie(ctx context.Context, title string, year int) *domain.EnhancedMovie {
	clean := cleanTitle(title)

	var (
		wg         sync.WaitGroup
		tmdbHit    *domain.Movie
		torrentHit *domain.TorrentMovie
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		hit, err := s.tmdb.FindMovie(ctx, clean, year)
		if err != nil {
			s.logger.Warn("metadata lookup failed", "title", clean, "error", err)
			return
		}
		tmdbHit = hit
	}()
	go func() {
		defer wg.Done()
		hit, err := s.yts.FindMovie(ctx, clean, year)
		if err != nil {
			s.logger.Warn("torrent lookup failed", "title", clean, "error", err)
			return
		}
		torrentHit = hit
	}()
	wg.Wait()

	if torrentHit != nil && !fuzzy.MatchNormalizedFold(clean, torrentHit.Title) {
		s.logger.Debug("torrent hit rejected by title match",
			"wanted", clean, "got", torrentHit.Title)
		torrentHit = nil
	}

	var tmdbDetail *domain.MovieDetail
	if tmdbHit != nil {
		detail, err := s.tmdb.MovieDetail(ctx, tmdbHit.ID)
		if err != nil {
			s.logger.Warn("metadata detail failed", "id", tmdbHit.ID, "error", err)
		} else {
			tmdbDetail = detail
		}
	}
	if torrentHit != nil {
		detail, err := s.yts.MovieDetail(ctx, torrentHit.ID)
		if err == nil {
			torrentHit = detail
		}
	}

	return mergeMovie(clean, year, tmdbDetail, torrentHit)
}

// EnhancedFromTorrent enriches a torrent-index movie with metadata-provider
// fields, for card display of torrent list rows.
func (s *Service) EnhancedFromTorrent(ctx context.Context, movie domain.TorrentMovie) *domain.EnhancedMovie {
	var tmdbDetail *domain.MovieDetail
	if hit, err := s.tmdb.FindMovie(ctx, movie.Title, movie.Year); err == nil && hit != nil {
		if detail, derr := s.tmdb.MovieDetail(ctx, hit.ID); derr == nil {
			tmdbDetail = detail
		}
	}
	return mergeMovie(movie.Title, movie.Year, tmdbDetail, &movie)
}

// mergeMovie applies the field-by-field preference: metadata provider first,
// torrent index second, the caller's request last. Either source may be nil.
func mergeMovie(title string, year int, md *domain.MovieDetail, tor *domain.TorrentMovie) *domain.EnhancedMovie {
	merged := &domain.EnhancedMovie{
		Title:       title,
		Year:        year,
		PosterURL:   tmdb.PlaceholderImage,
		BackdropURL: tmdb.PlaceholderImage,
	}

	if tor != nil {
		merged.ImdbCode = tor.ImdbCode
		merged.Torrents = tor.Torrents
		if tor.Title != "" {
			merged.Title = tor.Title
		}
		if tor.Year > 0 {
			merged.Year = tor.Year
		}
		merged.Rating = tor.Rating
		merged.Runtime = tor.Runtime
		merged.Genres = tor.Genres
		merged.Overview = tor.Summary
		merged.TrailerKey = tor.TrailerCode
		if tor.CoverURL != "" {
			merged.PosterURL = tor.CoverURL
		}
		if tor.BackdropURL != "" {
			merged.BackdropURL = tor.BackdropURL
		}
	}

	if md != nil {
		merged.TMDBID = md.ID
		if md.Title != "" {
			merged.Title = md.Title
		}
		if md.Year > 0 {
			merged.Year = md.Year
		}
		if md.Rating > 0 {
			merged.Rating = md.Rating
		}
		if md.Runtime > 0 {
			merged.Runtime = md.Runtime
		}
		if len(md.Genres) > 0 {
			merged.Genres = md.Genres
		}
		if md.Overview != "" {
			merged.Overview = md.Overview
		}
		if md.PosterPath != "" {
			merged.PosterURL = tmdb.ImageURL(md.PosterPath, "w500")
		}
		if md.BackdropPath != "" {
			merged.BackdropURL = tmdb.ImageURL(md.BackdropPath, "original")
		}
		if trailer := tmdb.Trailer(md.Videos); trailer != nil {
			merged.TrailerKey = trailer.Key
		}
		if director := tmdb.Director(md.Crew); director != nil {
			merged.Director = director.Name
		}
		merged.Cast = tmdb.TopCast(md.Cast, 6)
		if len(md.Countries) > 0 {
			merged.Country = md.Countries[0]
		}
	}

	return merged
}
