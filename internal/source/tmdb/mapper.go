package tmdb

import (
	"strconv"

	"github.com/layarproject/layar/internal/domain"
)

// yearOf extracts the year from a "YYYY-MM-DD" date string.
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func mapMovie(m movieItem) domain.Movie {
	return domain.Movie{
		ID:            m.ID,
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		Overview:      m.Overview,
		PosterPath:    m.PosterPath,
		BackdropPath:  m.BackdropPath,
		Year:          yearOf(m.ReleaseDate),
		Rating:        m.VoteAverage,
		GenreIDs:      m.GenreIDs,
		Popularity:    m.Popularity,
	}
}

func mapMovies(items []movieItem) []domain.Movie {
	movies := make([]domain.Movie, 0, len(items))
	for _, m := range items {
		movies = append(movies, mapMovie(m))
	}
	return movies
}

func mapSeries(t tvItem) domain.Series {
	return domain.Series{
		ID:           t.ID,
		Name:         t.Name,
		OriginalName: t.OriginalName,
		Overview:     t.Overview,
		PosterPath:   t.PosterPath,
		BackdropPath: t.BackdropPath,
		Year:         yearOf(t.FirstAirDate),
		Rating:       t.VoteAverage,
		GenreIDs:     t.GenreIDs,
		Popularity:   t.Popularity,
	}
}

func mapSeriesList(items []tvItem) []domain.Series {
	series := make([]domain.Series, 0, len(items))
	for _, t := range items {
		series = append(series, mapSeries(t))
	}
	return series
}

// mapMulti converts multi-search rows, dropping person hits.
func mapMulti(items []multiItem) []domain.MultiResult {
	results := make([]domain.MultiResult, 0, len(items))
	for _, m := range items {
		switch m.MediaType {
		case "movie":
			movie := mapMovie(movieItem{
				ID:           m.ID,
				Title:        m.Title,
				Overview:     m.Overview,
				PosterPath:   m.PosterPath,
				BackdropPath: m.BackdropPath,
				ReleaseDate:  m.ReleaseDate,
				VoteAverage:  m.VoteAverage,
				GenreIDs:     m.GenreIDs,
				Popularity:   m.Popularity,
			})
			results = append(results, domain.MultiResult{Type: domain.ContentTypeMovie, Movie: &movie})
		case "tv":
			series := mapSeries(tvItem{
				ID:           m.ID,
				Name:         m.Name,
				Overview:     m.Overview,
				PosterPath:   m.PosterPath,
				BackdropPath: m.BackdropPath,
				FirstAirDate: m.FirstAirDate,
				VoteAverage:  m.VoteAverage,
				GenreIDs:     m.GenreIDs,
				Popularity:   m.Popularity,
			})
			results = append(results, domain.MultiResult{Type: domain.ContentTypeSeries, Series: &series})
		}
	}
	return results
}

func mapCast(items []castItem) []domain.CastMember {
	cast := make([]domain.CastMember, 0, len(items))
	for _, c := range items {
		cast = append(cast, domain.CastMember{
			ID:          c.ID,
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: c.ProfilePath,
			Order:       c.Order,
		})
	}
	return cast
}

func mapCrew(items []crewItem) []domain.CrewMember {
	crew := make([]domain.CrewMember, 0, len(items))
	for _, c := range items {
		crew = append(crew, domain.CrewMember{
			ID:          c.ID,
			Name:        c.Name,
			Job:         c.Job,
			Department:  c.Department,
			ProfilePath: c.ProfilePath,
		})
	}
	return crew
}

func mapVideos(items []videoItem) []domain.Video {
	videos := make([]domain.Video, 0, len(items))
	for _, v := range items {
		videos = append(videos, domain.Video{
			Key:      v.Key,
			Name:     v.Name,
			Site:     v.Site,
			Type:     v.Type,
			Official: v.Official,
		})
	}
	return videos
}

func genreNamesOf(refs []genreRef) []string {
	names := make([]string, 0, len(refs))
	for _, g := range refs {
		names = append(names, g.Name)
	}
	return names
}

func countryNamesOf(refs []countryRef) []string {
	names := make([]string, 0, len(refs))
	for _, c := range refs {
		names = append(names, c.Name)
	}
	return names
}

func mapMovieDetail(d movieDetail) *domain.MovieDetail {
	return &domain.MovieDetail{
		Movie:     mapMovie(d.movieItem),
		Runtime:   d.Runtime,
		VoteCount: d.VoteCount,
		Budget:    d.Budget,
		Revenue:   d.Revenue,
		Genres:    genreNamesOf(d.Genres),
		Countries: countryNamesOf(d.ProductionCountry),
		Cast:      mapCast(d.Credits.Cast),
		Crew:      mapCrew(d.Credits.Crew),
		Videos:    mapVideos(d.Videos.Results),
	}
}

func mapSeasons(items []seasonItem) []domain.Season {
	seasons := make([]domain.Season, 0, len(items))
	for _, s := range items {
		seasons = append(seasons, domain.Season{
			Number:       s.SeasonNumber,
			Name:         s.Name,
			Overview:     s.Overview,
			PosterPath:   s.PosterPath,
			EpisodeCount: s.EpisodeCount,
			AirDate:      s.AirDate,
		})
	}
	return seasons
}

func mapTVDetail(d tvDetail) *domain.SeriesDetail {
	return &domain.SeriesDetail{
		Series:       mapSeries(d.tvItem),
		SeasonCount:  d.NumberOfSeasons,
		EpisodeCount: d.NumberOfEpisodes,
		Genres:       genreNamesOf(d.Genres),
		Countries:    countryNamesOf(d.ProductionCountry),
		Seasons:      mapSeasons(d.Seasons),
		Cast:         mapCast(d.Credits.Cast),
		Crew:         mapCrew(d.Credits.Crew),
		Videos:       mapVideos(d.Videos.Results),
	}
}

func mapSeasonDetail(d seasonDetail) *domain.SeasonDetail {
	episodes := make([]domain.SeriesEpisode, 0, len(d.Episodes))
	for _, e := range d.Episodes {
		episodes = append(episodes, domain.SeriesEpisode{
			Number:       e.EpisodeNumber,
			SeasonNumber: e.SeasonNumber,
			Name:         e.Name,
			Overview:     e.Overview,
			StillPath:    e.StillPath,
			AirDate:      e.AirDate,
			Rating:       e.VoteAverage,
			Runtime:      e.Runtime,
		})
	}
	return &domain.SeasonDetail{
		Number:   d.SeasonNumber,
		Name:     d.Name,
		Overview: d.Overview,
		Episodes: episodes,
	}
}

func mapPerson(d personDetail) *domain.Person {
	return &domain.Person{
		ID:           d.ID,
		Name:         d.Name,
		Biography:    d.Biography,
		Birthday:     d.Birthday,
		Deathday:     d.Deathday,
		PlaceOfBirth: d.PlaceOfBirth,
		ProfilePath:  d.ProfilePath,
		KnownFor:     d.KnownForDepartment,
	}
}

// Director returns the first crew member credited as Director, or nil.
func Director(crew []domain.CrewMember) *domain.CrewMember {
	for i := range crew {
		if crew[i].Job == "Director" {
			return &crew[i]
		}
	}
	return nil
}

// TopCast returns the first limit cast members in billing order.
func TopCast(cast []domain.CastMember, limit int) []domain.CastMember {
	if len(cast) <= limit {
		return cast
	}
	return cast[:limit]
}

// Trailer picks the best playable trailer: an official YouTube trailer, else
// any YouTube trailer, else any YouTube video. Returns nil when none qualify.
func Trailer(videos []domain.Video) *domain.Video {
	var anyTrailer, anyYouTube *domain.Video
	for i := range videos {
		v := &videos[i]
		if v.Site != "YouTube" {
			continue
		}
		if v.Type == "Trailer" {
			if v.Official {
				return v
			}
			if anyTrailer == nil {
				anyTrailer = v
			}
		}
		if anyYouTube == nil {
			anyYouTube = v
		}
	}
	if anyTrailer != nil {
		return anyTrailer
	}
	return anyYouTube
}

// ImageURL resolves a poster/backdrop path fragment to a full image URL.
// Size is one of the TMDB size tags (w92..w1280, original). Empty paths
// resolve to the placeholder image.
func ImageURL(path, size string) string {
	if path == "" {
		return PlaceholderImage
	}
	if size == "" {
		size = "w500"
	}
	return imageBase + "/" + size + path
}

// TrailerEmbedURL returns the autoplaying embed URL for a YouTube key.
func TrailerEmbedURL(key string) string {
	return "https://www.youtube.com/embed/" + key + "?autoplay=1"
}

// TrailerThumbnail returns the thumbnail image URL for a YouTube key.
func TrailerThumbnail(key string) string {
	return "https://img.youtube.com/vi/" + key + "/hqdefault.jpg"
}
