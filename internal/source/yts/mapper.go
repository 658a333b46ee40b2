package yts

import "github.com/layarproject/layar/internal/domain"

func mapMovie(m movieItem) domain.TorrentMovie {
	torrents := make([]domain.Torrent, 0, len(m.Torrents))
	for _, t := range m.Torrents {
		torrents = append(torrents, domain.Torrent{
			URL:       t.URL,
			Hash:      t.Hash,
			Quality:   t.Quality,
			Type:      t.Type,
			Seeds:     t.Seeds,
			Peers:     t.Peers,
			Size:      t.Size,
			SizeBytes: t.SizeBytes,
		})
	}
	return domain.TorrentMovie{
		ID:          m.ID,
		ImdbCode:    m.ImdbCode,
		Title:       m.Title,
		Slug:        m.Slug,
		Year:        m.Year,
		Rating:      m.Rating,
		Runtime:     m.Runtime,
		Genres:      m.Genres,
		Summary:     m.DescriptionFull,
		TrailerCode: m.YtTrailerCode,
		Language:    m.Language,
		CoverURL:    m.LargeCoverImage,
		BackdropURL: m.BackgroundImageOrig,
		Torrents:    torrents,
	}
}

func mapMovies(items []movieItem) []domain.TorrentMovie {
	movies := make([]domain.TorrentMovie, 0, len(items))
	for _, m := range items {
		movies = append(movies, mapMovie(m))
	}
	return movies
}
