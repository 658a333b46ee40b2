package domain

import "fmt"

// ContentType distinguishes the three catalog sources. The string values are
// persisted in watch history, so they must stay stable.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "tvseries"
	ContentTypeDrama  ContentType = "dramabox"
)

// Movie is a normalized metadata-provider movie record.
type Movie struct {
	ID            int
	Title         string
	OriginalTitle string
	Overview      string
	PosterPath    string // path fragment, resolved via tmdb.ImageURL
	BackdropPath  string
	Year          int
	Rating        float64 // 0-10 community rating
	GenreIDs      []int
	Popularity    float64
}

// MovieDetail carries the full metadata-provider movie record, including the
// credits and videos sub-resources appended to the detail request.
type MovieDetail struct {
	Movie
	Runtime   int // minutes
	VoteCount int
	Budget    int64
	Revenue   int64
	Genres    []string
	Countries []string
	Cast      []CastMember
	Crew      []CrewMember
	Videos    []Video
}

// Series is a normalized metadata-provider TV series record.
type Series struct {
	ID           int
	Name         string
	OriginalName string
	Overview     string
	PosterPath   string
	BackdropPath string
	Year         int // first air year
	Rating       float64
	GenreIDs     []int
	Popularity   float64
}

// SeriesDetail carries the full series record with its ordered season list.
// Per-episode metadata is fetched lazily per season via SeasonDetail.
type SeriesDetail struct {
	Series
	SeasonCount  int
	EpisodeCount int
	Genres       []string
	Countries    []string
	Seasons      []Season
	Cast         []CastMember
	Crew         []CrewMember
	Videos       []Video
}

// Season summarizes one season of a series.
type Season struct {
	Number       int
	Name         string
	Overview     string
	PosterPath   string
	EpisodeCount int
	AirDate      string
}

// SeasonDetail holds the lazily fetched episode list for one season.
type SeasonDetail struct {
	Number   int
	Name     string
	Overview string
	Episodes []SeriesEpisode
}

// SeriesEpisode is one episode of a metadata-provider series season.
type SeriesEpisode struct {
	Number       int
	SeasonNumber int
	Name         string
	Overview     string
	StillPath    string
	AirDate      string
	Rating       float64
	Runtime      int
}

// CastMember is an actor credit.
type CastMember struct {
	ID          int
	Name        string
	Character   string
	ProfilePath string
	Order       int
}

// CrewMember is a crew credit (director, writer, ...).
type CrewMember struct {
	ID          int
	Name        string
	Job         string
	Department  string
	ProfilePath string
}

// Video is a trailer/teaser/clip attached to a movie or series.
type Video struct {
	Key      string
	Name     string
	Site     string
	Type     string
	Official bool
}

// Person is a metadata-provider person record.
type Person struct {
	ID           int
	Name         string
	Biography    string
	Birthday     string
	Deathday     string
	PlaceOfBirth string
	ProfilePath  string
	KnownFor     string
}

// TorrentMovie is a normalized torrent-index movie record. There is no shared
// identifier space with Movie; the two are matched by fuzzy title+year lookup.
type TorrentMovie struct {
	ID          int
	ImdbCode    string
	Title       string
	Slug        string
	Year        int
	Rating      float64
	Runtime     int // minutes
	Genres      []string
	Summary     string
	TrailerCode string // YouTube video key
	Language    string
	CoverURL    string
	BackdropURL string
	Torrents    []Torrent
}

// Torrent is one downloadable variant of a TorrentMovie.
type Torrent struct {
	URL       string
	Hash      string
	Quality   string
	Type      string
	Seeds     int
	Peers     int
	Size      string
	SizeBytes int64
}

// Drama is a normalized short-drama record. Cover is always populated after
// normalization: empty string when no cover alias was present, never absent.
type Drama struct {
	BookID       string // opaque unique key
	BookName     string
	Cover        string
	ChapterCount int
	Introduction string
	Protagonist  string
	Tags         []string
	Rank         *DramaRank
}

// DramaRank is optional chart-position info attached by some endpoints.
type DramaRank struct {
	Type    int
	HotCode string
	Sort    int
}

// DramaEpisode is one playable chapter of a drama. CDNs may be empty; some
// endpoints instead return a direct video URL on the episode itself.
type DramaEpisode struct {
	ChapterID    string
	ChapterIndex int
	ChapterName  string
	ChapterImg   string
	CDNs         []CDN
	DirectURL    string
}

// CDN is a delivery-network variant of an episode's video.
type CDN struct {
	Code    string
	Default bool
	Videos  []VideoPath
}

// VideoPath is one quality-tagged file within a CDN entry.
type VideoPath struct {
	Quality int
	Path    string
	Default bool
}

// MultiResult is one hit of a mixed-kind search. Exactly one of Movie or
// Series is set, matching Type. Person hits are filtered out upstream.
type MultiResult struct {
	Type   ContentType
	Movie  *Movie
	Series *Series
}

// EnhancedMovie merges metadata-provider and torrent-index data for one film.
// Each field independently prefers the metadata provider and falls back to the
// torrent index.
type EnhancedMovie struct {
	TMDBID      int
	ImdbCode    string
	Title       string
	Year        int
	Rating      float64
	Runtime     int
	Genres      []string
	Overview    string
	PosterURL   string
	BackdropURL string
	TrailerKey  string
	Director    string
	Cast        []CastMember
	Country     string
	Torrents    []Torrent
}

// WatchHistoryItem is one entry of the device-local watch history. Identity is
// the (ID, Type) pair.
type WatchHistoryItem struct {
	ID        string      `json:"id"`
	Type      ContentType `json:"type"`
	Title     string      `json:"title"`
	Poster    string      `json:"poster"`
	Slug      string      `json:"slug"`
	WatchedAt int64       `json:"watchedAt"` // epoch milliseconds

	// Series progress
	Season       int    `json:"season,omitempty"`
	Episode      int    `json:"episode,omitempty"`
	EpisodeTitle string `json:"episodeTitle,omitempty"`

	// Drama progress
	EpisodeNumber int `json:"episodeNumber,omitempty"`
	TotalEpisodes int `json:"totalEpisodes,omitempty"`
}

// WatchURL returns the playback route for this entry.
func (w WatchHistoryItem) WatchURL() string {
	switch w.Type {
	case ContentTypeMovie:
		return "/play/" + w.Slug
	case ContentTypeSeries:
		season, episode := w.Season, w.Episode
		if season == 0 {
			season = 1
		}
		if episode == 0 {
			episode = 1
		}
		return fmt.Sprintf("/watch/%s?s=%d&e=%d", w.Slug, season, episode)
	case ContentTypeDrama:
		return fmt.Sprintf("/putar/%s?ep=%d", w.Slug, w.EpisodeNumber)
	default:
		return "/"
	}
}
