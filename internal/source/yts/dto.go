package yts

// envelope is the torrent-index response wrapper. List endpoints populate
// Data.Movies and Data.MovieCount; the detail endpoint populates Data.Movie.
type envelope struct {
	Status        string `json:"status"`
	StatusMessage string `json:"status_message"`
	Data          struct {
		MovieCount int         `json:"movie_count"`
		Limit      int         `json:"limit"`
		PageNumber int         `json:"page_number"`
		Movies     []movieItem `json:"movies"`
		Movie      *movieItem  `json:"movie"`
	} `json:"data"`
}

type movieItem struct {
	ID                    int           `json:"id"`
	URL                   string        `json:"url"`
	ImdbCode              string        `json:"imdb_code"`
	Title                 string        `json:"title"`
	TitleEnglish          string        `json:"title_english"`
	TitleLong             string        `json:"title_long"`
	Slug                  string        `json:"slug"`
	Year                  int           `json:"year"`
	Rating                float64       `json:"rating"`
	Runtime               int           `json:"runtime"`
	Genres                []string      `json:"genres"`
	DescriptionIntro      string        `json:"description_intro"`
	DescriptionFull       string        `json:"description_full"`
	YtTrailerCode         string        `json:"yt_trailer_code"`
	Language              string        `json:"language"`
	MpaRating             string        `json:"mpa_rating"`
	BackgroundImage       string        `json:"background_image"`
	BackgroundImageOrig   string        `json:"background_image_original"`
	SmallCoverImage       string        `json:"small_cover_image"`
	MediumCoverImage      string        `json:"medium_cover_image"`
	LargeCoverImage       string        `json:"large_cover_image"`
	Torrents              []torrentItem `json:"torrents"`
}

type torrentItem struct {
	URL       string `json:"url"`
	Hash      string `json:"hash"`
	Quality   string `json:"quality"`
	Type      string `json:"type"`
	Seeds     int    `json:"seeds"`
	Peers     int    `json:"peers"`
	Size      string `json:"size"`
	SizeBytes int64  `json:"size_bytes"`
}
