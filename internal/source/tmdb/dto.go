package tmdb

// listResponse is the common paginated envelope for TMDB list endpoints.
type listResponse[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// movieItem is a movie row in list responses.
type movieItem struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	ReleaseDate   string  `json:"release_date"`
	VoteAverage   float64 `json:"vote_average"`
	GenreIDs      []int   `json:"genre_ids"`
	Popularity    float64 `json:"popularity"`
}

// tvItem is a series row in list responses.
type tvItem struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	OriginalName string  `json:"original_name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     []int   `json:"genre_ids"`
	Popularity   float64 `json:"popularity"`
}

// multiItem is a row of the multi-search endpoint; fields are populated
// depending on MediaType ("movie", "tv", or "person").
type multiItem struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"` // movies
	Name         string  `json:"name"`  // tv and people
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     []int   `json:"genre_ids"`
	Popularity   float64 `json:"popularity"`
}

type genreRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type countryRef struct {
	Code string `json:"iso_3166_1"`
	Name string `json:"name"`
}

type castItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

type crewItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

type creditsBlock struct {
	Cast []castItem `json:"cast"`
	Crew []crewItem `json:"crew"`
}

type videoItem struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type videosBlock struct {
	Results []videoItem `json:"results"`
}

// movieDetail is the movie detail response with credits and videos appended.
type movieDetail struct {
	movieItem
	Runtime           int          `json:"runtime"`
	VoteCount         int          `json:"vote_count"`
	Budget            int64        `json:"budget"`
	Revenue           int64        `json:"revenue"`
	Genres            []genreRef   `json:"genres"`
	ProductionCountry []countryRef `json:"production_countries"`
	Credits           creditsBlock `json:"credits"`
	Videos            videosBlock  `json:"videos"`
}

// tvDetail is the series detail response with credits and videos appended.
type tvDetail struct {
	tvItem
	NumberOfSeasons   int          `json:"number_of_seasons"`
	NumberOfEpisodes  int          `json:"number_of_episodes"`
	Genres            []genreRef   `json:"genres"`
	ProductionCountry []countryRef `json:"production_countries"`
	Seasons           []seasonItem `json:"seasons"`
	Credits           creditsBlock `json:"credits"`
	Videos            videosBlock  `json:"videos"`
}

type seasonItem struct {
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	SeasonNumber int    `json:"season_number"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date"`
}

type seasonDetail struct {
	Name         string        `json:"name"`
	Overview     string        `json:"overview"`
	SeasonNumber int           `json:"season_number"`
	Episodes     []episodeItem `json:"episodes"`
}

type episodeItem struct {
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	EpisodeNumber int     `json:"episode_number"`
	SeasonNumber  int     `json:"season_number"`
	StillPath     string  `json:"still_path"`
	AirDate       string  `json:"air_date"`
	VoteAverage   float64 `json:"vote_average"`
	Runtime       int     `json:"runtime"`
}

type personDetail struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Biography          string `json:"biography"`
	Birthday           string `json:"birthday"`
	Deathday           string `json:"deathday"`
	PlaceOfBirth       string `json:"place_of_birth"`
	ProfilePath        string `json:"profile_path"`
	KnownForDepartment string `json:"known_for_department"`
}

// personCredits is the movie_credits response; cast and crew rows share the
// movie list shape.
type personCredits struct {
	Cast []movieItem `json:"cast"`
	Crew []movieItem `json:"crew"`
}
