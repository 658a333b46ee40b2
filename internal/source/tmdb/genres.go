package tmdb

import "strings"

// Genres maps TMDB genre IDs to display names. List rows carry only IDs;
// detail responses carry full refs.
var Genres = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// Genre is one entry of GenreList, with a URL-safe slug.
type Genre struct {
	ID   int
	Name string
	Slug string
}

// GenreList returns all known genres with slugs for route building.
func GenreList() []Genre {
	genres := make([]Genre, 0, len(Genres))
	for id, name := range Genres {
		genres = append(genres, Genre{
			ID:   id,
			Name: name,
			Slug: strings.ReplaceAll(strings.ToLower(name), " ", "-"),
		})
	}
	return genres
}

// GenreNames resolves genre IDs to names, skipping unknown IDs.
func GenreNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := Genres[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Countries lists the origin-country filters exposed by the discover queries.
var Countries = []struct {
	Code string
	Name string
}{
	{"US", "United States of America"},
	{"GB", "United Kingdom"},
	{"FR", "France"},
	{"DE", "Germany"},
	{"JP", "Japan"},
	{"KR", "South Korea"},
	{"CN", "China"},
	{"IN", "India"},
	{"IT", "Italy"},
	{"ES", "Spain"},
	{"CA", "Canada"},
	{"AU", "Australia"},
	{"BR", "Brazil"},
	{"MX", "Mexico"},
	{"TH", "Thailand"},
	{"ID", "Indonesia"},
	{"PH", "Philippines"},
	{"HK", "Hong Kong"},
	{"TW", "Taiwan"},
}
