package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/layarproject/layar/internal/catalog"
	"github.com/layarproject/layar/internal/config"
	"github.com/layarproject/layar/internal/domain"
	"github.com/layarproject/layar/internal/fetch"
	"github.com/layarproject/layar/internal/log"
	"github.com/layarproject/layar/internal/search"
	"github.com/layarproject/layar/internal/source/dramabox"
	"github.com/layarproject/layar/internal/source/tmdb"
	"github.com/layarproject/layar/internal/source/yts"
	"github.com/layarproject/layar/internal/store"
)

// Version is set at build time via -ldflags
var Version = "dev"

const usage = `usage: layar <command> [flags]

commands:
  movies    list a movie chart (-list popular|now_playing|top_rated|trending|upcoming, -page N)
  series    list a TV chart (-list popular|on_the_air|airing_today, -page N)
  dramas    list a drama shelf (-list trending|latest|foryou|vip|random, -page N)
  search    mixed search across sources (-q query, -page N)
  movie     movie detail (-id N)
  drama     drama detail with episodes (-id bookId)
  enrich    merged movie record from both movie sources (-title T, -year Y)
  history   show watch history (-type movie|tvseries|dramabox), or: history clear
  unlock    show share-unlock state
`

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if showVersion {
		fmt.Printf("layar %s\n", Version)
		return
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	cfg     *config.Config
	catalog *catalog.Service
	history *store.History
	unlock  *store.Unlock
	out     *tabwriter.Writer
}

func run(args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("no command given")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)
	logger.Info("starting layar", "version", Version, "command", args[0])

	kv, err := store.Open(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer kv.Close()

	fetcher := fetch.NewClient(cfg.Fetch.Proxies,
		time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second, logger)

	a := &app{
		cfg: cfg,
		catalog: catalog.NewService(
			tmdb.NewClient(cfg.API.TMDBBase, cfg.API.TMDBKey, fetcher, logger),
			yts.NewClient(cfg.API.YTSBase, fetcher, logger),
			dramabox.NewClient(cfg.API.DramaboxBase, fetcher, logger),
			logger,
		),
		history: store.NewHistory(kv, logger),
		unlock:  store.NewUnlock(kv, logger),
		out:     tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0),
	}
	defer a.out.Flush()

	ctx := context.Background()
	switch args[0] {
	case "movies":
		return a.movies(ctx, args[1:])
	case "series":
		return a.series(ctx, args[1:])
	case "dramas":
		return a.dramas(ctx, args[1:])
	case "search":
		return a.search(ctx, args[1:])
	case "movie":
		return a.movieDetail(ctx, args[1:])
	case "drama":
		return a.dramaDetail(ctx, args[1:])
	case "enrich":
		return a.enrich(ctx, args[1:])
	case "history":
		return a.showHistory(args[1:])
	case "unlock":
		return a.unlockState()
	default:
		flag.Usage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (a *app) movies(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("movies", flag.ExitOnError)
	list := fs.String("list", "popular", "chart to show")
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	result := a.catalog.Movies(ctx, catalog.MovieList(*list), *page)
	for _, m := range result.Items {
		fmt.Fprintf(a.out, "%d\t%s\t%d\t%.1f\t%s\n",
			m.ID, m.Title, m.Year, m.Rating, strings.Join(tmdb.GenreNames(m.GenreIDs), ", "))
	}
	fmt.Fprintf(a.out, "page %d of %d\n", *page, result.TotalPages)
	return nil
}

func (a *app) series(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("series", flag.ExitOnError)
	list := fs.String("list", "popular", "chart to show")
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	result := a.catalog.Series(ctx, catalog.SeriesList(*list), *page)
	for _, s := range result.Items {
		fmt.Fprintf(a.out, "%d\t%s\t%d\t%.1f\n", s.ID, s.Name, s.Year, s.Rating)
	}
	fmt.Fprintf(a.out, "page %d of %d\n", *page, result.TotalPages)
	return nil
}

func (a *app) dramas(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dramas", flag.ExitOnError)
	list := fs.String("list", "trending", "shelf to show")
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	for _, d := range a.catalog.Dramas(ctx, catalog.DramaList(*list), *page) {
		fmt.Fprintf(a.out, "%s\t%s\t%d eps\t%s\n",
			d.BookID, d.BookName, d.ChapterCount, strings.Join(d.Tags, ", "))
	}
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("q", "", "search query")
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)
	if *query == "" {
		return fmt.Errorf("search requires -q")
	}

	results := a.catalog.Search(ctx, *query, *page)
	for _, r := range results.Results {
		switch r.Type {
		case domain.ContentTypeMovie:
			fmt.Fprintf(a.out, "movie\t%d\t%s\t%d\n", r.Movie.ID, r.Movie.Title, r.Movie.Year)
		case domain.ContentTypeSeries:
			fmt.Fprintf(a.out, "tv\t%d\t%s\t%d\n", r.Series.ID, r.Series.Name, r.Series.Year)
		}
	}
	for _, d := range results.Dramas {
		fmt.Fprintf(a.out, "drama\t%s\t%s\t%d eps\n", d.BookID, d.BookName, d.ChapterCount)
	}

	idx := search.NewIndex(search.FromHistory(a.history.All()))
	for _, hit := range idx.Find(*query) {
		fmt.Fprintf(a.out, "history\t%s\t%s\n", hit.Type, hit.Title)
	}
	return nil
}

func (a *app) movieDetail(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("movie", flag.ExitOnError)
	id := fs.Int("id", 0, "movie id")
	fs.Parse(args)

	detail := a.catalog.MovieDetail(ctx, *id)
	if detail == nil {
		fmt.Fprintln(a.out, "not found")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%d)\t%.1f\t%dm\n", detail.Title, detail.Year, detail.Rating, detail.Runtime)
	fmt.Fprintf(a.out, "genres\t%s\n", strings.Join(detail.Genres, ", "))
	if director := tmdb.Director(detail.Crew); director != nil {
		fmt.Fprintf(a.out, "director\t%s\n", director.Name)
	}
	if trailer := tmdb.Trailer(detail.Videos); trailer != nil {
		fmt.Fprintf(a.out, "trailer\t%s\n", tmdb.TrailerEmbedURL(trailer.Key))
	}
	fmt.Fprintf(a.out, "%s\n", detail.Overview)

	for _, m := range a.catalog.MovieRecommendations(ctx, *id) {
		fmt.Fprintf(a.out, "related\t%d\t%s\n", m.ID, m.Title)
	}
	return nil
}

func (a *app) dramaDetail(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("drama", flag.ExitOnError)
	id := fs.String("id", "", "drama bookId")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("drama requires -id")
	}

	drama := a.catalog.DramaDetail(ctx, *id)
	if drama == nil {
		fmt.Fprintln(a.out, "not found")
		return nil
	}
	fmt.Fprintf(a.out, "%s\t%d eps\t%s\n", drama.BookName, drama.ChapterCount, strings.Join(drama.Tags, ", "))

	for _, ep := range a.catalog.DramaEpisodes(ctx, *id) {
		url, err := a.catalog.EpisodeVideoURL(ep)
		if err != nil {
			url = "(unavailable)"
		}
		fmt.Fprintf(a.out, "%d\t%s\t%s\n", ep.ChapterIndex, ep.ChapterName, url)
	}

	for _, d := range a.catalog.RelatedDramas(ctx, *drama) {
		fmt.Fprintf(a.out, "related\t%s\t%s\n", d.BookID, d.BookName)
	}
	return nil
}

func (a *app) enrich(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("enrich", flag.ExitOnError)
	title := fs.String("title", "", "movie title")
	year := fs.Int("year", 0, "release year")
	fs.Parse(args)
	if *title == "" {
		return fmt.Errorf("enrich requires -title")
	}

	movie := a.catalog.EnhancedMovie(ctx, *title, *year)
	fmt.Fprintf(a.out, "%s (%d)\t%.1f\t%dm\t%s\n",
		movie.Title, movie.Year, movie.Rating, movie.Runtime, strings.Join(movie.Genres, ", "))
	fmt.Fprintf(a.out, "poster\t%s\n", movie.PosterURL)
	if movie.TrailerKey != "" {
		fmt.Fprintf(a.out, "trailer\t%s\n", tmdb.TrailerEmbedURL(movie.TrailerKey))
	}
	for _, t := range movie.Torrents {
		fmt.Fprintf(a.out, "torrent\t%s\t%s\t%d seeds\n", t.Quality, t.Size, t.Seeds)
	}
	return nil
}

func (a *app) showHistory(args []string) error {
	if len(args) > 0 && args[0] == "clear" {
		a.history.Clear()
		fmt.Fprintln(a.out, "history cleared")
		return nil
	}

	fs := flag.NewFlagSet("history", flag.ExitOnError)
	contentType := fs.String("type", "", "filter by content type")
	fs.Parse(args)

	items := a.history.All()
	if *contentType != "" {
		items = a.history.ByType(domain.ContentType(*contentType))
	}
	for _, item := range items {
		watched := time.UnixMilli(item.WatchedAt).Format("2006-01-02 15:04")
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\n", watched, item.Type, item.Title, item.WatchURL())
	}
	return nil
}

func (a *app) unlockState() error {
	if a.unlock.Unlocked() {
		fmt.Fprintln(a.out, "unlocked")
	} else {
		fmt.Fprintln(a.out, "locked")
	}
	return nil
}
