package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/filmvault/internal/catalog/tmdb"
	"github.com/iudanet/filmvault/internal/models"
)

func (c *Cli) newMoviesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movies",
		Short: "Browse movies",
	}

	var page int
	popular := &cobra.Command{
		Use:   "popular",
		Short: "List popular movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.catalog.GetPopularMovies(cmd.Context(), page)
			if err != nil {
				c.catalogFailed("popular movies", err)
				return nil
			}
			c.io.Println("=== Popular Movies ===")
			c.printMovies(result)
			return nil
		},
	}
	popular.Flags().IntVar(&page, "page", 1, "Page number")

	var searchPage int
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search movies by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			result, err := c.catalog.SearchMovies(cmd.Context(), query, searchPage)
			if err != nil {
				c.catalogFailed("search results", err)
				return nil
			}
			c.io.Printf("=== Search: %s ===\n", query)
			if len(result.Results) == 0 {
				c.io.Println("No movies found.")
				return nil
			}
			c.printMovies(result)
			return nil
		},
	}
	search.Flags().IntVar(&searchPage, "page", 1, "Page number")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show movie details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			details, err := c.catalog.GetMovieDetails(cmd.Context(), id)
			if err != nil {
				c.catalogFailed("movie details", err)
				return nil
			}
			c.printMovieDetails(details)
			return nil
		},
	}

	cmd.AddCommand(popular, search, show)
	return cmd
}

func (c *Cli) newTVCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tv",
		Short: "Browse TV shows",
	}

	var page int
	popular := &cobra.Command{
		Use:   "popular",
		Short: "List popular TV shows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.catalog.GetPopularTVShows(cmd.Context(), page)
			if err != nil {
				c.catalogFailed("popular TV shows", err)
				return nil
			}
			c.io.Println("=== Popular TV Shows ===")
			c.printTVShows(result)
			return nil
		},
	}
	popular.Flags().IntVar(&page, "page", 1, "Page number")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show TV show details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			details, err := c.catalog.GetTVShowDetails(cmd.Context(), id)
			if err != nil {
				c.catalogFailed("TV show details", err)
				return nil
			}
			c.printTVShowDetails(details)
			return nil
		},
	}

	cmd.AddCommand(popular, show)
	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive number", s)
	}
	return id, nil
}

func (c *Cli) printMovies(page *models.MoviePage) {
	c.io.Println()
	for _, m := range page.Results {
		c.io.Printf("%s %8d  %s (%s)  ⭐ %s\n",
			c.favoriteMark(models.MediaTypeMovie, m.ID), m.ID, m.Title, year(m.ReleaseDate), rating(m.VoteAverage))
	}
	if footer := pageFooter(page.Page, page.TotalPages); footer != "" {
		c.io.Println()
		c.io.Println(footer)
	}
}

func (c *Cli) printTVShows(page *models.TVShowPage) {
	c.io.Println()
	for _, s := range page.Results {
		c.io.Printf("%s %8d  %s (%s)  ⭐ %s\n",
			c.favoriteMark(models.MediaTypeTV, s.ID), s.ID, s.Name, year(s.FirstAirDate), rating(s.VoteAverage))
	}
	if footer := pageFooter(page.Page, page.TotalPages); footer != "" {
		c.io.Println()
		c.io.Println(footer)
	}
}

func (c *Cli) printMovieDetails(d *models.MovieDetails) {
	c.io.Printf("=== %s (%s) ===\n", d.Title, year(d.ReleaseDate))
	if d.Tagline != "" {
		c.io.Printf("%q\n", d.Tagline)
	}
	c.io.Println()
	c.io.Printf("Rating:   %s (%d votes)\n", rating(d.VoteAverage), d.VoteCount)
	if d.Runtime > 0 {
		c.io.Printf("Runtime:  %d min\n", d.Runtime)
	}
	if len(d.Genres) > 0 {
		c.io.Printf("Genres:   %s\n", genres(d.Genres))
	}
	if d.Status != "" {
		c.io.Printf("Status:   %s\n", d.Status)
	}
	c.io.Printf("Poster:   %s\n", tmdb.PosterURL(d.PosterPath, tmdb.DefaultPosterSize))
	c.io.Printf("Backdrop: %s\n", tmdb.BackdropURL(d.BackdropPath, tmdb.DefaultBackdropSize))
	if d.Overview != "" {
		c.io.Println()
		c.io.Println(d.Overview)
	}
	c.printFavoriteHint(models.MediaTypeMovie, d.ID)
}

func (c *Cli) printTVShowDetails(d *models.TVShowDetails) {
	c.io.Printf("=== %s (%s) ===\n", d.Name, year(d.FirstAirDate))
	c.io.Println()
	c.io.Printf("Rating:   %s (%d votes)\n", rating(d.VoteAverage), d.VoteCount)
	c.io.Printf("Seasons:  %d (%d episodes)\n", d.NumberOfSeasons, d.NumberOfEpisodes)
	if len(d.Genres) > 0 {
		c.io.Printf("Genres:   %s\n", genres(d.Genres))
	}
	if d.Status != "" {
		c.io.Printf("Status:   %s\n", d.Status)
	}
	c.io.Printf("Poster:   %s\n", tmdb.PosterURL(d.PosterPath, tmdb.DefaultPosterSize))
	c.io.Printf("Backdrop: %s\n", tmdb.BackdropURL(d.BackdropPath, tmdb.DefaultBackdropSize))
	if d.Overview != "" {
		c.io.Println()
		c.io.Println(d.Overview)
	}
	c.printFavoriteHint(models.MediaTypeTV, d.ID)
}

func (c *Cli) printFavoriteHint(mediaType models.MediaType, id int) {
	if !c.authenticated() {
		return
	}

	c.io.Println()
	flag := ""
	if mediaType == models.MediaTypeTV {
		flag = " --tv"
	}
	if c.favorites.Contains(models.FavoriteKey(mediaType, id)) {
		c.io.Printf("★ In your favorites (filmvault favorites remove %d%s)\n", id, flag)
	} else {
		c.io.Printf("☆ Add to favorites: filmvault favorites add %d%s\n", id, flag)
	}
}
