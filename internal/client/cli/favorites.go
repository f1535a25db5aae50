package cli

import (
	"github.com/spf13/cobra"

	"github.com/iudanet/filmvault/internal/models"
)

func (c *Cli) newFavoritesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage your favorites",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}

			c.io.Println("=== Favorites ===")
			c.io.Println()

			entries := c.favorites.List()
			if len(entries) == 0 {
				c.io.Println("No favorites yet.")
				c.io.Println()
				c.io.Println("Use 'filmvault favorites add <id>' to add one.")
				return nil
			}

			for _, e := range entries {
				c.io.Printf("%-5s %8d  %s (%s)  ⭐ %s\n", e.MediaType, e.ID, e.Title, year(e.ReleaseDate), rating(e.VoteAverage))
			}
			c.io.Println()
			c.io.Printf("Total: %d\n", len(entries))
			return nil
		},
	}

	var addTV bool
	add := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a movie (or TV show with --tv) to favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			var entry models.FavoriteEntry
			if addTV {
				details, err := c.catalog.GetTVShowDetails(ctx, id)
				if err != nil {
					c.catalogFailed("TV show details", err)
					return nil
				}
				entry = models.FavoriteFromTVShow(&details.TVShow)
			} else {
				details, err := c.catalog.GetMovieDetails(ctx, id)
				if err != nil {
					c.catalogFailed("movie details", err)
					return nil
				}
				entry = models.FavoriteFromMovie(&details.Movie)
			}

			if c.favorites.Contains(entry.Key()) {
				c.io.Printf("%s is already in your favorites\n", entry.Title)
				return nil
			}
			if err := c.favorites.Add(ctx, entry); err != nil {
				return err
			}
			c.io.Printf("★ Added %s to favorites\n", entry.Title)
			return nil
		},
	}
	add.Flags().BoolVar(&addTV, "tv", false, "The id refers to a TV show")

	var removeTV bool
	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a movie (or TV show with --tv) from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			mediaType := models.MediaTypeMovie
			if removeTV {
				mediaType = models.MediaTypeTV
			}
			key := models.FavoriteKey(mediaType, id)

			if !c.favorites.Contains(key) {
				c.io.Printf("%s is not in your favorites\n", key)
				return nil
			}
			if err := c.favorites.Remove(cmd.Context(), key); err != nil {
				return err
			}
			c.io.Printf("Removed %s from favorites\n", key)
			return nil
		},
	}
	remove.Flags().BoolVar(&removeTV, "tv", false, "The id refers to a TV show")

	cmd.AddCommand(list, add, remove)
	return cmd
}
