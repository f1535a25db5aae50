package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/filmvault/internal/catalog/tmdb"
	"github.com/iudanet/filmvault/internal/client/iocli"
)

const (
	defaultServerURL = "http://localhost:8080"
	defaultDBPath    = "filmvault-client.db"
)

// NewRootCommand собирает дерево команд filmvault
func NewRootCommand(io iocli.IO, version string) *cobra.Command {
	var opts Options
	c := &Cli{io: io}

	root := &cobra.Command{
		Use:           "filmvault",
		Short:         "Browse movies and TV shows, keep your favorites",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd.Context(), opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ServerURL, "server", envOr("FILMVAULT_SERVER", defaultServerURL), "Server URL (env FILMVAULT_SERVER)")
	flags.StringVar(&opts.DBPath, "db", envOr("FILMVAULT_DB", defaultDBPath), "Path to local database (env FILMVAULT_DB)")
	flags.StringVar(&opts.CatalogURL, "catalog-url", os.Getenv("FILMVAULT_CATALOG_URL"),
		"Catalog base URL; defaults to the server proxy, or "+tmdb.DefaultBaseURL+" with --tmdb-key (env FILMVAULT_CATALOG_URL)")
	flags.StringVar(&opts.TMDBAPIKey, "tmdb-key", os.Getenv("TMDB_API_KEY"), "Query TMDB directly with this API key (env TMDB_API_KEY)")
	flags.StringVar(&opts.Theme, "theme", os.Getenv("FILMVAULT_THEME"), "Default theme when none is saved: light or dark (env FILMVAULT_THEME)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose logging to stderr")

	c.addCommands(root)
	return root
}

// addCommands регистрирует подкоманды, использующие c
func (c *Cli) addCommands(root *cobra.Command) {
	root.AddCommand(
		c.newRegisterCommand(),
		c.newLoginCommand(),
		c.newLogoutCommand(),
		c.newStatusCommand(),
		c.newMoviesCommand(),
		c.newTVCommand(),
		c.newFavoritesCommand(),
		c.newThemeCommand(),
		c.newSuggestCommand(),
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
