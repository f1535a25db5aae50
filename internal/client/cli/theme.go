package cli

import (
	"github.com/spf13/cobra"

	"github.com/iudanet/filmvault/internal/client/theme"
)

func (c *Cli) newThemeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the color theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.io.Printf("Theme: %s\n", c.theme.Get(cmd.Context()))
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the current theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.io.Printf("Theme: %s\n", c.theme.Get(cmd.Context()))
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := c.theme.Toggle(cmd.Context())
			if err != nil {
				return err
			}
			c.io.Printf("Theme: %s\n", next)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <light|dark>",
		Short: "Set the theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := theme.Parse(args[0])
			if err != nil {
				return err
			}
			if err := c.theme.Set(cmd.Context(), t); err != nil {
				return err
			}
			c.io.Printf("Theme: %s\n", t)
			return nil
		},
	}

	cmd.AddCommand(get, toggle, set)
	return cmd
}
