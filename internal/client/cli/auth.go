package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/filmvault/internal/client/session"
)

func (c *Cli) newRegisterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c.io.Println("=== Register ===")
			c.io.Println()

			name, err := c.io.ReadInput("Name: ")
			if err != nil {
				return fmt.Errorf("failed to read name: %w", err)
			}
			email, err := c.io.ReadInput("Email: ")
			if err != nil {
				return fmt.Errorf("failed to read email: %w", err)
			}
			password, err := c.io.ReadPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			confirm, err := c.io.ReadPassword("Confirm password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			if password != confirm {
				return errors.New("passwords do not match")
			}

			if err := c.session.Register(ctx, name, email, password); err != nil {
				if errors.Is(err, session.ErrDuplicateUser) {
					return errors.New("an account with this email already exists")
				}
				return err
			}

			c.io.Println()
			c.io.Println("✓ Registration successful!")
			c.printUser()
			return nil
		},
	}
}

func (c *Cli) newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c.io.Println("=== Login ===")
			c.io.Println()

			email, err := c.io.ReadInput("Email: ")
			if err != nil {
				return fmt.Errorf("failed to read email: %w", err)
			}
			password, err := c.io.ReadPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			if err := c.session.Login(ctx, email, password); err != nil {
				if errors.Is(err, session.ErrInvalidCredentials) {
					return errors.New("invalid email or password")
				}
				return err
			}

			c.io.Println()
			c.io.Println("✓ Login successful!")
			c.printUser()
			return nil
		},
	}
}

func (c *Cli) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.session.Logout(cmd.Context()); err != nil {
				return err
			}
			c.io.Println("✓ Logged out")
			return nil
		},
	}
}

func (c *Cli) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.io.Println("=== Session Status ===")
			c.io.Println()

			switch c.session.Status() {
			case session.StatusAuthenticated:
				c.io.Println("Status: Authenticated")
				c.printUser()
				c.io.Printf("Favorites: %d\n", len(c.favorites.List()))
			default:
				c.io.Println("Status: Not authenticated")
				if c.initErr != nil {
					c.io.Println("⚠️  Server is unreachable, saved session was not checked.")
				}
				c.io.Println()
				c.io.Println("Run 'filmvault login' to authenticate.")
			}

			c.io.Printf("Theme: %s\n", c.theme.Get(cmd.Context()))
			return nil
		},
	}
}

func (c *Cli) printUser() {
	user := c.session.CurrentUser()
	if user == nil {
		return
	}
	c.io.Printf("Name:  %s\n", user.Name)
	c.io.Printf("Email: %s\n", user.Email)
}
