package cmd

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oksasatya/heart-api/pkg/client/store"
)

type credentials struct {
	identifier string
	password   string
	confirm    string
}

func (a *app) credentialFlags(cmd *cobra.Command, c *credentials, confirm bool) {
	cmd.Flags().StringVarP(&c.identifier, "email", "e", "", "email or +91 mobile number")
	cmd.Flags().StringVarP(&c.password, "password", "p", "", "password (read from stdin when empty)")
	if confirm {
		cmd.Flags().StringVar(&c.confirm, "confirm", "", "password confirmation (defaults to --password)")
	}
	_ = cmd.MarkFlagRequired("email")
}

// readPassword takes the first line of stdin when no password flag was given.
func (a *app) readPassword(c *credentials) error {
	if c.password != "" {
		return nil
	}
	line, _ := bufio.NewReader(a.in).ReadString('\n')
	c.password = strings.TrimRight(line, "\r\n")
	if c.password == "" {
		return errors.New("password is required")
	}
	return nil
}

func (a *app) signupCmd() *cobra.Command {
	var c credentials
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.readPassword(&c); err != nil {
				return err
			}
			if c.confirm == "" {
				c.confirm = c.password
			}
			u, err := a.api.Signup(a.ctx(cmd), c.identifier, c.password, c.confirm)
			if err != nil {
				return err
			}
			a.printer.Success("Account created for %s", u.Email)
			return nil
		},
	}
	a.credentialFlags(cmd, &c, true)
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var c credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.readPassword(&c); err != nil {
				return err
			}
			u, err := a.api.Login(a.ctx(cmd), c.identifier, c.password)
			if err != nil {
				return err
			}
			a.printer.Success("Logged in as %s", u.Email)
			return nil
		},
	}
	a.credentialFlags(cmd, &c, false)
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.session.LoggedIn() {
				a.printer.Info("Not logged in")
				return nil
			}
			if err := a.api.Logout(a.ctx(cmd)); err != nil {
				a.printer.Warning("server logout failed: %v", err)
			}
			a.printer.Success("Logged out")
			return nil
		},
	}
}

func (a *app) meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			u, err := a.api.Me(a.ctx(cmd))
			if err != nil {
				return err
			}
			a.printUser(u)
			return nil
		},
	}
}

func (a *app) printUser(u *store.User) {
	a.printer.Header("Account")
	a.printer.Print("ID:      %s", u.ID)
	a.printer.Print("Email:   %s", u.Email)
	if !u.CreatedAt.IsZero() {
		a.printer.Print("Since:   %s", u.CreatedAt.Format("2006-01-02"))
	}
}
