package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"inkpress/internal/cli/prompt"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the article service",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		email := loginEmail
		if email == "" {
			email, err = prompt.Line("Email")
			if err != nil {
				return err
			}
		}
		password, err := prompt.Password("Password")
		if err != nil {
			return err
		}

		res, err := a.API.Login(cmd.Context(), email, password)
		if err != nil {
			return describeErr(err)
		}
		if err := a.Session.Set(res.Actor, res.Token); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
		fmt.Printf("Logged in as %s (%s)\n", res.Actor.DisplayName, res.Actor.Role)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}

		name, err := prompt.Line("Name")
		if err != nil {
			return err
		}
		email, err := prompt.Line("Email")
		if err != nil {
			return err
		}
		password, err := prompt.Password("Password")
		if err != nil {
			return err
		}
		confirm, err := prompt.Password("Confirm password")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		res, err := a.API.Register(cmd.Context(), name, email, password)
		if err != nil {
			return describeErr(err)
		}
		if err := a.Session.Set(res.Actor, res.Token); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
		fmt.Printf("Registered and logged in as %s (%s)\n", res.Actor.DisplayName, res.Actor.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		if !a.Session.Authenticated() {
			fmt.Println("Not logged in.")
			return nil
		}
		// server-side logout is best effort; local state always clears
		if err := a.API.Logout(cmd.Context()); err != nil {
			fmt.Printf("Server logout failed (%v); clearing local session anyway.\n", err)
		}
		if err := a.Session.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiRemote bool

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current actor",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		actor := a.Session.Actor()
		if actor == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		if whoamiRemote {
			fresh, err := a.API.Profile(cmd.Context())
			if err != nil {
				return describeErr(err)
			}
			actor = &fresh
			if err := a.Session.Set(fresh, a.Session.Token()); err != nil {
				return fmt.Errorf("persist session: %w", err)
			}
		}
		fmt.Printf("%s <%s> role=%s\n", actor.DisplayName, actor.Email, actor.Role)
		return nil
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the account password",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp(cmd)
		if err != nil {
			return err
		}
		if !a.Session.Authenticated() {
			return fmt.Errorf("not logged in")
		}
		current, err := prompt.Password("Current password")
		if err != nil {
			return err
		}
		next, err := prompt.Password("New password")
		if err != nil {
			return err
		}
		confirm, err := prompt.Password("Confirm new password")
		if err != nil {
			return err
		}
		if next != confirm {
			return fmt.Errorf("passwords do not match")
		}
		if err := a.API.ChangePassword(cmd.Context(), current, next); err != nil {
			return describeErr(err)
		}
		fmt.Println("Password changed.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email (prompted when omitted)")
	whoamiCmd.Flags().BoolVar(&whoamiRemote, "remote", false, "refresh the profile from the server")
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd, passwdCmd)
}
