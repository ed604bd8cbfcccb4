package main

import (
	"fmt"

	"github.com/dori/projecthub/internal/app"
	"github.com/spf13/cobra"
)

var (
	registerEmail string
	loginEmail    string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts and sessions",
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and print a session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			ident, tok, err := a.Auth.Register(registerEmail, a.Config.APIKey)
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s\n", ident.Email)
			fmt.Printf("Token: %s\n", tok)
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Open a session and print its token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			ident, tok, err := a.Auth.SignIn(loginEmail)
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s\n", ident.Email)
			fmt.Printf("Token: %s\n", tok)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Invalidate the current session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			if err := a.Auth.SignOut(token); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		})
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.MarkFlagRequired("email")
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.MarkFlagRequired("email")

	userCmd.AddCommand(registerCmd, loginCmd, logoutCmd)
	rootCmd.AddCommand(userCmd)
}
