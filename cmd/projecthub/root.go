package main

import (
	"fmt"
	"os"

	"github.com/dori/projecthub/internal/app"
	"github.com/dori/projecthub/internal/auth"
	"github.com/dori/projecthub/internal/config"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	cfgPath string
	token   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "projecthub",
	Short: "Project, task and note management with PDF/JSON export",
	Long: `ProjectHub manages projects, their tasks and free-form task notes,
and exports a project's full data as a PDF or JSON snapshot.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("PROJECTHUB_TOKEN"),
		"Session token (defaults to PROJECTHUB_TOKEN)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("projecthub v%s\n", version)
	},
}

// withApp loads configuration, opens the application, and runs fn.
func withApp(fn func(a *app.App) error) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	return fn(application)
}

// withIdentity additionally resolves the session token into an identity.
func withIdentity(fn func(a *app.App, ident *auth.Identity) error) error {
	return withApp(func(a *app.App) error {
		ident, err := a.Auth.CurrentIdentity(token)
		if err != nil {
			return err
		}
		return fn(a, ident)
	})
}
