package command

// root.go defines the root command for the cineforo CLI application.
// set up the global flags here.

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const defaultAPI = "http://localhost:8080"

var (
	apiURL  string // Global flag for API server URL
	noColor bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cineforo",
	Short: "cineforo - movie forum from the terminal",
	Long: `cineforo is a client for the CineForo API. With it a user can:
- Register, log in and edit their profile
- Browse popular, now playing and upcoming movies, or search the catalog
- Open forum topics, comment and react to comments
- Keep a list of favourite movies

Use "cineforo [command] --help" to see all available commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, failure(err))
		os.Exit(1)
	}
}

func init() {
	api := os.Getenv("CINEFORO_API")
	if api == "" {
		api = defaultAPI
	}

	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", api, "API server URL (env CINEFORO_API)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")

	rootCmd.AddCommand(authCmd, moviesCmd, forumCmd, commentCmd, favoriteCmd, profileCmd)
}
