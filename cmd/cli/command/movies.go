package command

import (
	"fmt"
	"strconv"
	"strings"

	"cineforo/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "Browse the movie catalog",
}

func movieListCmd(list, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   list,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetInt("page")
			result, err := client.NewHTTPClient(apiURL).Movies(list, page)
			if err != nil {
				return err
			}
			printMoviePage(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().Int("page", 1, "result page")
	return cmd
}

var searchMoviesCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search movies by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return fmt.Errorf("search query must not be empty")
		}
		page, _ := cmd.Flags().GetInt("page")

		result, err := client.NewHTTPClient(apiURL).SearchMovies(query, page)
		if err != nil {
			return err
		}
		printMoviePage(cmd.OutOrStdout(), result)
		return nil
	},
}

var showMovieCmd = &cobra.Command{
	Use:   "show [movie-id]",
	Short: "Show a movie's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, err := parseMovieID(args[0])
		if err != nil {
			return err
		}
		movie, err := client.NewHTTPClient(apiURL).Movie(movieID)
		if err != nil {
			return err
		}
		printMovie(cmd.OutOrStdout(), movie)
		return nil
	},
}

func parseMovieID(raw string) (int64, error) {
	movieID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || movieID <= 0 {
		return 0, fmt.Errorf("invalid movie ID %q", raw)
	}
	return movieID, nil
}

func init() {
	moviesCmd.AddCommand(
		movieListCmd("popular", "Popular movies"),
		movieListCmd("now-playing", "Movies in theatres now"),
		movieListCmd("upcoming", "Upcoming releases"),
		searchMoviesCmd,
		showMovieCmd,
	)
	searchMoviesCmd.Flags().Int("page", 1, "result page")
}
