package command

import (
	"fmt"

	"cineforo/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:     "favorite",
	Aliases: []string{"fav"},
	Short:   "Your favourite movies",
}

var listFavoritesCmd = &cobra.Command{
	Use:   "list",
	Short: "List your favourites, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		favorites, err := httpClient.Favorites()
		if err != nil {
			return err
		}
		printFavorites(cmd.OutOrStdout(), favorites)
		return nil
	},
}

var addFavoriteCmd = &cobra.Command{
	Use:   "add [movie-id]",
	Short: "Bookmark a movie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, err := parseMovieID(args[0])
		if err != nil {
			return err
		}
		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}

		// title, poster and rating are stored with the favourite
		movie, err := httpClient.Movie(movieID)
		if err != nil {
			return err
		}
		req := dto.AddFavoriteRequest{
			MovieID:     movie.ID,
			MovieTitle:  movie.Title,
			MovieRating: movie.VoteAverage,
		}
		if movie.PosterPath != nil {
			req.MoviePoster = movie.PosterPath
		}

		if _, err := httpClient.AddFavorite(req); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "%s added to favourites", movie.Title)
		return nil
	},
}

var removeFavoriteCmd = &cobra.Command{
	Use:   "remove [movie-id]",
	Short: "Remove a movie from favourites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, err := parseMovieID(args[0])
		if err != nil {
			return err
		}
		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		if err := httpClient.RemoveFavorite(movieID); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Movie %d removed from favourites", movieID)
		return nil
	},
}

var checkFavoriteCmd = &cobra.Command{
	Use:   "check [movie-id]",
	Short: "Tell whether a movie is in your favourites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		movieID, err := parseMovieID(args[0])
		if err != nil {
			return err
		}
		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		isFavorite, err := httpClient.IsFavorite(movieID)
		if err != nil {
			return err
		}
		if isFavorite {
			fmt.Fprintf(cmd.OutOrStdout(), "%s movie %d is a favourite\n", likeColor.Sprint("♥"), movieID)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "movie %d is not in your favourites\n", movieID)
		}
		return nil
	},
}

var countFavoritesCmd = &cobra.Command{
	Use:   "count",
	Short: "Count your favourites",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		count, err := httpClient.CountFavorites()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d favourite movies\n", count)
		return nil
	},
}

func init() {
	favoriteCmd.AddCommand(listFavoritesCmd, addFavoriteCmd, removeFavoriteCmd, checkFavoriteCmd, countFavoritesCmd)
}
