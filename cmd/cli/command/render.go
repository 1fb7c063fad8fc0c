package command

import (
	"fmt"
	"io"
	"strings"

	"cineforo/internal/catalog/tmdb"
	"cineforo/internal/microservices/http-api/dto"

	"github.com/fatih/color"
)

const timeLayout = "2006-01-02 15:04"

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	headerColor  = color.New(color.FgCyan, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
	likeColor    = color.New(color.FgGreen)
	dislikeColor = color.New(color.FgRed)

	likedColor    = color.New(color.FgGreen, color.Bold)
	dislikedColor = color.New(color.FgRed, color.Bold)
)

func success(w io.Writer, format string, a ...any) {
	successColor.Fprintf(w, "✓ "+format+"\n", a...)
}

func failure(err error) string {
	return errorColor.Sprintf("✗ %s", err)
}

func printMoviePage(w io.Writer, page *tmdb.MoviePage) {
	if len(page.Results) == 0 {
		dimColor.Fprintln(w, "No movies found.")
		return
	}
	for _, m := range page.Results {
		headerColor.Fprintf(w, "%-8d %s", m.ID, m.Title)
		if m.ReleaseYear != "" {
			fmt.Fprintf(w, " (%s)", m.ReleaseYear)
		}
		fmt.Fprintf(w, "  ★ %.1f\n", m.VoteAverage)
	}
	dimColor.Fprintf(w, "page %d of %d, %d results\n", page.Page, page.TotalPages, page.TotalResults)
}

func printMovie(w io.Writer, m *tmdb.Movie) {
	headerColor.Fprintf(w, "%s", m.Title)
	if m.ReleaseYear != "" {
		fmt.Fprintf(w, " (%s)", m.ReleaseYear)
	}
	fmt.Fprintln(w)
	if m.Tagline != "" {
		dimColor.Fprintf(w, "%s\n", m.Tagline)
	}
	fmt.Fprintf(w, "Rating:  ★ %.1f (%d votes)\n", m.VoteAverage, m.VoteCount)
	if len(m.GenreNames) > 0 {
		fmt.Fprintf(w, "Genres:  %s\n", strings.Join(m.GenreNames, ", "))
	}
	if m.Runtime > 0 {
		fmt.Fprintf(w, "Runtime: %d min\n", m.Runtime)
	}
	if m.PosterURL != "" {
		fmt.Fprintf(w, "Poster:  %s\n", m.PosterURL)
	}
	if m.Overview != "" {
		fmt.Fprintf(w, "\n%s\n", m.Overview)
	}
}

func printTopics(w io.Writer, page *dto.PaginatedTopicResponse) {
	if len(page.Data) == 0 {
		dimColor.Fprintln(w, "No topics yet.")
		return
	}
	for _, t := range page.Data {
		headerColor.Fprintf(w, "%s\n", t.Title)
		fmt.Fprintf(w, "  [%s] by %s, %s\n", t.Category, t.AuthorName, t.CreatedAt.Local().Format(timeLayout))
		fmt.Fprintf(w, "  %s %d  💬 %d  ", likeColor.Sprint("♥"), t.Likes, t.CommentCount)
		dimColor.Fprintf(w, "%s\n", t.ID)
	}
	dimColor.Fprintf(w, "page %d of %d, %d topics\n", page.Page, page.TotalPages, page.Total)
}

func printTopic(w io.Writer, t *dto.TopicResponse) {
	headerColor.Fprintf(w, "%s\n", t.Title)
	fmt.Fprintf(w, "[%s] by %s, %s\n", t.Category, t.AuthorName, t.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(w, "\n%s\n\n", t.Description)
	fmt.Fprintf(w, "%s %d  💬 %d\n", likeColor.Sprint("♥"), t.Likes, t.CommentCount)
	dimColor.Fprintf(w, "id %s\n", t.ID)
}

func printComments(w io.Writer, comments []dto.CommentResponse) {
	if len(comments) == 0 {
		dimColor.Fprintln(w, "No comments yet.")
		return
	}
	for _, c := range comments {
		printComment(w, &c)
	}
}

func printComment(w io.Writer, c *dto.CommentResponse) {
	headerColor.Fprintf(w, "%s", c.AuthorName)
	dimColor.Fprintf(w, "  %s  %s\n", c.CreatedAt.Local().Format(timeLayout), c.ID)
	fmt.Fprintf(w, "  %s\n", c.Content)
	fmt.Fprintf(w, "  %s\n", formatVote(voteView{Reaction: c.UserReaction, Counts: countsOf(c.Likes, c.Dislikes)}, true))
}

func printFavorites(w io.Writer, favorites []dto.FavoriteResponse) {
	if len(favorites) == 0 {
		dimColor.Fprintln(w, "No favourites yet.")
		return
	}
	for _, f := range favorites {
		headerColor.Fprintf(w, "%-8d %s", f.MovieID, f.MovieTitle)
		fmt.Fprintf(w, "  ★ %.1f  ", f.MovieRating)
		dimColor.Fprintf(w, "added %s\n", f.CreatedAt.Local().Format(timeLayout))
	}
}

func printUser(w io.Writer, u *dto.UserResponse) {
	headerColor.Fprintf(w, "%s\n", u.Name)
	fmt.Fprintf(w, "Email:          %s\n", u.Email)
	fmt.Fprintf(w, "Favorite genre: %s\n", u.FavoriteGenre)
	fmt.Fprintf(w, "Role:           %s\n", u.Role)
	if u.AvatarURL != nil {
		fmt.Fprintln(w, "Avatar:         uploaded")
	}
	fmt.Fprintf(w, "Member since:   %s\n", u.CreatedAt.Local().Format("2006-01-02"))
}
