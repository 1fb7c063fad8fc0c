package command

import (
	"fmt"
	"strings"

	"cineforo/cmd/cli/command/client"
	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/validation"
	"cineforo/internal/reaction"

	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Comment management commands",
	Long: `Comment on forum topics or directly on movies, and like or dislike comments.
Targets are given as --topic <topic-id> or --movie <movie-id>.`,
}

// commentTarget is either a topic or a movie, picked by flag
type commentTarget struct {
	topicID string
	movieID int64
}

func targetFromFlags(cmd *cobra.Command, required bool) (*commentTarget, error) {
	topicID, _ := cmd.Flags().GetString("topic")
	movieID, _ := cmd.Flags().GetInt64("movie")
	switch {
	case topicID != "" && movieID != 0:
		return nil, fmt.Errorf("use either --topic or --movie, not both")
	case topicID != "":
		return &commentTarget{topicID: topicID}, nil
	case movieID > 0:
		return &commentTarget{movieID: movieID}, nil
	case movieID < 0:
		return nil, fmt.Errorf("invalid movie ID %d", movieID)
	case required:
		return nil, fmt.Errorf("--topic or --movie is required")
	}
	return nil, nil
}

func (t *commentTarget) list(c *client.HTTPClient) ([]dto.CommentResponse, error) {
	if t.topicID != "" {
		return c.TopicComments(t.topicID)
	}
	return c.MovieComments(t.movieID)
}

var listCommentsCmd = &cobra.Command{
	Use:   "list",
	Short: "List comments of a topic or movie, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := targetFromFlags(cmd, true)
		if err != nil {
			return err
		}
		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		comments, err := target.list(httpClient)
		if err != nil {
			return err
		}
		printComments(cmd.OutOrStdout(), comments)
		return nil
	},
}

var addCommentCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Comment on a topic or movie",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := targetFromFlags(cmd, true)
		if err != nil {
			return err
		}
		content := strings.Join(args, " ")
		if err := validation.ValidateComment(content); err != nil {
			return err
		}

		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		var comment *dto.CommentResponse
		if target.topicID != "" {
			comment, err = httpClient.AddTopicComment(target.topicID, content)
		} else {
			comment, err = httpClient.AddMovieComment(target.movieID, content)
		}
		if err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Comment posted: %s", comment.ID)
		return nil
	},
}

var deleteCommentCmd = &cobra.Command{
	Use:   "delete [comment-id]",
	Short: "Delete your comment (moderators can delete any)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		if err := httpClient.DeleteComment(args[0]); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Comment %s deleted", args[0])
		return nil
	},
}

func reactCmd(kind reaction.Kind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(kind) + " [comment-id]",
		Short: fmt.Sprintf("Toggle a %s on a comment", kind),
		Long: fmt.Sprintf(`Toggle a %s on a comment. Reacting twice removes the reaction.
Pass the comment's --topic or --movie to see the new counters before the server answers.`, kind),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commentID := args[0]
			target, err := targetFromFlags(cmd, false)
			if err != nil {
				return err
			}
			httpClient, _, err := GetAuthenticatedClient()
			if err != nil {
				return err
			}

			apply := func() (voteView, error) {
				resp, err := httpClient.ReactToComment(commentID, kind)
				if err != nil {
					return voteView{}, err
				}
				return voteView{Reaction: resp.Reaction, Counts: countsOf(resp.Likes, resp.Dislikes)}, nil
			}

			out := cmd.OutOrStdout()
			if target != nil {
				comments, err := target.list(httpClient)
				if err != nil {
					return err
				}
				for _, c := range comments {
					if c.ID == commentID {
						current := voteView{Reaction: c.UserReaction, Counts: countsOf(c.Likes, c.Dislikes)}
						return renderToggle(out, current, kind, true, apply)
					}
				}
			}

			confirmed, err := apply()
			if err != nil {
				return err
			}
			success(out, "%s", formatVote(confirmed, true))
			return nil
		},
	}
	cmd.Flags().String("topic", "", "topic the comment belongs to")
	cmd.Flags().Int64("movie", 0, "movie the comment belongs to")
	return cmd
}

func init() {
	commentCmd.AddCommand(listCommentsCmd, addCommentCmd, deleteCommentCmd, reactCmd(reaction.Like), reactCmd(reaction.Dislike))

	for _, cmd := range []*cobra.Command{listCommentsCmd, addCommentCmd} {
		cmd.Flags().String("topic", "", "topic ID")
		cmd.Flags().Int64("movie", 0, "movie ID")
	}
}
