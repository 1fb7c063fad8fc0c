package command

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/validation"
	feed "cineforo/internal/microservices/websocket"
	"cineforo/internal/reaction"

	"github.com/spf13/cobra"
)

var forumCmd = &cobra.Command{
	Use:   "forum",
	Short: "Forum topics",
	Long:  `Browse, open, create, like and follow discussion topics.`,
}

var listTopicsCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		if category != "" && !validation.IsValidCategory(category) {
			return fmt.Errorf("unknown category %q, pick one of: %s", category, strings.Join(validation.Categories, ", "))
		}

		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		topics, err := httpClient.ListTopics(category, page, pageSize)
		if err != nil {
			return err
		}
		printTopics(cmd.OutOrStdout(), topics)
		return nil
	},
}

var myTopicsCmd = &cobra.Command{
	Use:   "mine",
	Short: "List the topics you opened",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")

		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		topics, err := httpClient.MyTopics(page, 0)
		if err != nil {
			return err
		}
		printTopics(cmd.OutOrStdout(), topics)
		return nil
	},
}

var showTopicCmd = &cobra.Command{
	Use:   "show [topic-id]",
	Short: "Show a topic with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		topic, err := httpClient.GetTopic(args[0])
		if err != nil {
			return err
		}
		comments, err := httpClient.TopicComments(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printTopic(out, topic)
		fmt.Fprintln(out)
		printComments(out, comments)
		return nil
	},
}

var createTopicCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a new topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.CreateTopicRequest
		req.Title, _ = cmd.Flags().GetString("title")
		req.Description, _ = cmd.Flags().GetString("description")
		req.Category, _ = cmd.Flags().GetString("category")

		if err := validation.ValidateTopic(req.Title, req.Description, req.Category); err != nil {
			return err
		}

		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		topic, err := httpClient.CreateTopic(req)
		if err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Topic created: %s", topic.ID)
		return nil
	},
}

var deleteTopicCmd = &cobra.Command{
	Use:   "delete [topic-id]",
	Short: "Delete a topic you opened (moderators can delete any)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		if err := httpClient.DeleteTopic(args[0]); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Topic %s deleted", args[0])
		return nil
	},
}

var likeTopicCmd = &cobra.Command{
	Use:   "like [topic-id]",
	Short: "Like or unlike a topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		status, err := httpClient.TopicLikeStatus(args[0])
		if err != nil {
			return err
		}

		return renderToggle(cmd.OutOrStdout(), topicVote(status), reaction.Like, false, func() (voteView, error) {
			resp, err := httpClient.ToggleTopicLike(args[0])
			if err != nil {
				return voteView{}, err
			}
			return topicVote(resp), nil
		})
	},
}

var watchTopicCmd = &cobra.Command{
	Use:   "watch [topic-id]",
	Short: "Follow a topic's new comments and reactions live (Ctrl+C to stop)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		dimColor.Fprintf(out, "Watching topic %s...\n", args[0])
		return httpClient.WatchTopic(ctx, args[0], func(ev *feed.Event) {
			printEvent(out, ev)
		})
	},
}

func topicVote(resp *dto.LikeResponse) voteView {
	v := voteView{Counts: countsOf(resp.Likes, 0)}
	if resp.Liked {
		v.Reaction = reaction.Like
	}
	return v
}

func printEvent(w io.Writer, ev *feed.Event) {
	ts := ev.Timestamp.Local().Format("15:04:05")
	switch ev.Type {
	case feed.TypeCommentAdded:
		var c dto.CommentResponse
		if err := ev.Decode(&c); err == nil {
			headerColor.Fprintf(w, "[%s] %s: ", ts, c.AuthorName)
			fmt.Fprintln(w, c.Content)
		}
	case feed.TypeCommentDeleted:
		dimColor.Fprintf(w, "[%s] a comment was deleted\n", ts)
	case feed.TypeCommentReaction:
		var r struct {
			CommentID string `json:"comment_id"`
			Likes     int    `json:"likes"`
			Dislikes  int    `json:"dislikes"`
		}
		if err := ev.Decode(&r); err == nil {
			fmt.Fprintf(w, "[%s] comment %s %s\n", ts, r.CommentID, formatVote(voteView{Counts: countsOf(r.Likes, r.Dislikes)}, true))
		}
	case feed.TypeTopicLike:
		var l struct {
			Likes int `json:"likes"`
		}
		if err := ev.Decode(&l); err == nil {
			fmt.Fprintf(w, "[%s] topic %s\n", ts, formatVote(voteView{Counts: countsOf(l.Likes, 0)}, false))
		}
	case feed.TypeSystem:
		var s struct {
			Message string `json:"message"`
		}
		if err := ev.Decode(&s); err == nil {
			dimColor.Fprintf(w, "🔔 %s\n", s.Message)
		}
	}
}

func init() {
	forumCmd.AddCommand(listTopicsCmd, myTopicsCmd, showTopicCmd, createTopicCmd, deleteTopicCmd, likeTopicCmd, watchTopicCmd)

	listTopicsCmd.Flags().StringP("category", "c", "", "filter by category")
	listTopicsCmd.Flags().Int("page", 1, "result page")
	listTopicsCmd.Flags().Int("page-size", 20, "topics per page")
	myTopicsCmd.Flags().Int("page", 1, "result page")

	createTopicCmd.Flags().StringP("title", "t", "", "topic title")
	createTopicCmd.Flags().StringP("description", "d", "", "opening post")
	createTopicCmd.Flags().StringP("category", "c", validation.DefaultCategory, "category: "+strings.Join(validation.Categories, ", "))
	createTopicCmd.MarkFlagRequired("title")
	createTopicCmd.MarkFlagRequired("description")
}
