package command

import (
	"fmt"
	"io"

	"cineforo/internal/reaction"
)

// voteView is the reaction state a command shows for a topic or comment
type voteView struct {
	Reaction reaction.Kind
	Counts   reaction.Counts
}

func countsOf(likes, dislikes int) reaction.Counts {
	return reaction.Counts{Likes: likes, Dislikes: dislikes}
}

// predictVote applies the toggle locally so the result can be shown before the server answers
func predictVote(current voteView, desired reaction.Kind) voteView {
	out := reaction.Toggle(current.Reaction, desired, current.Counts)
	return voteView{Reaction: out.Reaction, Counts: out.Counts}
}

func formatVote(v voteView, withDislikes bool) string {
	likes := likeColor.Sprintf("👍 %d", v.Counts.Likes)
	if v.Reaction == reaction.Like {
		likes = likedColor.Sprintf("👍 %d*", v.Counts.Likes)
	}
	if !withDislikes {
		return likes
	}
	dislikes := dislikeColor.Sprintf("👎 %d", v.Counts.Dislikes)
	if v.Reaction == reaction.Dislike {
		dislikes = dislikedColor.Sprintf("👎 %d*", v.Counts.Dislikes)
	}
	return likes + "  " + dislikes
}

// renderToggle prints the optimistic state, runs apply and reconciles with what the server returned.
// On failure the previous state is shown again and the error returned.
func renderToggle(w io.Writer, current voteView, desired reaction.Kind, withDislikes bool, apply func() (voteView, error)) error {
	predicted := predictVote(current, desired)
	dimColor.Fprintf(w, "… %s\n", formatVote(predicted, withDislikes))

	confirmed, err := apply()
	if err != nil {
		fmt.Fprintf(w, "↺ %s\n", formatVote(current, withDislikes))
		return err
	}
	if confirmed != predicted {
		fmt.Fprintf(w, "↻ %s\n", formatVote(confirmed, withDislikes))
		return nil
	}
	success(w, "%s", formatVote(confirmed, withDislikes))
	return nil
}
