package reaction

import (
	"errors"
	"strings"
)

// Kind is a user's reaction on a topic or comment.
type Kind string

const (
	None    Kind = ""
	Like    Kind = "like"
	Dislike Kind = "dislike"
)

var ErrInvalidKind = errors.New("reaction must be 'like' or 'dislike'")

// ParseKind accepts "like" or "dislike", case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Like:
		return Like, nil
	case Dislike:
		return Dislike, nil
	}
	return None, ErrInvalidKind
}

// Action is the write needed to move from the current reaction to the next one.
type Action string

const (
	ActionInsert  Action = "insert"
	ActionReplace Action = "replace"
	ActionRemove  Action = "remove"
)

type Counts struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

type Outcome struct {
	Action   Action
	Reaction Kind // reaction held by the user afterwards, None when removed
	Counts   Counts
}

// Toggle decides what happens when a user holding current asks for desired.
// Same reaction removes it, a different one replaces it, none inserts it.
// Counters are clamped at zero.
func Toggle(current, desired Kind, counts Counts) Outcome {
	switch {
	case current == desired:
		counts = counts.add(desired, -1)
		return Outcome{Action: ActionRemove, Reaction: None, Counts: counts}
	case current != None:
		counts = counts.add(current, -1).add(desired, 1)
		return Outcome{Action: ActionReplace, Reaction: desired, Counts: counts}
	default:
		counts = counts.add(desired, 1)
		return Outcome{Action: ActionInsert, Reaction: desired, Counts: counts}
	}
}

func (c Counts) add(k Kind, delta int) Counts {
	switch k {
	case Like:
		c.Likes = max(c.Likes+delta, 0)
	case Dislike:
		c.Dislikes = max(c.Dislikes+delta, 0)
	}
	return c
}
