package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// Reaction is one user's like or dislike mark on a photo. Like and dislike are
// independent axes: the same user may hold both on the same photo, but at most
// one row per (photo, user, kind) exists.
type Reaction struct {
	ID        uuid.UUID    `json:"id" db:"reaction_id"`
	PhotoID   uuid.UUID    `json:"photo_id" db:"photo_id"`
	UserName  string       `json:"user_name" db:"user_name"`
	Kind      ReactionKind `json:"kind" db:"kind"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// ToggleResult reports the state after a toggle: whether the caller's mark is
// now present, and the photo's counter for that kind.
type ToggleResult struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

type ReactionStatus struct {
	Liked    bool `json:"liked"`
	Disliked bool `json:"disliked"`
}

type ReactionCounts struct {
	LikeCount    int `json:"like_count"`
	DislikeCount int `json:"dislike_count"`
}
