package models

import (
	"fmt"
	"time"
)

// TargetKind discriminates what a reaction applies to. Both kinds share one collection.
type TargetKind string

const (
	TargetPost    TargetKind = "POST"
	TargetComment TargetKind = "COMMENT"
)

func (k TargetKind) Valid() bool {
	return k == TargetPost || k == TargetComment
}

// Reaction is a like on a post or a comment. UserName is a snapshot taken at
// creation and is not updated when the profile changes.
type Reaction struct {
	ID         string     `json:"id" bson:"_id"`
	TargetID   string     `json:"target_id" bson:"target_id"`
	TargetKind TargetKind `json:"target_kind" bson:"target_kind"`
	UserID     string     `json:"user_id" bson:"user_id"`
	UserName   string     `json:"user_name" bson:"user_name"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
}

// ReactionKey is the uniqueness key of a reaction.
type ReactionKey struct {
	TargetID   string
	TargetKind TargetKind
	UserID     string
}

func (r *Reaction) Key() ReactionKey {
	return ReactionKey{TargetID: r.TargetID, TargetKind: r.TargetKind, UserID: r.UserID}
}

func (k ReactionKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.TargetKind, k.TargetID, k.UserID)
}

// ToggleReactionResponse is the body returned by a like toggle
type ToggleReactionResponse struct {
	Reacted  bool      `json:"reacted"`
	Reaction *Reaction `json:"reaction,omitempty"`
}
