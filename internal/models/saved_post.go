package models

import "time"

// SavedPost is a bookmark flag, unique per (UserID, PostID).
type SavedPost struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	PostID    string    `json:"post_id" bson:"post_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
