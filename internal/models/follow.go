package models

import "time"

// Follow is a directed edge: FollowerID follows FollowingID.
// Unique per (FollowerID, FollowingID) and never self-referential.
type Follow struct {
	ID          string    `json:"id" bson:"_id"`
	FollowerID  string    `json:"follower_id" bson:"follower_id"`
	FollowingID string    `json:"following_id" bson:"following_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// FollowStatus is returned by the follow status endpoint
type FollowStatus struct {
	FollowerID  string `json:"follower_id"`
	FollowingID string `json:"following_id"`
	Following   bool   `json:"following"`
}
