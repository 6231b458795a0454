package models

import "time"

// SharedPost is an append-only snapshot of a post sent from one user to another.
// Edits to the original post never reach an existing snapshot.
type SharedPost struct {
	ID                string    `json:"id" bson:"_id"`
	OriginalPostID    string    `json:"original_post_id" bson:"original_post_id"`
	SharedByUserID    string    `json:"shared_by_user_id" bson:"shared_by_user_id"`
	SharedByUserName  string    `json:"shared_by_user_name" bson:"shared_by_user_name"`
	SharedByUserImage string    `json:"shared_by_user_image,omitempty" bson:"shared_by_user_image,omitempty"`
	SharedToUserID    string    `json:"shared_to_user_id" bson:"shared_to_user_id"`
	SharedToUserName  string    `json:"shared_to_user_name" bson:"shared_to_user_name"`
	Description       string    `json:"description" bson:"description"`
	ImageURLs         []string  `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	VideoURL          string    `json:"video_url,omitempty" bson:"video_url,omitempty"`
	MediaType         MediaType `json:"media_type" bson:"media_type"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
}

// SharePostRequest defines the request body for sharing a post with another user
type SharePostRequest struct {
	ToUserID string `json:"to_user_id" validate:"required"`
}
