package models

import "time"

// Comment is a comment on a post. Author fields are denormalized at write time.
type Comment struct {
	ID        string    `json:"id" bson:"_id"`
	PostID    string    `json:"post_id" bson:"post_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	UserName  string    `json:"user_name" bson:"user_name"`
	UserImage string    `json:"user_image,omitempty" bson:"user_image,omitempty"`
	Content   string    `json:"content" bson:"content"`
	Edited    bool      `json:"edited" bson:"edited"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// CommentReply has the shape of a Comment but hangs off a comment instead of a post.
type CommentReply struct {
	ID        string    `json:"id" bson:"_id"`
	CommentID string    `json:"comment_id" bson:"comment_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	UserName  string    `json:"user_name" bson:"user_name"`
	UserImage string    `json:"user_image,omitempty" bson:"user_image,omitempty"`
	Content   string    `json:"content" bson:"content"`
	Edited    bool      `json:"edited" bson:"edited"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment or reply
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// UpdateCommentRequest defines the request body for updating an existing comment or reply
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
