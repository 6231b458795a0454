package models

import "time"

type MediaType string

const (
	MediaImage MediaType = "IMAGE"
	MediaVideo MediaType = "VIDEO"
)

// NormalizeMediaType folds anything that is not IMAGE into VIDEO.
func NormalizeMediaType(t MediaType) MediaType {
	if t == MediaImage {
		return MediaImage
	}
	return MediaVideo
}

// Post represents a social media post stored in MongoDB
type Post struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"user_id" bson:"user_id"` // owner
	Description string    `json:"description" bson:"description"`
	ImageURLs   []string  `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	VideoURL    string    `json:"video_url,omitempty" bson:"video_url,omitempty"`
	MediaType   MediaType `json:"media_type" bson:"media_type"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Description string   `json:"description" validate:"required,min=1,max=2000"`
	ImageURLs   []string `json:"image_urls,omitempty" validate:"omitempty,max=3,dive,url"`
	VideoURL    string   `json:"video_url,omitempty" validate:"omitempty,url"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Description string   `json:"description,omitempty" validate:"omitempty,min=1,max=2000"`
	ImageURLs   []string `json:"image_urls,omitempty" validate:"omitempty,max=3,dive,url"`
	VideoURL    string   `json:"video_url,omitempty" validate:"omitempty,url"`
}
