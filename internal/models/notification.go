package models

import "time"

type NotificationType string

const (
	NotificationFollow  NotificationType = "FOLLOW"
	NotificationComment NotificationType = "COMMENT"
	NotificationLike    NotificationType = "LIKE"
	NotificationReply   NotificationType = "REPLY"
)

// Notification is addressed to RecipientID. Sender fields are a snapshot taken
// at creation. IsRead only ever moves from false to true.
type Notification struct {
	ID             string           `json:"id" bson:"_id"`
	RecipientID    string           `json:"recipient_id" bson:"recipient_id"`
	SenderID       string           `json:"sender_id" bson:"sender_id"`
	SenderName     string           `json:"sender_name" bson:"sender_name"`
	SenderImageURL string           `json:"sender_image_url,omitempty" bson:"sender_image_url,omitempty"`
	Type           NotificationType `json:"type" bson:"type"`
	Content        string           `json:"content" bson:"content"`
	PostID         *string          `json:"post_id" bson:"post_id,omitempty"`
	IsRead         bool             `json:"is_read" bson:"is_read"`
	CreatedAt      time.Time        `json:"created_at" bson:"created_at"`
}
