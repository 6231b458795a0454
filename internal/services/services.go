// Package services implements the engagement core: the follow graph, reaction
// toggles, comment threads, bookmarks and reshares, and the notification
// dispatcher they feed.
//
// Every store partitions records by an immutable composite key and the
// store's uniqueness constraint is the only mutual exclusion. Nothing here
// takes an in-process lock.
package services

import (
	"context"

	"github.com/anonto42/skillshare/backend/internal/models"
)

//go:generate go run go.uber.org/mock/mockgen -source=services.go -destination=mocks/mock.go -package=mocks

// UserDirectory resolves a user id to the display fields copied into records.
type UserDirectory interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// PostStore resolves posts owned by the media subsystem.
type PostStore interface {
	GetPostByID(ctx context.Context, postID string) (*models.Post, error)
	GetPostsByIDs(ctx context.Context, postIDs []string) ([]models.Post, error)
}

// Notifier creates notification records. postID may be empty.
type Notifier interface {
	Notify(ctx context.Context, recipientID, senderID string, kind models.NotificationType, content, postID string) (*models.Notification, error)
}
