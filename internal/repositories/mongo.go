package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	FollowsCollection       = "follows"
	ReactionsCollection     = "likes"
	CommentsCollection      = "comments"
	RepliesCollection       = "comment_replies"
	SavedPostsCollection    = "saved_posts"
	SharedPostsCollection   = "shared_posts"
	NotificationsCollection = "notifications"
	PostsCollection         = "posts"
)

var (
	sortOldestFirst = bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}
	sortNewestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
)

func newObjectID() string {
	return primitive.NewObjectID().Hex()
}

// translateMongoErr maps driver errors onto the apperrors kinds.
func translateMongoErr(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperrors.NotFound("%s not found", entity)
	case mongo.IsDuplicateKeyError(err):
		return apperrors.Conflict(err, "%s already exists", entity)
	default:
		return apperrors.Upstream(err, "%s store call failed", entity)
	}
}

// EnsureIndexes declares the compound unique keys the toggle and graph
// operations depend on, plus the lookup indexes used by list queries.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(name string) *options.IndexOptions {
		return options.Index().SetUnique(true).SetName(name)
	}
	named := func(name string) *options.IndexOptions {
		return options.Index().SetName(name)
	}

	indexes := map[string][]mongo.IndexModel{
		FollowsCollection: {
			{Keys: bson.D{{Key: "follower_id", Value: 1}, {Key: "following_id", Value: 1}}, Options: unique("idx_follower_following")},
			{Keys: bson.D{{Key: "following_id", Value: 1}}, Options: named("idx_following")},
		},
		ReactionsCollection: {
			{Keys: bson.D{{Key: "target_id", Value: 1}, {Key: "target_kind", Value: 1}, {Key: "user_id", Value: 1}}, Options: unique("idx_target_user_reaction")},
		},
		CommentsCollection: {
			{Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}}, Options: named("idx_post_comments")},
		},
		RepliesCollection: {
			{Keys: bson.D{{Key: "comment_id", Value: 1}, {Key: "created_at", Value: 1}}, Options: named("idx_comment_replies")},
		},
		SavedPostsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "post_id", Value: 1}}, Options: unique("idx_user_post_save")},
		},
		SharedPostsCollection: {
			{Keys: bson.D{{Key: "shared_to_user_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: named("idx_shared_to")},
		},
		NotificationsCollection: {
			{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "is_read", Value: 1}, {Key: "created_at", Value: -1}}, Options: named("idx_recipient_read")},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
