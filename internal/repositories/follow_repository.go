package repositories

import (
	"context"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"github.com/anonto42/skillshare/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	// CreateFollow returns a Conflict error when the edge already exists.
	CreateFollow(ctx context.Context, follow *models.Follow) error
	DeleteFollow(ctx context.Context, followerID, followingID string) error
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	GetFollowersCount(ctx context.Context, userID string) (int64, error)
	GetFollowingCount(ctx context.Context, userID string) (int64, error)
}

// MongoFollowRepository implements FollowRepository for MongoDB
type MongoFollowRepository struct {
	collection *mongo.Collection
}

var _ FollowRepository = (*MongoFollowRepository)(nil)

// NewMongoFollowRepository creates a new MongoFollowRepository
func NewMongoFollowRepository(db *mongo.Database) *MongoFollowRepository {
	return &MongoFollowRepository{collection: db.Collection(FollowsCollection)}
}

func (r *MongoFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	if follow.ID == "" {
		follow.ID = newObjectID()
	}
	_, err := r.collection.InsertOne(ctx, follow)
	return translateMongoErr(err, "follow")
}

func (r *MongoFollowRepository) DeleteFollow(ctx context.Context, followerID, followingID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"follower_id": followerID, "following_id": followingID})
	if err != nil {
		return translateMongoErr(err, "follow")
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("follow relationship not found")
	}
	return nil
}

func (r *MongoFollowRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"follower_id": followerID, "following_id": followingID})
	if err != nil {
		return false, translateMongoErr(err, "follow")
	}
	return count > 0, nil
}

func (r *MongoFollowRepository) GetFollowersCount(ctx context.Context, userID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"following_id": userID})
	return count, translateMongoErr(err, "follow")
}

func (r *MongoFollowRepository) GetFollowingCount(ctx context.Context, userID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"follower_id": userID})
	return count, translateMongoErr(err, "follow")
}
