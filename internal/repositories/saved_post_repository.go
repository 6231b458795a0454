package repositories

import (
	"context"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"github.com/anonto42/skillshare/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SavedPostRepository defines the interface for saved post operations
type SavedPostRepository interface {
	// SavePost returns a Conflict error when the post is already saved by the user.
	SavePost(ctx context.Context, savedPost *models.SavedPost) error
	FindSavedPost(ctx context.Context, userID, postID string) (*models.SavedPost, error)
	DeleteSavedPost(ctx context.Context, id string) error
	GetSavedPostsByUser(ctx context.Context, userID string) ([]models.SavedPost, error)
	GetSavedPostsCount(ctx context.Context, userID string) (int64, error)
}

// SharedPostRepository stores the append-only shared post inbox
type SharedPostRepository interface {
	CreateSharedPost(ctx context.Context, shared *models.SharedPost) error
	GetSharedWithUser(ctx context.Context, userID string) ([]models.SharedPost, error)
}

// MongoSavedPostRepository implements SavedPostRepository
type MongoSavedPostRepository struct {
	collection *mongo.Collection
}

var _ SavedPostRepository = (*MongoSavedPostRepository)(nil)

func NewMongoSavedPostRepository(db *mongo.Database) *MongoSavedPostRepository {
	return &MongoSavedPostRepository{collection: db.Collection(SavedPostsCollection)}
}

func (r *MongoSavedPostRepository) SavePost(ctx context.Context, savedPost *models.SavedPost) error {
	if savedPost.ID == "" {
		savedPost.ID = newObjectID()
	}
	_, err := r.collection.InsertOne(ctx, savedPost)
	return translateMongoErr(err, "saved post")
}

func (r *MongoSavedPostRepository) FindSavedPost(ctx context.Context, userID, postID string) (*models.SavedPost, error) {
	var saved models.SavedPost
	if err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "post_id": postID}).Decode(&saved); err != nil {
		return nil, translateMongoErr(err, "saved post")
	}
	return &saved, nil
}

func (r *MongoSavedPostRepository) DeleteSavedPost(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateMongoErr(err, "saved post")
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("saved post not found")
	}
	return nil
}

// GetSavedPostsByUser returns the user's bookmarks, most recently saved first
func (r *MongoSavedPostRepository) GetSavedPostsByUser(ctx context.Context, userID string) ([]models.SavedPost, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(sortNewestFirst))
	if err != nil {
		return nil, translateMongoErr(err, "saved post")
	}
	defer cursor.Close(ctx)

	saved := []models.SavedPost{}
	if err := cursor.All(ctx, &saved); err != nil {
		return nil, translateMongoErr(err, "saved post")
	}
	return saved, nil
}

func (r *MongoSavedPostRepository) GetSavedPostsCount(ctx context.Context, userID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	return count, translateMongoErr(err, "saved post")
}

// MongoSharedPostRepository implements SharedPostRepository
type MongoSharedPostRepository struct {
	collection *mongo.Collection
}

var _ SharedPostRepository = (*MongoSharedPostRepository)(nil)

func NewMongoSharedPostRepository(db *mongo.Database) *MongoSharedPostRepository {
	return &MongoSharedPostRepository{collection: db.Collection(SharedPostsCollection)}
}

func (r *MongoSharedPostRepository) CreateSharedPost(ctx context.Context, shared *models.SharedPost) error {
	if shared.ID == "" {
		shared.ID = newObjectID()
	}
	_, err := r.collection.InsertOne(ctx, shared)
	return translateMongoErr(err, "shared post")
}

func (r *MongoSharedPostRepository) GetSharedWithUser(ctx context.Context, userID string) ([]models.SharedPost, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"shared_to_user_id": userID}, options.Find().SetSort(sortNewestFirst))
	if err != nil {
		return nil, translateMongoErr(err, "shared post")
	}
	defer cursor.Close(ctx)

	shared := []models.SharedPost{}
	if err := cursor.All(ctx, &shared); err != nil {
		return nil, translateMongoErr(err, "shared post")
	}
	return shared, nil
}
