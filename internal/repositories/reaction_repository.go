package repositories

import (
	"context"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"github.com/anonto42/skillshare/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReactionRepository stores post likes and comment likes in one collection,
// keyed by (target_id, target_kind, user_id).
type ReactionRepository interface {
	// CreateReaction returns a Conflict error when the key is already taken.
	CreateReaction(ctx context.Context, reaction *models.Reaction) error
	FindReaction(ctx context.Context, key models.ReactionKey) (*models.Reaction, error)
	DeleteReaction(ctx context.Context, id string) error
	GetReactions(ctx context.Context, targetID string, kind models.TargetKind) ([]models.Reaction, error)
	GetReactionsCount(ctx context.Context, targetID string, kind models.TargetKind) (int64, error)
}

// MongoReactionRepository implements ReactionRepository for MongoDB
type MongoReactionRepository struct {
	collection *mongo.Collection
}

var _ ReactionRepository = (*MongoReactionRepository)(nil)

func NewMongoReactionRepository(db *mongo.Database) *MongoReactionRepository {
	return &MongoReactionRepository{collection: db.Collection(ReactionsCollection)}
}

func (r *MongoReactionRepository) CreateReaction(ctx context.Context, reaction *models.Reaction) error {
	if reaction.ID == "" {
		reaction.ID = newObjectID()
	}
	_, err := r.collection.InsertOne(ctx, reaction)
	return translateMongoErr(err, "reaction")
}

func (r *MongoReactionRepository) FindReaction(ctx context.Context, key models.ReactionKey) (*models.Reaction, error) {
	var reaction models.Reaction
	filter := bson.M{"target_id": key.TargetID, "target_kind": key.TargetKind, "user_id": key.UserID}
	if err := r.collection.FindOne(ctx, filter).Decode(&reaction); err != nil {
		return nil, translateMongoErr(err, "reaction")
	}
	return &reaction, nil
}

func (r *MongoReactionRepository) DeleteReaction(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateMongoErr(err, "reaction")
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("reaction not found")
	}
	return nil
}

// GetReactions returns reactions in creation order
func (r *MongoReactionRepository) GetReactions(ctx context.Context, targetID string, kind models.TargetKind) ([]models.Reaction, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"target_id": targetID, "target_kind": kind},
		options.Find().SetSort(sortOldestFirst),
	)
	if err != nil {
		return nil, translateMongoErr(err, "reaction")
	}
	defer cursor.Close(ctx)

	reactions := []models.Reaction{}
	if err := cursor.All(ctx, &reactions); err != nil {
		return nil, translateMongoErr(err, "reaction")
	}
	return reactions, nil
}

func (r *MongoReactionRepository) GetReactionsCount(ctx context.Context, targetID string, kind models.TargetKind) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"target_id": targetID, "target_kind": kind})
	return count, translateMongoErr(err, "reaction")
}
