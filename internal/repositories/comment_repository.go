package repositories

import (
	"context"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"github.com/anonto42/skillshare/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	GetCommentsCount(ctx context.Context, postID string) (int64, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id string) error
}

// ReplyRepository defines the interface for comment reply data operations
type ReplyRepository interface {
	CreateReply(ctx context.Context, reply *models.CommentReply) error
	GetReplyByID(ctx context.Context, id string) (*models.CommentReply, error)
	GetRepliesByCommentID(ctx context.Context, commentID string) ([]models.CommentReply, error)
	GetRepliesCount(ctx context.Context, commentID string) (int64, error)
	UpdateReply(ctx context.Context, reply *models.CommentReply) error
	DeleteReply(ctx context.Context, id string) error
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

var _ CommentRepository = (*MongoCommentRepository)(nil)

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection(CommentsCollection)}
}

// CreateComment creates a new comment in MongoDB
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = newObjectID()
	}
	_, err := r.collection.InsertOne(ctx, comment)
	return translateMongoErr(err, "comment")
}

// GetCommentByID retrieves a comment by ID from MongoDB
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
		return nil, translateMongoErr(err, "comment")
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all comments for a specific post, oldest first
func (r *MongoCommentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"post_id": postID}, options.Find().SetSort(sortOldestFirst))
	if err != nil {
		return nil, translateMongoErr(err, "comment")
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, translateMongoErr(err, "comment")
	}
	return comments, nil
}

func (r *MongoCommentRepository) GetCommentsCount(ctx context.Context, postID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"post_id": postID})
	return count, translateMongoErr(err, "comment")
}

// UpdateComment replaces the content and edited flag of an existing comment
func (r *MongoCommentRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": comment.ID},
		bson.M{"$set": bson.M{"content": comment.Content, "edited": comment.Edited}},
	)
	if err != nil {
		return translateMongoErr(err, "comment")
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("comment not found")
	}
	return nil
}

// DeleteComment deletes a comment by ID. Replies are left in place.
func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateMongoErr(err, "comment")
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("comment not found")
	}
	return nil
}

// MongoReplyRepository implements ReplyRepository for MongoDB
type MongoReplyRepository struct {
	collection *mongo.Collection
}

var _ ReplyRepository = (*MongoReplyRepository)(nil)

func NewMongoReplyRepository(db *mongo.Database) *MongoReplyRepository {
	return &MongoReplyRepository{collection: db.Collection(RepliesCollection)}
}

func (r *MongoReplyRepository) CreateReply(ctx context.Context, reply *models.CommentReply) error {
	if reply.ID == "" {
		reply.ID = newObjectID()
	}
	_, err := r.collection.InsertOne(ctx, reply)
	return translateMongoErr(err, "reply")
}

func (r *MongoReplyRepository) GetReplyByID(ctx context.Context, id string) (*models.CommentReply, error) {
	var reply models.CommentReply
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reply); err != nil {
		return nil, translateMongoErr(err, "reply")
	}
	return &reply, nil
}

func (r *MongoReplyRepository) GetRepliesByCommentID(ctx context.Context, commentID string) ([]models.CommentReply, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"comment_id": commentID}, options.Find().SetSort(sortOldestFirst))
	if err != nil {
		return nil, translateMongoErr(err, "reply")
	}
	defer cursor.Close(ctx)

	replies := []models.CommentReply{}
	if err := cursor.All(ctx, &replies); err != nil {
		return nil, translateMongoErr(err, "reply")
	}
	return replies, nil
}

func (r *MongoReplyRepository) GetRepliesCount(ctx context.Context, commentID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"comment_id": commentID})
	return count, translateMongoErr(err, "reply")
}

func (r *MongoReplyRepository) UpdateReply(ctx context.Context, reply *models.CommentReply) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": reply.ID},
		bson.M{"$set": bson.M{"content": reply.Content, "edited": reply.Edited}},
	)
	if err != nil {
		return translateMongoErr(err, "reply")
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("reply not found")
	}
	return nil
}

func (r *MongoReplyRepository) DeleteReply(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateMongoErr(err, "reply")
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("reply not found")
	}
	return nil
}
