package repositories

import (
	"context"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"github.com/anonto42/skillshare/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetByRecipientID(ctx context.Context, recipientID string) ([]models.Notification, error)
	GetUnreadByRecipientID(ctx context.Context, recipientID string) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int64, error)
	// MarkAsRead returns NotFound when no notification has the id.
	MarkAsRead(ctx context.Context, notificationID string) error
}

type mongoNotificationRepository struct {
	collection *mongo.Collection
}

func NewMongoNotificationRepository(db *mongo.Database) NotificationRepository {
	return &mongoNotificationRepository{collection: db.Collection(NotificationsCollection)}
}

func (r *mongoNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = newObjectID()
	}
	_, err := r.collection.InsertOne(ctx, notification)
	return translateMongoErr(err, "notification")
}

func (r *mongoNotificationRepository) GetByRecipientID(ctx context.Context, recipientID string) ([]models.Notification, error) {
	return r.find(ctx, bson.M{"recipient_id": recipientID})
}

func (r *mongoNotificationRepository) GetUnreadByRecipientID(ctx context.Context, recipientID string) ([]models.Notification, error) {
	return r.find(ctx, bson.M{"recipient_id": recipientID, "is_read": false})
}

func (r *mongoNotificationRepository) find(ctx context.Context, filter bson.M) ([]models.Notification, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(sortNewestFirst))
	if err != nil {
		return nil, translateMongoErr(err, "notification")
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, translateMongoErr(err, "notification")
	}
	return notifications, nil
}

func (r *mongoNotificationRepository) GetUnreadCount(ctx context.Context, recipientID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "is_read": false})
	return count, translateMongoErr(err, "notification")
}

func (r *mongoNotificationRepository) MarkAsRead(ctx context.Context, notificationID string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": notificationID}, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return translateMongoErr(err, "notification")
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("notification not found")
	}
	return nil
}
