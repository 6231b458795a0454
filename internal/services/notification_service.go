package services

import (
	"context"
	"time"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"github.com/anonto42/skillshare/backend/internal/metrics"
	"github.com/anonto42/skillshare/backend/internal/models"
	"github.com/anonto42/skillshare/backend/internal/repositories"
	"github.com/anonto42/skillshare/backend/pkg/logger"
)

// NotificationService is the notification dispatcher.
type NotificationService struct {
	notifications repositories.NotificationRepository
	users         UserDirectory
	metrics       *metrics.Metrics
	logger        logger.Logger
	now           func() time.Time
}

var _ Notifier = (*NotificationService)(nil)

func NewNotificationService(repo repositories.NotificationRepository, users UserDirectory, m *metrics.Metrics, log logger.Logger) *NotificationService {
	return &NotificationService{
		notifications: repo,
		users:         users,
		metrics:       m,
		logger:        log.WithComponent("NotificationService"),
		now:           time.Now,
	}
}

// Notify stores an unread notification for recipientID. When the recipient is
// the sender nothing is stored and both return values are nil. The sender must
// resolve; the recipient is not checked.
func (s *NotificationService) Notify(ctx context.Context, recipientID, senderID string, kind models.NotificationType, content, postID string) (*models.Notification, error) {
	if recipientID == senderID {
		s.metrics.NotificationSuppressed(string(kind))
		return nil, nil
	}

	sender, err := s.users.GetProfile(ctx, senderID)
	if err != nil {
		return nil, err
	}

	notification := &models.Notification{
		RecipientID:    recipientID,
		SenderID:       senderID,
		SenderName:     sender.Name,
		SenderImageURL: sender.ImageURL,
		Type:           kind,
		Content:        content,
		IsRead:         false,
		CreatedAt:      s.now(),
	}
	if postID != "" {
		notification.PostID = &postID
	}

	if err := s.notifications.CreateNotification(ctx, notification); err != nil {
		return nil, err
	}
	s.metrics.NotificationCreated(string(kind))
	return notification, nil
}

// ListAll returns every notification of the recipient, newest first
func (s *NotificationService) ListAll(ctx context.Context, recipientID string) ([]models.Notification, error) {
	return s.notifications.GetByRecipientID(ctx, recipientID)
}

// ListUnread returns the unread notifications of the recipient, newest first
func (s *NotificationService) ListUnread(ctx context.Context, recipientID string) ([]models.Notification, error) {
	return s.notifications.GetUnreadByRecipientID(ctx, recipientID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.notifications.GetUnreadCount(ctx, recipientID)
}

// MarkRead is a no-op for unknown ids.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) error {
	if err := s.notifications.MarkAsRead(ctx, notificationID); err != nil && !apperrors.IsNotFound(err) {
		return err
	}
	return nil
}

// MarkAllRead marks the unread set as it was when the call started. It is not
// atomic: a notification created during the loop may stay unread.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID string) error {
	unread, err := s.notifications.GetUnreadByRecipientID(ctx, recipientID)
	if err != nil {
		return err
	}
	for _, n := range unread {
		if err := s.MarkRead(ctx, n.ID); err != nil {
			return err
		}
	}
	s.logger.Debug("Marked notifications read", "recipient_id", recipientID, "count", len(unread))
	return nil
}

// bestEffortNotifier runs notification side effects that must never fail the
// action that triggered them.
type bestEffortNotifier struct {
	notifier Notifier
	metrics  *metrics.Metrics
	logger   logger.Logger
}

func (b bestEffortNotifier) notify(ctx context.Context, recipientID, senderID string, kind models.NotificationType, content, postID string) {
	if _, err := b.notifier.Notify(ctx, recipientID, senderID, kind, content, postID); err != nil {
		b.metrics.NotificationFailed(string(kind))
		b.logger.Warn("Notification dropped",
			"type", kind,
			"recipient_id", recipientID,
			"sender_id", senderID,
			"error", err,
		)
	}
}
