package services

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"github.com/anonto42/skillshare/backend/internal/metrics"
	"github.com/anonto42/skillshare/backend/internal/models"
	"github.com/anonto42/skillshare/backend/internal/repositories"
	"github.com/anonto42/skillshare/backend/pkg/logger"
)

type FollowService struct {
	follows repositories.FollowRepository
	users   UserDirectory
	notify  bestEffortNotifier
	logger  logger.Logger
	now     func() time.Time
}

func NewFollowService(follows repositories.FollowRepository, users UserDirectory, notifier Notifier, m *metrics.Metrics, log logger.Logger) *FollowService {
	log = log.WithComponent("FollowService")
	return &FollowService{
		follows: follows,
		users:   users,
		notify:  bestEffortNotifier{notifier: notifier, metrics: m, logger: log},
		logger:  log,
		now:     time.Now,
	}
}

// Follow creates the edge followerID -> followingID and then notifies the
// followed user. A failed notification leaves the edge in place.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID string) (*models.Follow, error) {
	if followerID == followingID {
		return nil, apperrors.InvalidOperation("cannot follow yourself")
	}

	follow := &models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   s.now(),
	}
	if err := s.follows.CreateFollow(ctx, follow); err != nil {
		if apperrors.IsConflict(err) {
			return nil, apperrors.AlreadyExists("already following user %s", followingID)
		}
		return nil, err
	}

	follower, err := s.users.GetProfile(ctx, followerID)
	if err != nil {
		s.logger.Warn("Skipping follow notification", "follower_id", followerID, "error", err)
		return follow, nil
	}
	s.notify.notify(ctx, followingID, followerID, models.NotificationFollow,
		fmt.Sprintf("%s started following you", follower.Name), "")

	return follow, nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID string) error {
	if err := s.follows.DeleteFollow(ctx, followerID, followingID); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NotFound("not following user %s", followingID)
		}
		return err
	}
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.follows.IsFollowing(ctx, followerID, followingID)
}

func (s *FollowService) FollowerCount(ctx context.Context, userID string) (int64, error) {
	return s.follows.GetFollowersCount(ctx, userID)
}

func (s *FollowService) FollowingCount(ctx context.Context, userID string) (int64, error) {
	return s.follows.GetFollowingCount(ctx, userID)
}
