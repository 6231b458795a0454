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

type ReactionOptions struct {
	// NotifyOnLike sends a LIKE notification to the owner of the liked target.
	NotifyOnLike bool
}

// ReactionService toggles likes on posts and comments. Both target kinds share
// one store keyed by (target, kind, user).
type ReactionService struct {
	reactions repositories.ReactionRepository
	comments  repositories.CommentRepository
	users     UserDirectory
	posts     PostStore
	notify    bestEffortNotifier
	metrics   *metrics.Metrics
	logger    logger.Logger
	opts      ReactionOptions
	now       func() time.Time
}

func NewReactionService(
	reactions repositories.ReactionRepository,
	comments repositories.CommentRepository,
	users UserDirectory,
	posts PostStore,
	notifier Notifier,
	m *metrics.Metrics,
	log logger.Logger,
	opts ReactionOptions,
) *ReactionService {
	log = log.WithComponent("ReactionService")
	return &ReactionService{
		reactions: reactions,
		comments:  comments,
		users:     users,
		posts:     posts,
		notify:    bestEffortNotifier{notifier: notifier, metrics: m, logger: log},
		metrics:   m,
		logger:    log,
		opts:      opts,
		now:       time.Now,
	}
}

// ToggleReaction removes the caller's reaction on the target if there is one
// and returns nil. Otherwise it creates and returns a new reaction. A user that
// does not resolve fails with NotFound.
func (s *ReactionService) ToggleReaction(ctx context.Context, targetID string, kind models.TargetKind, userID string) (*models.Reaction, error) {
	if !kind.Valid() {
		return nil, apperrors.InvalidOperation("unknown target kind %q", kind)
	}
	key := models.ReactionKey{TargetID: targetID, TargetKind: kind, UserID: userID}

	reaction, created, err := runToggle(ctx, s.metrics, toggleOps[models.Reaction]{
		store: "reaction",
		find: func(ctx context.Context) (*models.Reaction, error) {
			return s.reactions.FindReaction(ctx, key)
		},
		id: func(r *models.Reaction) string { return r.ID },
		remove: func(ctx context.Context, id string) error {
			return s.reactions.DeleteReaction(ctx, id)
		},
		build: func(ctx context.Context) (*models.Reaction, error) {
			user, err := s.users.GetProfile(ctx, userID)
			if err != nil {
				return nil, err
			}
			return &models.Reaction{
				TargetID:   targetID,
				TargetKind: kind,
				UserID:     userID,
				UserName:   user.Name,
				CreatedAt:  s.now(),
			}, nil
		},
		create: func(ctx context.Context, r *models.Reaction) error {
			return s.reactions.CreateReaction(ctx, r)
		},
	})
	if err != nil {
		return nil, err
	}

	if created && s.opts.NotifyOnLike {
		s.notifyOwner(ctx, reaction)
	}
	return reaction, nil
}

func (s *ReactionService) notifyOwner(ctx context.Context, reaction *models.Reaction) {
	var ownerID, postID, content string
	switch reaction.TargetKind {
	case models.TargetPost:
		post, err := s.posts.GetPostByID(ctx, reaction.TargetID)
		if err != nil {
			s.logger.Warn("Skipping like notification", "key", reaction.Key().String(), "error", err)
			return
		}
		ownerID, postID = post.UserID, post.ID
		content = fmt.Sprintf("%s liked your post", reaction.UserName)
	case models.TargetComment:
		comment, err := s.comments.GetCommentByID(ctx, reaction.TargetID)
		if err != nil {
			s.logger.Warn("Skipping like notification", "key", reaction.Key().String(), "error", err)
			return
		}
		ownerID, postID = comment.UserID, comment.PostID
		content = fmt.Sprintf("%s liked your comment", reaction.UserName)
	}
	s.notify.notify(ctx, ownerID, reaction.UserID, models.NotificationLike, content, postID)
}

// ReactionsFor returns the reactions on a target in creation order.
func (s *ReactionService) ReactionsFor(ctx context.Context, targetID string, kind models.TargetKind) ([]models.Reaction, error) {
	if !kind.Valid() {
		return nil, apperrors.InvalidOperation("unknown target kind %q", kind)
	}
	return s.reactions.GetReactions(ctx, targetID, kind)
}

func (s *ReactionService) ReactionCount(ctx context.Context, targetID string, kind models.TargetKind) (int64, error) {
	if !kind.Valid() {
		return 0, apperrors.InvalidOperation("unknown target kind %q", kind)
	}
	return s.reactions.GetReactionsCount(ctx, targetID, kind)
}

func (s *ReactionService) HasReacted(ctx context.Context, targetID string, kind models.TargetKind, userID string) (bool, error) {
	_, err := s.reactions.FindReaction(ctx, models.ReactionKey{TargetID: targetID, TargetKind: kind, UserID: userID})
	switch {
	case err == nil:
		return true, nil
	case apperrors.IsNotFound(err):
		return false, nil
	default:
		return false, err
	}
}
