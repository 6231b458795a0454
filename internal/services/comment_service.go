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

type CommentOptions struct {
	// NotifyOnReply sends a REPLY notification to the comment author.
	// Replies are silent by default.
	NotifyOnReply bool
}

type CommentService struct {
	comments repositories.CommentRepository
	replies  repositories.ReplyRepository
	users    UserDirectory
	posts    PostStore
	notify   bestEffortNotifier
	logger   logger.Logger
	opts     CommentOptions
	now      func() time.Time
}

func NewCommentService(
	comments repositories.CommentRepository,
	replies repositories.ReplyRepository,
	users UserDirectory,
	posts PostStore,
	notifier Notifier,
	m *metrics.Metrics,
	log logger.Logger,
	opts CommentOptions,
) *CommentService {
	log = log.WithComponent("CommentService")
	return &CommentService{
		comments: comments,
		replies:  replies,
		users:    users,
		posts:    posts,
		notify:   bestEffortNotifier{notifier: notifier, metrics: m, logger: log},
		logger:   log,
		opts:     opts,
		now:      time.Now,
	}
}

// CreateComment stores a comment with the author's current name and avatar and
// then notifies the post owner.
func (s *CommentService) CreateComment(ctx context.Context, postID, userID, content string) (*models.Comment, error) {
	author, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:    postID,
		UserID:    userID,
		UserName:  author.Name,
		UserImage: author.ImageURL,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.notify.notify(ctx, post.UserID, userID, models.NotificationComment,
		fmt.Sprintf("%s commented on your post", author.Name), postID)

	return comment, nil
}

func (s *CommentService) GetComment(ctx context.Context, commentID string) (*models.Comment, error) {
	return s.comments.GetCommentByID(ctx, commentID)
}

// UpdateComment replaces the content and marks the comment edited, even when
// the content is unchanged.
func (s *CommentService) UpdateComment(ctx context.Context, commentID, content string) (*models.Comment, error) {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	comment.Content = content
	comment.Edited = true
	if err := s.comments.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment is idempotent. Replies under the comment are kept.
func (s *CommentService) DeleteComment(ctx context.Context, commentID string) error {
	if err := s.comments.DeleteComment(ctx, commentID); err != nil && !apperrors.IsNotFound(err) {
		return err
	}
	return nil
}

// ListComments returns the comments of a post in creation order.
func (s *CommentService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.comments.GetCommentsByPostID(ctx, postID)
}

func (s *CommentService) CommentCount(ctx context.Context, postID string) (int64, error) {
	return s.comments.GetCommentsCount(ctx, postID)
}

// CreateReply stores a reply under an existing comment. It only notifies the
// comment author when NotifyOnReply is set.
func (s *CommentService) CreateReply(ctx context.Context, commentID, userID, content string) (*models.CommentReply, error) {
	author, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	reply := &models.CommentReply{
		CommentID: commentID,
		UserID:    userID,
		UserName:  author.Name,
		UserImage: author.ImageURL,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.replies.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	if s.opts.NotifyOnReply {
		s.notify.notify(ctx, comment.UserID, userID, models.NotificationReply,
			fmt.Sprintf("%s replied to your comment", author.Name), comment.PostID)
	}
	return reply, nil
}

func (s *CommentService) GetReply(ctx context.Context, replyID string) (*models.CommentReply, error) {
	return s.replies.GetReplyByID(ctx, replyID)
}

func (s *CommentService) UpdateReply(ctx context.Context, replyID, content string) (*models.CommentReply, error) {
	reply, err := s.replies.GetReplyByID(ctx, replyID)
	if err != nil {
		return nil, err
	}
	reply.Content = content
	reply.Edited = true
	if err := s.replies.UpdateReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *CommentService) DeleteReply(ctx context.Context, replyID string) error {
	if err := s.replies.DeleteReply(ctx, replyID); err != nil && !apperrors.IsNotFound(err) {
		return err
	}
	return nil
}

func (s *CommentService) ListReplies(ctx context.Context, commentID string) ([]models.CommentReply, error) {
	return s.replies.GetRepliesByCommentID(ctx, commentID)
}

func (s *CommentService) ReplyCount(ctx context.Context, commentID string) (int64, error) {
	return s.replies.GetRepliesCount(ctx, commentID)
}
