package services

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"github.com/anonto42/skillshare/backend/internal/metrics"
	"github.com/anonto42/skillshare/backend/internal/models"
	"github.com/anonto42/skillshare/backend/internal/repositories"
	"github.com/anonto42/skillshare/backend/pkg/logger"
)

// BookmarkService owns saved posts and reshared post snapshots.
type BookmarkService struct {
	saved   repositories.SavedPostRepository
	shared  repositories.SharedPostRepository
	users   UserDirectory
	posts   PostStore
	metrics *metrics.Metrics
	logger  logger.Logger
	now     func() time.Time
}

func NewBookmarkService(
	saved repositories.SavedPostRepository,
	shared repositories.SharedPostRepository,
	users UserDirectory,
	posts PostStore,
	m *metrics.Metrics,
	log logger.Logger,
) *BookmarkService {
	return &BookmarkService{
		saved:   saved,
		shared:  shared,
		users:   users,
		posts:   posts,
		metrics: m,
		logger:  log.WithComponent("BookmarkService"),
		now:     time.Now,
	}
}

// ToggleSavedPost saves the post for the user or unsaves it if it was saved.
// It returns nil after an unsave.
func (s *BookmarkService) ToggleSavedPost(ctx context.Context, userID, postID string) (*models.SavedPost, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	saved, _, err := runToggle(ctx, s.metrics, toggleOps[models.SavedPost]{
		store: "saved_post",
		find: func(ctx context.Context) (*models.SavedPost, error) {
			return s.saved.FindSavedPost(ctx, userID, postID)
		},
		id: func(sp *models.SavedPost) string { return sp.ID },
		remove: func(ctx context.Context, id string) error {
			return s.saved.DeleteSavedPost(ctx, id)
		},
		build: func(context.Context) (*models.SavedPost, error) {
			return &models.SavedPost{UserID: userID, PostID: postID, CreatedAt: s.now()}, nil
		},
		create: func(ctx context.Context, sp *models.SavedPost) error {
			return s.saved.SavePost(ctx, sp)
		},
	})
	return saved, err
}

func (s *BookmarkService) IsPostSaved(ctx context.Context, userID, postID string) (bool, error) {
	_, err := s.saved.FindSavedPost(ctx, userID, postID)
	switch {
	case err == nil:
		return true, nil
	case apperrors.IsNotFound(err):
		return false, nil
	default:
		return false, err
	}
}

func (s *BookmarkService) SavedPostCount(ctx context.Context, userID string) (int64, error) {
	return s.saved.GetSavedPostsCount(ctx, userID)
}

// ListSavedPosts returns the saved posts, most recently saved first. Posts
// deleted since they were saved are left out.
func (s *BookmarkService) ListSavedPosts(ctx context.Context, userID string) ([]models.Post, error) {
	saved, err := s.saved.GetSavedPostsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(saved) == 0 {
		return []models.Post{}, nil
	}

	ids := make([]string, 0, len(saved))
	for _, sp := range saved {
		ids = append(ids, sp.PostID)
	}
	found, err := s.posts.GetPostsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Post, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	posts := make([]models.Post, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			posts = append(posts, p)
		}
	}
	if dropped := len(ids) - len(posts); dropped > 0 {
		s.logger.Debug("Dropped saved posts that no longer exist", "user_id", userID, "count", dropped)
	}
	return posts, nil
}

// SharePost files a snapshot of the post, attributed to sharedByUserID, in the
// inbox of sharedToUserID. Sharing the same post twice creates two records.
func (s *BookmarkService) SharePost(ctx context.Context, originalPostID, sharedByUserID, sharedToUserID string) (*models.SharedPost, error) {
	var (
		post   *models.Post
		sender *models.UserProfile
		target *models.UserProfile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		post, err = s.posts.GetPostByID(gctx, originalPostID)
		return err
	})
	g.Go(func() (err error) {
		sender, err = s.users.GetProfile(gctx, sharedByUserID)
		return err
	})
	g.Go(func() (err error) {
		target, err = s.users.GetProfile(gctx, sharedToUserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	shared := &models.SharedPost{
		OriginalPostID:    post.ID,
		SharedByUserID:    sharedByUserID,
		SharedByUserName:  sender.Name,
		SharedByUserImage: sender.ImageURL,
		SharedToUserID:    sharedToUserID,
		SharedToUserName:  target.Name,
		Description:       post.Description,
		ImageURLs:         slices.Clone(post.ImageURLs),
		VideoURL:          post.VideoURL,
		MediaType:         models.NormalizeMediaType(post.MediaType),
		CreatedAt:         s.now(),
	}
	if err := s.shared.CreateSharedPost(ctx, shared); err != nil {
		return nil, err
	}
	return shared, nil
}

// ListSharedWith returns the snapshots shared to the user, newest first.
func (s *BookmarkService) ListSharedWith(ctx context.Context, userID string) ([]models.SharedPost, error) {
	return s.shared.GetSharedWithUser(ctx, userID)
}
