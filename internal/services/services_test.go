package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/anonto42/skillshare/backend/internal/metrics"
	"github.com/anonto42/skillshare/backend/internal/models"
	"github.com/anonto42/skillshare/backend/internal/repositories/memory"
	"github.com/anonto42/skillshare/backend/pkg/logger"
)

type fixture struct {
	store         *memory.Store
	metrics       *metrics.Metrics
	notifications *NotificationService
	follows       *FollowService
	reactions     *ReactionService
	comments      *CommentService
	bookmarks     *BookmarkService
}

func newFixture(t *testing.T, reactionOpts ReactionOptions, commentOpts CommentOptions) *fixture {
	t.Helper()
	store := memory.NewStore()
	m := metrics.NewNop()
	log := logger.NewNop()

	notifications := NewNotificationService(store.Notifications, store.Users, m, log)
	return &fixture{
		store:         store,
		metrics:       m,
		notifications: notifications,
		follows:       NewFollowService(store.Follows, store.Users, notifications, m, log),
		reactions:     NewReactionService(store.Reactions, store.Comments, store.Users, store.Posts, notifications, m, log, reactionOpts),
		comments:      NewCommentService(store.Comments, store.Replies, store.Users, store.Posts, notifications, m, log, commentOpts),
		bookmarks:     NewBookmarkService(store.SavedPosts, store.SharedPosts, store.Users, store.Posts, m, log),
	}
}

func (f *fixture) user(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, f.store.Users.UpsertUser(context.Background(), &models.User{
		ID:       id,
		Name:     name,
		Email:    id + "@example.com",
		ImageURL: "https://cdn.example.com/" + id + ".png",
	}))
}

func (f *fixture) post(t *testing.T, ownerID string, images ...string) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:      ownerID,
		Description: "sunset over the bay",
		ImageURLs:   images,
		MediaType:   models.MediaImage,
	}
	require.NoError(t, f.store.Posts.CreatePost(context.Background(), post))
	return post
}

func (f *fixture) inbox(t *testing.T, userID string) []models.Notification {
	t.Helper()
	list, err := f.notifications.ListAll(context.Background(), userID)
	require.NoError(t, err)
	return list
}

// steppingClock returns a clock that advances one second per call.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}
