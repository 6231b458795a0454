package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"github.com/anonto42/skillshare/backend/internal/metrics"
	"github.com/anonto42/skillshare/backend/internal/models"
	"github.com/anonto42/skillshare/backend/internal/repositories/memory"
	"github.com/anonto42/skillshare/backend/internal/services/mocks"
	"github.com/anonto42/skillshare/backend/pkg/logger"
)

func TestToggleSavedPost(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, ReactionOptions{}, CommentOptions{})
	f.user(t, "u1", "Ada")
	post := f.post(t, "u1")

	saved, err := f.bookmarks.ToggleSavedPost(ctx, "u1", post.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, post.ID, saved.PostID)

	ok, err := f.bookmarks.IsPostSaved(ctx, "u1", post.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	saved, err = f.bookmarks.ToggleSavedPost(ctx, "u1", post.ID)
	require.NoError(t, err)
	assert.Nil(t, saved)

	count, err := f.bookmarks.SavedPostCount(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestToggleSavedPostUnknownPost(t *testing.T) {
	f := newFixture(t, ReactionOptions{}, CommentOptions{})
	_, err := f.bookmarks.ToggleSavedPost(context.Background(), "u1", "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListSavedPostsDropsDeletedPosts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, ReactionOptions{}, CommentOptions{})
	f.bookmarks.now = steppingClock()
	f.user(t, "u1", "Ada")
	first := f.post(t, "u1")
	gone := f.post(t, "u1")
	last := f.post(t, "u1")

	for _, p := range []*models.Post{first, gone, last} {
		_, err := f.bookmarks.ToggleSavedPost(ctx, "u1", p.ID)
		require.NoError(t, err)
	}
	require.NoError(t, f.store.Posts.DeletePost(ctx, gone.ID))

	posts, err := f.bookmarks.ListSavedPosts(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, last.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)

	// the flag itself survives the post
	count, err := f.bookmarks.SavedPostCount(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestListSavedPostsEmpty(t *testing.T) {
	f := newFixture(t, ReactionOptions{}, CommentOptions{})
	posts, err := f.bookmarks.ListSavedPosts(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestShareScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, ReactionOptions{}, CommentOptions{})
	f.user(t, "u1", "Ada")
	f.user(t, "u2", "Grace")
	f.user(t, "u3", "Linus")
	post := f.post(t, "u3", "https://cdn.example.com/a.jpg")

	first, err := f.bookmarks.SharePost(ctx, post.ID, "u1", "u2")
	require.NoError(t, err)
	second, err := f.bookmarks.SharePost(ctx, post.ID, "u1", "u2")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "Ada", first.SharedByUserName)
	assert.Equal(t, "Grace", first.SharedToUserName)
	assert.Equal(t, models.MediaImage, first.MediaType)

	post.Description = "edited later"
	post.ImageURLs = []string{"https://cdn.example.com/b.jpg"}
	require.NoError(t, f.store.Posts.UpdatePost(ctx, post))

	inbox, err := f.bookmarks.ListSharedWith(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	for _, shared := range inbox {
		assert.Equal(t, post.ID, shared.OriginalPostID)
		assert.Equal(t, "sunset over the bay", shared.Description)
		assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, shared.ImageURLs)
	}

	others, err := f.bookmarks.ListSharedWith(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestSharePostResolvesAllIDs(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := memory.NewStore()

	posts := mocks.NewMockPostStore(ctrl)
	posts.EXPECT().GetPostByID(gomock.Any(), "p1").Return(&models.Post{ID: "p1", UserID: "u3"}, nil)
	users := mocks.NewMockUserDirectory(ctrl)
	users.EXPECT().GetProfile(gomock.Any(), "u1").Return(&models.UserProfile{ID: "u1", Name: "Ada"}, nil).AnyTimes()
	users.EXPECT().GetProfile(gomock.Any(), "ghost").Return(nil, apperrors.NotFound("user not found"))

	svc := NewBookmarkService(store.SavedPosts, store.SharedPosts, users, posts, metrics.NewNop(), logger.NewNop())
	_, err := svc.SharePost(ctx, "p1", "u1", "ghost")
	assert.True(t, apperrors.IsNotFound(err))

	shared, err := svc.ListSharedWith(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, shared)
}
