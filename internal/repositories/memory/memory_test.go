package memory

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"github.com/anonto42/skillshare/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionUniqueKey(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Reactions

	first := &models.Reaction{TargetID: "p1", TargetKind: models.TargetPost, UserID: "u1"}
	require.NoError(t, repo.CreateReaction(ctx, first))
	assert.NotEmpty(t, first.ID)

	err := repo.CreateReaction(ctx, &models.Reaction{TargetID: "p1", TargetKind: models.TargetPost, UserID: "u1"})
	assert.True(t, apperrors.IsConflict(err))

	// same id under the other kind is a different key
	require.NoError(t, repo.CreateReaction(ctx, &models.Reaction{TargetID: "p1", TargetKind: models.TargetComment, UserID: "u1"}))

	count, err := repo.GetReactionsCount(ctx, "p1", models.TargetPost)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestFollowDeleteMissing(t *testing.T) {
	repo := NewStore().Follows
	err := repo.DeleteFollow(context.Background(), "a", "b")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestNotificationsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Notifications
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, content := range []string{"first", "second", "third"} {
		require.NoError(t, repo.CreateNotification(ctx, &models.Notification{
			RecipientID: "u1",
			Content:     content,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	all, err := repo.GetByRecipientID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Content)
	assert.Equal(t, "first", all[2].Content)

	require.NoError(t, repo.MarkAsRead(ctx, all[1].ID))
	unread, err := repo.GetUnreadByRecipientID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, unread, 2)
	assert.True(t, apperrors.IsNotFound(repo.MarkAsRead(ctx, "missing")))
}

func TestPostCopiesAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Posts

	post := &models.Post{UserID: "u1", Description: "hello", ImageURLs: []string{"https://a/1.png"}, MediaType: models.MediaImage}
	require.NoError(t, repo.CreatePost(ctx, post))

	got, err := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	got.ImageURLs[0] = "https://changed"

	again, err := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://a/1.png", again.ImageURLs[0])

	posts, err := repo.GetPostsByIDs(ctx, []string{post.ID, "gone"})
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestUserEmailUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users

	require.NoError(t, repo.UpsertUser(ctx, &models.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}))
	// re-saving the same profile keeps its own email
	require.NoError(t, repo.UpsertUser(ctx, &models.User{ID: "u1", Name: "Ada L", Email: "ada@example.com"}))

	err := repo.UpsertUser(ctx, &models.User{ID: "u2", Name: "Grace", Email: "ada@example.com"})
	assert.True(t, apperrors.IsAlreadyExists(err))

	_, err = repo.GetUserByID(ctx, "u2")
	assert.True(t, apperrors.IsNotFound(err))
}
