package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
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

func TestFollowTwiceFailsWithAlreadyExists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, ReactionOptions{}, CommentOptions{})
	f.user(t, "u1", "Ada")
	f.user(t, "u2", "Grace")

	_, err := f.follows.Follow(ctx, "u1", "u2")
	require.NoError(t, err)

	_, err = f.follows.Follow(ctx, "u1", "u2")
	assert.True(t, apperrors.IsAlreadyExists(err), "got %v", err)

	// the reverse edge is independent
	_, err = f.follows.Follow(ctx, "u2", "u1")
	assert.NoError(t, err)
}

func TestFollowSelf(t *testing.T) {
	f := newFixture(t, ReactionOptions{}, CommentOptions{})
	for _, id := range []string{"u1", "", "ghost"} {
		_, err := f.follows.Follow(context.Background(), id, id)
		assert.True(t, apperrors.IsInvalidOperation(err), "Follow(%q, %q) = %v", id, id, err)
	}
}

func TestFollowUnfollowScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, ReactionOptions{}, CommentOptions{})
	f.user(t, "u1", "Ada")
	f.user(t, "u2", "Grace")

	following, err := f.follows.IsFollowing(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.False(t, following)

	_, err = f.follows.Follow(ctx, "u1", "u2")
	require.NoError(t, err)

	count, err := f.follows.FollowerCount(ctx, "u2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	count, err = f.follows.FollowingCount(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	following, err = f.follows.IsFollowing(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.True(t, following)

	inbox := f.inbox(t, "u2")
	require.Len(t, inbox, 1)
	assert.Equal(t, models.NotificationFollow, inbox[0].Type)
	assert.Equal(t, "u1", inbox[0].SenderID)
	assert.Equal(t, "Ada", inbox[0].SenderName)
	assert.Equal(t, "Ada started following you", inbox[0].Content)
	assert.Nil(t, inbox[0].PostID)
	assert.False(t, inbox[0].IsRead)

	require.NoError(t, f.follows.Unfollow(ctx, "u1", "u2"))

	count, err = f.follows.FollowerCount(ctx, "u2")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
	following, err = f.follows.IsFollowing(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.False(t, following)

	// unfollowing does not retract the notification
	assert.Len(t, f.inbox(t, "u2"), 1)
}

func TestUnfollowWithoutEdge(t *testing.T) {
	f := newFixture(t, ReactionOptions{}, CommentOptions{})
	err := f.follows.Unfollow(context.Background(), "u1", "u2")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFollowKeepsEdgeWhenNotificationFails(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := memory.NewStore()
	m := metrics.NewNop()
	require.NoError(t, store.Users.UpsertUser(ctx, &models.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}))

	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().
		Notify(gomock.Any(), "u2", "u1", models.NotificationFollow, "Ada started following you", "").
		Return(nil, apperrors.Upstream(errors.New("connection refused"), "insert notification"))

	svc := NewFollowService(store.Follows, store.Users, notifier, m, logger.NewNop())
	follow, err := svc.Follow(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.NotEmpty(t, follow.ID)

	following, err := svc.IsFollowing(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.True(t, following)

	expected := `
# HELP engagement_notifications_failed_total Notification side effects that failed and were swallowed.
# TYPE engagement_notifications_failed_total counter
engagement_notifications_failed_total{type="FOLLOW"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "engagement_notifications_failed_total"))
}

func TestFollowSkipsNotificationForUnknownFollower(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := memory.NewStore()

	users := mocks.NewMockUserDirectory(ctrl)
	users.EXPECT().GetProfile(gomock.Any(), "ghost").Return(nil, apperrors.NotFound("user not found"))
	notifier := mocks.NewMockNotifier(ctrl)

	svc := NewFollowService(store.Follows, users, notifier, metrics.NewNop(), logger.NewNop())
	_, err := svc.Follow(ctx, "ghost", "u2")
	require.NoError(t, err)

	count, err := svc.FollowerCount(ctx, "u2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
