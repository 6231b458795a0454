package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonto42/skillshare/backend/internal/handlers"
	"github.com/anonto42/skillshare/backend/internal/metrics"
	"github.com/anonto42/skillshare/backend/internal/middleware"
	"github.com/anonto42/skillshare/backend/internal/repositories/memory"
	"github.com/anonto42/skillshare/backend/internal/router"
	"github.com/anonto42/skillshare/backend/internal/services"
	"github.com/anonto42/skillshare/backend/pkg/logger"
)

const testSecret = "test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type testServer struct {
	e     *echo.Echo
	store *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	m := metrics.NewNop()
	log := logger.NewNop()

	notifications := services.NewNotificationService(store.Notifications, store.Users, m, log)
	h := router.Handlers{
		User:         handlers.NewUserHandler(store.Users),
		Post:         handlers.NewPostHandler(store.Posts),
		Follow:       handlers.NewFollowHandler(services.NewFollowService(store.Follows, store.Users, notifications, m, log)),
		Like:         handlers.NewLikeHandler(services.NewReactionService(store.Reactions, store.Comments, store.Users, store.Posts, notifications, m, log, services.ReactionOptions{})),
		Comment:      handlers.NewCommentHandler(services.NewCommentService(store.Comments, store.Replies, store.Users, store.Posts, notifications, m, log, services.CommentOptions{})),
		SavedPost:    handlers.NewSavedPostHandler(services.NewBookmarkService(store.SavedPosts, store.SharedPosts, store.Users, store.Posts, m, log)),
		Notification: handlers.NewNotificationHandler(notifications),
	}
	return &testServer{
		e:     router.New(h, middleware.JWTAuthMiddleware(testSecret, nil), log),
		store: store,
	}
}

func (s *testServer) do(t *testing.T, method, path, userID, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != "" {
		token, err := middleware.IssueToken(testSecret, userID, userID+"@example.com", time.Now())
		require.NoError(t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (s *testServer) signUp(t *testing.T, userID, name string) {
	t.Helper()
	rec, _ := s.do(t, http.MethodPut, "/api/v1/profile", userID,
		`{"name":"`+name+`","email":"`+userID+`@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func (s *testServer) createPost(t *testing.T, userID string) string {
	t.Helper()
	rec, env := s.do(t, http.MethodPost, "/api/v1/posts", userID,
		`{"description":"first light","image_urls":["https://cdn.example.com/a.jpg"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var post struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &post))
	return post.ID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec, _ := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	rec, _ := s.do(t, http.MethodGet, "/api/v1/notifications", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec = httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFollowEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.signUp(t, "u1", "Ada")
	s.signUp(t, "u2", "Grace")

	rec, _ := s.do(t, http.MethodPost, "/api/v1/users/u2/follow", "u1", "")
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, _ = s.do(t, http.MethodPost, "/api/v1/users/u2/follow", "u1", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/users/u1/follow", "u1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/api/v1/users/u2/followers/count", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":"u2","followers_count":1}`, string(env.Data))

	rec, env = s.do(t, http.MethodGet, "/api/v1/notifications/unread-count", "u2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":1}`, string(env.Data))

	rec, _ = s.do(t, http.MethodDelete, "/api/v1/users/u2/follow", "u1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/api/v1/users/u2/follow", "u1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/users/u2/follow/status", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"follower_id":"u1","following_id":"u2","following":false}`, string(env.Data))
}

func TestLikeToggleEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.signUp(t, "u1", "Ada")
	s.signUp(t, "u2", "Grace")
	postID := s.createPost(t, "u2")

	var toggled struct {
		Reacted bool `json:"reacted"`
	}
	rec, env := s.do(t, http.MethodPost, "/api/v1/posts/"+postID+"/likes/toggle", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &toggled))
	assert.True(t, toggled.Reacted)

	rec, env = s.do(t, http.MethodGet, "/api/v1/posts/"+postID+"/likes/count", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"target_id":"`+postID+`","target_kind":"POST","likes_count":1}`, string(env.Data))

	rec, env = s.do(t, http.MethodPost, "/api/v1/posts/"+postID+"/likes/toggle", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &toggled))
	assert.False(t, toggled.Reacted)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/posts/"+postID+"/likes/toggle", "ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommentOwnership(t *testing.T) {
	s := newTestServer(t)
	s.signUp(t, "u1", "Ada")
	s.signUp(t, "u2", "Grace")
	postID := s.createPost(t, "u2")

	rec, env := s.do(t, http.MethodPost, "/api/v1/posts/"+postID+"/comments", "u1", `{"content":"great shot"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var comment struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &comment))

	rec, _ = s.do(t, http.MethodPut, "/api/v1/comments/"+comment.ID, "u2", `{"content":"hijacked"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = s.do(t, http.MethodPut, "/api/v1/comments/"+comment.ID, "u1", `{"content":"great shot!"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated struct {
		Edited bool `json:"edited"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.True(t, updated.Edited)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/posts/"+postID+"/comments", "u1", `{"content":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/api/v1/comments/"+comment.ID, "u1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = s.do(t, http.MethodDelete, "/api/v1/comments/"+comment.ID, "u1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSaveAndShareEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.signUp(t, "u1", "Ada")
	s.signUp(t, "u2", "Grace")
	postID := s.createPost(t, "u2")

	rec, _ := s.do(t, http.MethodPost, "/api/v1/posts/missing/save/toggle", "u1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/posts/"+postID+"/save/toggle", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env := s.do(t, http.MethodGet, "/api/v1/saved-posts", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var saved []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, postID, saved[0].ID)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/posts/"+postID+"/share", "u1", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/posts/"+postID+"/share", "u2", `{"to_user_id":"u1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env = s.do(t, http.MethodGet, "/api/v1/shared-posts", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var shared []struct {
		OriginalPostID   string `json:"original_post_id"`
		SharedByUserName string `json:"shared_by_user_name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &shared))
	require.Len(t, shared, 1)
	assert.Equal(t, postID, shared[0].OriginalPostID)
	assert.Equal(t, "Grace", shared[0].SharedByUserName)
}

func TestNotificationEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.signUp(t, "u1", "Ada")
	s.signUp(t, "u2", "Grace")
	postID := s.createPost(t, "u2")

	rec, _ := s.do(t, http.MethodPost, "/api/v1/posts/"+postID+"/comments", "u1", `{"content":"one"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = s.do(t, http.MethodPost, "/api/v1/users/u2/follow", "u1", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/api/v1/notifications/unread", "u2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Notifications []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Notifications, 2)

	rec, _ = s.do(t, http.MethodPut, "/api/v1/notifications/"+page.Notifications[0].ID+"/read", "u2", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(t, http.MethodPut, "/api/v1/notifications/unknown/read", "u2", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/notifications/unread-count", "u2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":1}`, string(env.Data))

	rec, _ = s.do(t, http.MethodPut, "/api/v1/notifications/read-all", "u2", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/notifications/unread-count", "u2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":0}`, string(env.Data))

	rec, env = s.do(t, http.MethodGet, "/api/v1/notifications", "u2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Notifications, 2)
}

func TestProfileEmailTaken(t *testing.T) {
	s := newTestServer(t)
	s.signUp(t, "u1", "Ada")

	rec, _ := s.do(t, http.MethodPut, "/api/v1/profile", "u2", `{"name":"Grace","email":"u1@example.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// the owner can still re-save with the same email
	rec, _ = s.do(t, http.MethodPut, "/api/v1/profile", "u1", `{"name":"Ada L","email":"u1@example.com"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestNotificationPaging(t *testing.T) {
	s := newTestServer(t)
	s.signUp(t, "target", "Target")
	for _, id := range []string{"a1", "a2", "a3"} {
		s.signUp(t, id, "Fan "+id)
		rec, _ := s.do(t, http.MethodPost, "/api/v1/users/target/follow", id, "")
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	type page struct {
		Success bool `json:"success"`
		Data    struct {
			Notifications []json.RawMessage `json:"notifications"`
		} `json:"data"`
		Meta struct {
			CurrentPage int  `json:"currentPage"`
			TotalPages  int  `json:"totalPages"`
			TotalItems  int  `json:"totalItems"`
			HasNext     bool `json:"hasNextPage"`
			HasPrevious bool `json:"hasPreviousPage"`
		} `json:"meta"`
	}

	get := func(query string) page {
		rec, _ := s.do(t, http.MethodGet, "/api/v1/notifications"+query, "target", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var p page
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		return p
	}

	full := get("")
	assert.Len(t, full.Data.Notifications, 3)
	assert.Zero(t, full.Meta.TotalItems)

	second := get("?page=2&limit=2")
	assert.True(t, second.Success)
	assert.Len(t, second.Data.Notifications, 1)
	assert.Equal(t, 2, second.Meta.CurrentPage)
	assert.Equal(t, 2, second.Meta.TotalPages)
	assert.Equal(t, 3, second.Meta.TotalItems)
	assert.False(t, second.Meta.HasNext)
	assert.True(t, second.Meta.HasPrevious)

	beyond := get("?page=5&limit=2")
	assert.Empty(t, beyond.Data.Notifications)
}

func TestMarkReadEnvelope(t *testing.T) {
	s := newTestServer(t)
	s.signUp(t, "u1", "Ada")

	rec, env := s.do(t, http.MethodPut, "/api/v1/notifications/read-all", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `null`, string(env.Data))
}
