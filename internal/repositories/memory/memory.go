// Package memory provides in-process implementations of the repository
// interfaces. They enforce the same uniqueness keys and orderings as the
// MongoDB collections and back STORE_DRIVER=memory as well as the tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"github.com/anonto42/skillshare/backend/internal/models"
	"github.com/anonto42/skillshare/backend/internal/repositories"
	"github.com/google/uuid"
)

// Store bundles one repository per collection.
type Store struct {
	Follows       *FollowRepository
	Reactions     *ReactionRepository
	Comments      *CommentRepository
	Replies       *ReplyRepository
	SavedPosts    *SavedPostRepository
	SharedPosts   *SharedPostRepository
	Notifications *NotificationRepository
	Posts         *PostRepository
	Users         *UserRepository
}

func NewStore() *Store {
	return &Store{
		Follows:       &FollowRepository{},
		Reactions:     &ReactionRepository{},
		Comments:      &CommentRepository{},
		Replies:       &ReplyRepository{},
		SavedPosts:    &SavedPostRepository{},
		SharedPosts:   &SharedPostRepository{},
		Notifications: &NotificationRepository{},
		Posts:         &PostRepository{byID: map[string]models.Post{}},
		Users:         &UserRepository{byID: map[string]models.User{}},
	}
}

var (
	_ repositories.FollowRepository       = (*FollowRepository)(nil)
	_ repositories.ReactionRepository     = (*ReactionRepository)(nil)
	_ repositories.CommentRepository      = (*CommentRepository)(nil)
	_ repositories.ReplyRepository        = (*ReplyRepository)(nil)
	_ repositories.SavedPostRepository    = (*SavedPostRepository)(nil)
	_ repositories.SharedPostRepository   = (*SharedPostRepository)(nil)
	_ repositories.NotificationRepository = (*NotificationRepository)(nil)
	_ repositories.PostRepository         = (*PostRepository)(nil)
	_ repositories.UserRepository         = (*UserRepository)(nil)
)

func newID() string {
	return uuid.NewString()
}

// newestFirst orders a slice that is held in insertion order.
func newestFirst[T any](items []T, createdAt func(T) time.Time) []T {
	out := slices.Clone(items)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b T) int {
		return createdAt(b).Compare(createdAt(a))
	})
	return out
}

func oldestFirst[T any](items []T, createdAt func(T) time.Time) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return createdAt(a).Compare(createdAt(b))
	})
	return out
}

type FollowRepository struct {
	mu    sync.RWMutex
	edges []models.Follow
}

func (r *FollowRepository) CreateFollow(_ context.Context, follow *models.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.edges {
		if e.FollowerID == follow.FollowerID && e.FollowingID == follow.FollowingID {
			return apperrors.Conflict(nil, "follow already exists")
		}
	}
	if follow.ID == "" {
		follow.ID = newID()
	}
	r.edges = append(r.edges, *follow)
	return nil
}

func (r *FollowRepository) DeleteFollow(_ context.Context, followerID, followingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.edges {
		if e.FollowerID == followerID && e.FollowingID == followingID {
			r.edges = slices.Delete(r.edges, i, i+1)
			return nil
		}
	}
	return apperrors.NotFound("follow relationship not found")
}

func (r *FollowRepository) IsFollowing(_ context.Context, followerID, followingID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.ContainsFunc(r.edges, func(e models.Follow) bool {
		return e.FollowerID == followerID && e.FollowingID == followingID
	}), nil
}

func (r *FollowRepository) GetFollowersCount(_ context.Context, userID string) (int64, error) {
	return r.count(func(e models.Follow) bool { return e.FollowingID == userID }), nil
}

func (r *FollowRepository) GetFollowingCount(_ context.Context, userID string) (int64, error) {
	return r.count(func(e models.Follow) bool { return e.FollowerID == userID }), nil
}

func (r *FollowRepository) count(match func(models.Follow) bool) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, e := range r.edges {
		if match(e) {
			n++
		}
	}
	return n
}

type ReactionRepository struct {
	mu        sync.RWMutex
	reactions []models.Reaction
}

func (r *ReactionRepository) CreateReaction(_ context.Context, reaction *models.Reaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reactions {
		if existing.Key() == reaction.Key() {
			return apperrors.Conflict(nil, "reaction %s already exists", reaction.Key())
		}
	}
	if reaction.ID == "" {
		reaction.ID = newID()
	}
	r.reactions = append(r.reactions, *reaction)
	return nil
}

func (r *ReactionRepository) FindReaction(_ context.Context, key models.ReactionKey) (*models.Reaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, existing := range r.reactions {
		if existing.Key() == key {
			found := existing
			return &found, nil
		}
	}
	return nil, apperrors.NotFound("reaction not found")
}

func (r *ReactionRepository) DeleteReaction(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.reactions {
		if existing.ID == id {
			r.reactions = slices.Delete(r.reactions, i, i+1)
			return nil
		}
	}
	return apperrors.NotFound("reaction not found")
}

func (r *ReactionRepository) GetReactions(_ context.Context, targetID string, kind models.TargetKind) ([]models.Reaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Reaction{}
	for _, existing := range r.reactions {
		if existing.TargetID == targetID && existing.TargetKind == kind {
			out = append(out, existing)
		}
	}
	return oldestFirst(out, func(x models.Reaction) time.Time { return x.CreatedAt }), nil
}

func (r *ReactionRepository) GetReactionsCount(ctx context.Context, targetID string, kind models.TargetKind) (int64, error) {
	reactions, err := r.GetReactions(ctx, targetID, kind)
	return int64(len(reactions)), err
}

type CommentRepository struct {
	mu       sync.RWMutex
	comments []models.Comment
}

func (r *CommentRepository) CreateComment(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.ID == "" {
		comment.ID = newID()
	}
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *CommentRepository) GetCommentByID(_ context.Context, id string) (*models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.comments {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, apperrors.NotFound("comment not found")
}

func (r *CommentRepository) GetCommentsByPostID(_ context.Context, postID string) ([]models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Comment{}
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return oldestFirst(out, func(x models.Comment) time.Time { return x.CreatedAt }), nil
}

func (r *CommentRepository) GetCommentsCount(ctx context.Context, postID string) (int64, error) {
	comments, err := r.GetCommentsByPostID(ctx, postID)
	return int64(len(comments)), err
}

func (r *CommentRepository) UpdateComment(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID == comment.ID {
			r.comments[i].Content = comment.Content
			r.comments[i].Edited = comment.Edited
			return nil
		}
	}
	return apperrors.NotFound("comment not found")
}

func (r *CommentRepository) DeleteComment(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.comments {
		if c.ID == id {
			r.comments = slices.Delete(r.comments, i, i+1)
			return nil
		}
	}
	return apperrors.NotFound("comment not found")
}

type ReplyRepository struct {
	mu      sync.RWMutex
	replies []models.CommentReply
}

func (r *ReplyRepository) CreateReply(_ context.Context, reply *models.CommentReply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reply.ID == "" {
		reply.ID = newID()
	}
	r.replies = append(r.replies, *reply)
	return nil
}

func (r *ReplyRepository) GetReplyByID(_ context.Context, id string) (*models.CommentReply, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.replies {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, apperrors.NotFound("reply not found")
}

func (r *ReplyRepository) GetRepliesByCommentID(_ context.Context, commentID string) ([]models.CommentReply, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.CommentReply{}
	for _, c := range r.replies {
		if c.CommentID == commentID {
			out = append(out, c)
		}
	}
	return oldestFirst(out, func(x models.CommentReply) time.Time { return x.CreatedAt }), nil
}

func (r *ReplyRepository) GetRepliesCount(ctx context.Context, commentID string) (int64, error) {
	replies, err := r.GetRepliesByCommentID(ctx, commentID)
	return int64(len(replies)), err
}

func (r *ReplyRepository) UpdateReply(_ context.Context, reply *models.CommentReply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.replies {
		if r.replies[i].ID == reply.ID {
			r.replies[i].Content = reply.Content
			r.replies[i].Edited = reply.Edited
			return nil
		}
	}
	return apperrors.NotFound("reply not found")
}

func (r *ReplyRepository) DeleteReply(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.replies {
		if c.ID == id {
			r.replies = slices.Delete(r.replies, i, i+1)
			return nil
		}
	}
	return apperrors.NotFound("reply not found")
}

type SavedPostRepository struct {
	mu    sync.RWMutex
	saved []models.SavedPost
}

func (r *SavedPostRepository) SavePost(_ context.Context, savedPost *models.SavedPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.saved {
		if s.UserID == savedPost.UserID && s.PostID == savedPost.PostID {
			return apperrors.Conflict(nil, "saved post already exists")
		}
	}
	if savedPost.ID == "" {
		savedPost.ID = newID()
	}
	r.saved = append(r.saved, *savedPost)
	return nil
}

func (r *SavedPostRepository) FindSavedPost(_ context.Context, userID, postID string) (*models.SavedPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.saved {
		if s.UserID == userID && s.PostID == postID {
			found := s
			return &found, nil
		}
	}
	return nil, apperrors.NotFound("saved post not found")
}

func (r *SavedPostRepository) DeleteSavedPost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.saved {
		if s.ID == id {
			r.saved = slices.Delete(r.saved, i, i+1)
			return nil
		}
	}
	return apperrors.NotFound("saved post not found")
}

func (r *SavedPostRepository) GetSavedPostsByUser(_ context.Context, userID string) ([]models.SavedPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.SavedPost{}
	for _, s := range r.saved {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return newestFirst(out, func(x models.SavedPost) time.Time { return x.CreatedAt }), nil
}

func (r *SavedPostRepository) GetSavedPostsCount(ctx context.Context, userID string) (int64, error) {
	saved, err := r.GetSavedPostsByUser(ctx, userID)
	return int64(len(saved)), err
}

type SharedPostRepository struct {
	mu     sync.RWMutex
	shared []models.SharedPost
}

func (r *SharedPostRepository) CreateSharedPost(_ context.Context, shared *models.SharedPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if shared.ID == "" {
		shared.ID = newID()
	}
	stored := *shared
	stored.ImageURLs = slices.Clone(shared.ImageURLs)
	r.shared = append(r.shared, stored)
	return nil
}

func (r *SharedPostRepository) GetSharedWithUser(_ context.Context, userID string) ([]models.SharedPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.SharedPost{}
	for _, s := range r.shared {
		if s.SharedToUserID == userID {
			s.ImageURLs = slices.Clone(s.ImageURLs)
			out = append(out, s)
		}
	}
	return newestFirst(out, func(x models.SharedPost) time.Time { return x.CreatedAt }), nil
}

type NotificationRepository struct {
	mu            sync.RWMutex
	notifications []models.Notification
}

func (r *NotificationRepository) CreateNotification(_ context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if notification.ID == "" {
		notification.ID = newID()
	}
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *NotificationRepository) GetByRecipientID(_ context.Context, recipientID string) ([]models.Notification, error) {
	return r.find(func(n models.Notification) bool { return n.RecipientID == recipientID }), nil
}

func (r *NotificationRepository) GetUnreadByRecipientID(_ context.Context, recipientID string) ([]models.Notification, error) {
	return r.find(func(n models.Notification) bool { return n.RecipientID == recipientID && !n.IsRead }), nil
}

func (r *NotificationRepository) GetUnreadCount(ctx context.Context, recipientID string) (int64, error) {
	unread, err := r.GetUnreadByRecipientID(ctx, recipientID)
	return int64(len(unread)), err
}

func (r *NotificationRepository) MarkAsRead(_ context.Context, notificationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == notificationID {
			r.notifications[i].IsRead = true
			return nil
		}
	}
	return apperrors.NotFound("notification not found")
}

func (r *NotificationRepository) find(match func(models.Notification) bool) []models.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Notification{}
	for _, n := range r.notifications {
		if match(n) {
			out = append(out, n)
		}
	}
	return newestFirst(out, func(x models.Notification) time.Time { return x.CreatedAt })
}

type PostRepository struct {
	mu   sync.RWMutex
	byID map[string]models.Post
}

func (r *PostRepository) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID == "" {
		post.ID = newID()
	}
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	post.MediaType = models.NormalizeMediaType(post.MediaType)
	stored := *post
	stored.ImageURLs = slices.Clone(post.ImageURLs)
	r.byID[post.ID] = stored
	return nil
}

func (r *PostRepository) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	post, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("post not found")
	}
	post.ImageURLs = slices.Clone(post.ImageURLs)
	return &post, nil
}

func (r *PostRepository) GetPostsByIDs(_ context.Context, ids []string) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Post{}
	for _, id := range ids {
		if post, ok := r.byID[id]; ok {
			post.ImageURLs = slices.Clone(post.ImageURLs)
			out = append(out, post)
		}
	}
	slices.SortFunc(out, func(a, b models.Post) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *PostRepository) UpdatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[post.ID]
	if !ok {
		return apperrors.NotFound("post not found")
	}
	post.UpdatedAt = time.Now()
	post.MediaType = models.NormalizeMediaType(post.MediaType)
	stored.Description = post.Description
	stored.ImageURLs = slices.Clone(post.ImageURLs)
	stored.VideoURL = post.VideoURL
	stored.MediaType = post.MediaType
	stored.UpdatedAt = post.UpdatedAt
	r.byID[post.ID] = stored
	return nil
}

func (r *PostRepository) DeletePost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return apperrors.NotFound("post not found")
	}
	delete(r.byID, id)
	return nil
}

type UserRepository struct {
	mu   sync.RWMutex
	byID map[string]models.User
}

func (r *UserRepository) UpsertUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, other := range r.byID {
		if id != user.ID && user.Email != "" && other.Email == user.Email {
			return apperrors.AlreadyExists("email %s is already in use", user.Email)
		}
	}
	now := time.Now()
	if existing, ok := r.byID[user.ID]; ok {
		user.CreatedAt = existing.CreatedAt
	} else {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	r.byID[user.ID] = *user
	return nil
}

func (r *UserRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return &user, nil
}

func (r *UserRepository) GetProfile(ctx context.Context, id string) (*models.UserProfile, error) {
	user, err := r.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := user.ToProfile()
	return &profile, nil
}
