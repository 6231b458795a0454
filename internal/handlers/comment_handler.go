package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"github.com/anonto42/skillshare/backend/internal/models"
	"github.com/anonto42/skillshare/backend/internal/services"
)

// CommentHandler handles HTTP requests related to comments and replies
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.GET("/posts/:post_id/comments/count", h.GetCommentsCount)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)

	g.POST("/comments/:id/replies", h.CreateReply)
	g.GET("/comments/:id/replies", h.GetReplies)
	g.GET("/comments/:id/replies/count", h.GetRepliesCount)
	g.PUT("/replies/:id", h.UpdateReply)
	g.DELETE("/replies/:id", h.DeleteReply)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.CreateComment(c.Request().Context(), c.Param("post_id"), currentUserID, req.Content)
	if err != nil {
		return toHTTPError(err)
	}

	return success(c, http.StatusCreated, comment)
}

// GetCommentsByPostID retrieves all comments for a specific post
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	comments, err := h.commentService.ListComments(c.Request().Context(), c.Param("post_id"))
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, comments)
}

func (h *CommentHandler) GetCommentsCount(c echo.Context) error {
	postID := c.Param("post_id")
	count, err := h.commentService.CommentCount(c.Request().Context(), postID)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"post_id": postID, "comments_count": count})
}

// UpdateComment updates an existing comment
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var req models.UpdateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	existing, err := h.commentService.GetComment(ctx, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	// Ensure the user updating the comment is the owner
	if existing.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this comment")
	}

	comment, err := h.commentService.UpdateComment(ctx, existing.ID, req.Content)
	if err != nil {
		return toHTTPError(err)
	}

	return success(c, http.StatusOK, comment)
}

// DeleteComment deletes a comment. Deleting a missing comment succeeds.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	existing, err := h.commentService.GetComment(ctx, c.Param("id"))
	switch {
	case apperrors.IsNotFound(err):
		return c.NoContent(http.StatusNoContent)
	case err != nil:
		return toHTTPError(err)
	case existing.UserID != currentUserID:
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this comment")
	}

	if err := h.commentService.DeleteComment(ctx, existing.ID); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateReply creates a reply under a comment
func (h *CommentHandler) CreateReply(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reply, err := h.commentService.CreateReply(c.Request().Context(), c.Param("id"), currentUserID, req.Content)
	if err != nil {
		return toHTTPError(err)
	}

	return success(c, http.StatusCreated, reply)
}

func (h *CommentHandler) GetReplies(c echo.Context) error {
	replies, err := h.commentService.ListReplies(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, replies)
}

func (h *CommentHandler) GetRepliesCount(c echo.Context) error {
	commentID := c.Param("id")
	count, err := h.commentService.ReplyCount(c.Request().Context(), commentID)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"comment_id": commentID, "replies_count": count})
}

func (h *CommentHandler) UpdateReply(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var req models.UpdateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	existing, err := h.commentService.GetReply(ctx, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	if existing.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this reply")
	}

	reply, err := h.commentService.UpdateReply(ctx, existing.ID, req.Content)
	if err != nil {
		return toHTTPError(err)
	}

	return success(c, http.StatusOK, reply)
}

func (h *CommentHandler) DeleteReply(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	existing, err := h.commentService.GetReply(ctx, c.Param("id"))
	switch {
	case apperrors.IsNotFound(err):
		return c.NoContent(http.StatusNoContent)
	case err != nil:
		return toHTTPError(err)
	case existing.UserID != currentUserID:
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this reply")
	}

	if err := h.commentService.DeleteReply(ctx, existing.ID); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
