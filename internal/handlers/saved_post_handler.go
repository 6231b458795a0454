package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/skillshare/backend/internal/models"
	"github.com/anonto42/skillshare/backend/internal/services"
)

// SavedPostHandler handles saved post and share HTTP requests
type SavedPostHandler struct {
	bookmarkService *services.BookmarkService
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(bookmarkService *services.BookmarkService) *SavedPostHandler {
	return &SavedPostHandler{bookmarkService: bookmarkService}
}

// RegisterSavedPostRoutes registers saved post routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/posts/:id/save/toggle", h.ToggleSavePost)
	g.GET("/posts/:id/save/status", h.GetSaveStatus)
	g.GET("/saved-posts", h.GetSavedPosts)
	g.GET("/saved-posts/count", h.GetSavedPostsCount)

	g.POST("/posts/:id/share", h.SharePost)
	g.GET("/shared-posts", h.GetSharedPosts)
}

// ToggleSavePost saves a post, or unsaves it if it is already saved
func (h *SavedPostHandler) ToggleSavePost(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	saved, err := h.bookmarkService.ToggleSavedPost(c.Request().Context(), currentUserID, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return success(c, http.StatusOK, echo.Map{"saved": saved != nil, "saved_post": saved})
}

func (h *SavedPostHandler) GetSaveStatus(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	postID := c.Param("id")

	saved, err := h.bookmarkService.IsPostSaved(c.Request().Context(), currentUserID, postID)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"post_id": postID, "saved": saved})
}

// GetSavedPosts lists the caller's saved posts, most recently saved first
func (h *SavedPostHandler) GetSavedPosts(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	posts, err := h.bookmarkService.ListSavedPosts(c.Request().Context(), currentUserID)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, posts)
}

func (h *SavedPostHandler) GetSavedPostsCount(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	count, err := h.bookmarkService.SavedPostCount(c.Request().Context(), currentUserID)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"count": count})
}

// SharePost sends a snapshot of the post to another user
func (h *SavedPostHandler) SharePost(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.SharePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	shared, err := h.bookmarkService.SharePost(c.Request().Context(), c.Param("id"), currentUserID, req.ToUserID)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusCreated, shared)
}

// GetSharedPosts lists the snapshots other users shared with the caller
func (h *SavedPostHandler) GetSharedPosts(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	shared, err := h.bookmarkService.ListSharedWith(c.Request().Context(), currentUserID)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, shared)
}
