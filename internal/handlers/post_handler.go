package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/skillshare/backend/internal/models"
	"github.com/anonto42/skillshare/backend/internal/repositories"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository) *PostHandler {
	return &PostHandler{postRepository: postRepo}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post := &models.Post{
		UserID:      currentUserID,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
		VideoURL:    req.VideoURL,
		MediaType:   mediaTypeOf(req.ImageURLs),
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return toHTTPError(err)
	}

	return success(c, http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, post)
}

// UpdatePost updates an existing post. Snapshots already shared keep the old content.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	existingPost, err := h.postRepository.GetPostByID(ctx, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	// Ensure the user updating the post is the owner
	if existingPost.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this post")
	}

	if req.Description != "" {
		existingPost.Description = req.Description
	}
	if req.ImageURLs != nil {
		existingPost.ImageURLs = req.ImageURLs
		existingPost.MediaType = mediaTypeOf(req.ImageURLs)
	}
	if req.VideoURL != "" {
		existingPost.VideoURL = req.VideoURL
	}

	if err := h.postRepository.UpdatePost(ctx, existingPost); err != nil {
		return toHTTPError(err)
	}

	return success(c, http.StatusOK, existingPost)
}

// DeletePost deletes a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	existingPost, err := h.postRepository.GetPostByID(ctx, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	// Ensure the user deleting the post is the owner
	if existingPost.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
	}

	if err := h.postRepository.DeletePost(ctx, existingPost.ID); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func mediaTypeOf(imageURLs []string) models.MediaType {
	if len(imageURLs) > 0 {
		return models.MediaImage
	}
	return models.MediaVideo
}
