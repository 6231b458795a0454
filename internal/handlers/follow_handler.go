package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/skillshare/backend/internal/models"
	"github.com/anonto42/skillshare/backend/internal/services"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/follow/status", h.GetFollowStatus)
	g.GET("/users/:id/followers/count", h.GetFollowersCount)
	g.GET("/users/:id/following/count", h.GetFollowingCount)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	follow, err := h.followService.Follow(c.Request().Context(), currentUserID, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return success(c, http.StatusCreated, follow)
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	if err := h.followService.Unfollow(c.Request().Context(), currentUserID, c.Param("id")); err != nil {
		return toHTTPError(err)
	}

	return success(c, http.StatusOK, echo.Map{"following": false})
}

// GetFollowStatus reports whether the authenticated user follows :id
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}
	targetID := c.Param("id")

	following, err := h.followService.IsFollowing(c.Request().Context(), currentUserID, targetID)
	if err != nil {
		return toHTTPError(err)
	}

	return success(c, http.StatusOK, models.FollowStatus{
		FollowerID:  currentUserID,
		FollowingID: targetID,
		Following:   following,
	})
}

func (h *FollowHandler) GetFollowersCount(c echo.Context) error {
	count, err := h.followService.FollowerCount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"user_id": c.Param("id"), "followers_count": count})
}

func (h *FollowHandler) GetFollowingCount(c echo.Context) error {
	count, err := h.followService.FollowingCount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"user_id": c.Param("id"), "following_count": count})
}
