package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/skillshare/backend/internal/models"
	"github.com/anonto42/skillshare/backend/internal/repositories"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)    // Get own profile
	g.PUT("/profile", h.UpdateProfile) // Create or update own profile
	g.GET("/users/:id", h.GetUser)     // Get other user's public profile
}

// GetUser returns the public profile of another user
func (h *UserHandler) GetUser(c echo.Context) error {
	profile, err := h.userRepository.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, profile)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), currentUserID)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, user)
}

// UpdateProfile creates or replaces the authenticated user's profile. Records
// that copied the old name or avatar keep them.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user := &models.User{
		ID:       currentUserID,
		Name:     req.Name,
		Email:    req.Email,
		ImageURL: req.ImageURL,
	}
	if err := h.userRepository.UpsertUser(c.Request().Context(), user); err != nil {
		return toHTTPError(err)
	}

	return success(c, http.StatusOK, user)
}
