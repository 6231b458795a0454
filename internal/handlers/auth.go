package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/skillshare/backend/internal/apperrors"
	"github.com/anonto42/skillshare/backend/internal/middleware"
	"github.com/anonto42/skillshare/backend/internal/models"
	"github.com/anonto42/skillshare/backend/internal/repositories"
	"github.com/anonto42/skillshare/backend/pkg/logger"
)

// AuthHandler exchanges a Firebase ID token for a locally signed JWT
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   middleware.TokenVerifier
	jwtSecret      string
	logger         logger.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, verifier middleware.TokenVerifier, jwtSecret string, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   verifier,
		jwtSecret:      jwtSecret,
		logger:         log.WithComponent("AuthHandler"),
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/firebase-login", h.FirebaseLogin)
}

type firebaseLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// FirebaseLogin verifies the ID token, makes sure a profile row exists for its
// subject and returns a local JWT.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req firebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.firebaseAuth.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)

	user, err := h.userRepository.GetUserByID(ctx, token.UID)
	switch {
	case apperrors.IsNotFound(err):
		user = &models.User{ID: token.UID, Name: name, Email: email, ImageURL: picture}
		if user.Name == "" {
			user.Name = email
		}
		if err := h.userRepository.UpsertUser(ctx, user); err != nil {
			return toHTTPError(err)
		}
		h.logger.Info("Created profile from Firebase login", "user_id", user.ID)
	case err != nil:
		return toHTTPError(err)
	}

	localJWT, err := middleware.IssueToken(h.jwtSecret, user.ID, user.Email, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate local JWT").SetInternal(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"token": localJWT})
}
