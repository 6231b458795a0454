package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/anonto42/skillshare/backend/internal/handlers"
	"github.com/anonto42/skillshare/backend/internal/validators"
	"github.com/anonto42/skillshare/backend/pkg/logger"
)

// Handlers groups every route handler. Auth is nil when Firebase is not configured.
type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Post         *handlers.PostHandler
	Follow       *handlers.FollowHandler
	Like         *handlers.LikeHandler
	Comment      *handlers.CommentHandler
	SavedPost    *handlers.SavedPostHandler
	Notification *handlers.NotificationHandler
}

// New builds the echo instance with global middleware, the validator and all routes.
func New(h Handlers, authMiddleware echo.MiddlewareFunc, log logger.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()

	SetupMiddleware(e, log)
	SetupRoutes(e, h, authMiddleware, log)
	return e
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log logger.Logger) {
	reqLog := log.WithComponent("http").Slog()

	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			reqLog.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	}))
	log.Debug("Global middleware configured.")
}

// SetupRoutes configures all application routes
func SetupRoutes(e *echo.Echo, h Handlers, authMiddleware echo.MiddlewareFunc, log logger.Logger) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Hello, World!"})
	})

	// --- Unprotected routes for authentication ---
	if h.Auth != nil {
		h.Auth.RegisterAuthRoutes(e.Group("/api/v1/auth"))
		log.Debug("Auth routes configured.")
	}

	// --- Protected routes ---
	api := e.Group("/api/v1")
	api.Use(authMiddleware)

	h.User.RegisterProfileRoutes(api)
	h.Post.RegisterPostRoutes(api)
	h.Follow.RegisterFollowRoutes(api)
	h.Like.RegisterLikeRoutes(api)
	h.Comment.RegisterCommentRoutes(api)
	h.SavedPost.RegisterSavedPostRoutes(api)
	h.Notification.RegisterNotificationRoutes(api)

	log.Info("All routes configured.", "routes", len(e.Routes()))
}
