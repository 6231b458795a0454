package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/skillshare/backend/internal/services"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread", h.GetUnreadNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
}

// GetNotifications returns the caller's notifications, newest first. Without
// page or limit the whole list is returned.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	notifications, err := h.notificationService.ListAll(c.Request().Context(), currentUserID)
	if err != nil {
		return toHTTPError(err)
	}

	if c.QueryParam("page") == "" && c.QueryParam("limit") == "" {
		return success(c, http.StatusOK, echo.Map{"notifications": notifications})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	total := len(notifications)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	totalPages := (total + limit - 1) / limit

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"notifications": notifications[start:end],
		},
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      total,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}

func (h *NotificationHandler) GetUnreadNotifications(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	notifications, err := h.notificationService.ListUnread(c.Request().Context(), currentUserID)
	if err != nil {
		return toHTTPError(err)
	}

	return success(c, http.StatusOK, echo.Map{"notifications": notifications})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	count, err := h.notificationService.UnreadCount(c.Request().Context(), currentUserID)
	if err != nil {
		return toHTTPError(err)
	}

	return success(c, http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks a notification as read. Unknown ids succeed.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	if _, err := requireUser(c); err != nil {
		return err
	}

	if err := h.notificationService.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}

	return success(c, http.StatusOK, nil)
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	currentUserID, err := requireUser(c)
	if err != nil {
		return err
	}

	if err := h.notificationService.MarkAllRead(c.Request().Context(), currentUserID); err != nil {
		return toHTTPError(err)
	}

	return success(c, http.StatusOK, nil)
}
