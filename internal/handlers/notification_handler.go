package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/carena-app/backend/internal/scheduler"
	"github.com/carena-app/backend/internal/services"
)

// NotificationHandler handles HTTP requests related to notifications
type NotificationHandler struct {
	notificationService *services.NotificationService
	partitionScheduler  *scheduler.PartitionScheduler
	env                 string
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(
	notificationSvc *services.NotificationService,
	partitionSched *scheduler.PartitionScheduler,
	env string,
) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationSvc,
		partitionScheduler:  partitionSched,
		env:                 env,
	}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
	g.POST("/admin/partitions/run", h.RunPartitionJob)
}

// GetNotifications lists the authenticated user's notifications within a
// recent-days window. The unwindowed listing is only served outside
// production since it scans every partition.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	page, limit := pageParams(c)

	if c.QueryParam("all") == "true" {
		if h.env == "production" {
			return echo.NewHTTPError(http.StatusForbidden, "Unwindowed listing is disabled")
		}
		notifications, total, err := h.notificationService.ListAll(currentUserID, page, limit)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{
			"data": echo.Map{"notifications": notifications},
			"meta": paginationMeta(page, limit, total),
		})
	}

	days, _ := strconv.Atoi(c.QueryParam("days"))
	notifications, total, err := h.notificationService.List(currentUserID, days, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": echo.Map{"notifications": notifications},
		"meta": paginationMeta(page, limit, total),
	})
}

// GetUnreadCount returns the authenticated user's unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	count, err := h.notificationService.UnreadCount(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// MarkAsRead marks one of the authenticated user's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	if err := h.notificationService.MarkAsRead(uint(id), currentUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllAsRead marks all of the authenticated user's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	if err := h.notificationService.MarkAllAsRead(currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// RunPartitionJob triggers the monthly partition provisioning job on
// demand. Disabled in production, where the cron schedule owns it.
func (h *NotificationHandler) RunPartitionJob(c echo.Context) error {
	if h.env == "production" {
		return echo.NewHTTPError(http.StatusForbidden, "Manual partition runs are disabled")
	}

	h.partitionScheduler.Run()
	return c.NoContent(http.StatusAccepted)
}
