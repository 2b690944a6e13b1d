package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/carena-app/backend/internal/models"
	"github.com/carena-app/backend/internal/repositories"
	"github.com/carena-app/backend/internal/services"
)

// ReplyHandler handles HTTP requests related to replies
type ReplyHandler struct {
	replyRepository     repositories.ReplyRepository
	commentRepository   repositories.CommentRepository
	notificationService *services.NotificationService
	logger              *zap.Logger
}

// NewReplyHandler creates a new ReplyHandler
func NewReplyHandler(
	replyRepo repositories.ReplyRepository,
	commentRepo repositories.CommentRepository,
	notificationSvc *services.NotificationService,
	logger *zap.Logger,
) *ReplyHandler {
	return &ReplyHandler{
		replyRepository:     replyRepo,
		commentRepository:   commentRepo,
		notificationService: notificationSvc,
		logger:              logger,
	}
}

// RegisterReplyRoutes registers reply-related routes
func (h *ReplyHandler) RegisterReplyRoutes(g *echo.Group) {
	g.POST("/comments/:comment_id/replies", h.CreateReply)
	g.GET("/comments/:comment_id/replies", h.GetReplies)
	g.PUT("/replies/:id", h.UpdateReply)
	g.DELETE("/replies/:id", h.DeleteReply)
}

// CreateReply creates a reply under a comment and notifies its author
func (h *ReplyHandler) CreateReply(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentRepository.GetByID(uint(commentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	reply := &models.Reply{
		CommentID: comment.ID,
		AuthorID:  currentUserID,
		Content:   req.Content,
	}
	if err := h.replyRepository.Create(reply); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	notifyErr := h.notificationService.Notify(&models.Notification{
		Type:           models.NotificationTypeReply,
		ReceiverUserID: comment.AuthorID,
		SenderUserID:   currentUserID,
		TargetType:     models.TargetComment,
		TargetID:       comment.ID,
		EntityType:     comment.EntityType,
		EntityID:       comment.EntityID,
	})
	if notifyErr != nil {
		// The reply is already persisted; a failed notification write must
		// not fail the request.
		h.logger.Error("failed to write reply notification",
			zap.Uint("receiver_user_id", comment.AuthorID),
			zap.Error(notifyErr),
		)
	}

	return c.JSON(http.StatusCreated, reply)
}

// GetReplies lists visible replies under a comment
func (h *ReplyHandler) GetReplies(c echo.Context) error {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	if _, err := h.commentRepository.GetByID(uint(commentID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	replies, err := h.replyRepository.ListByCommentID(uint(commentID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, replies)
}

// UpdateReply updates the authenticated user's own reply
func (h *ReplyHandler) UpdateReply(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reply ID")
	}

	var req models.UpdateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reply, err := h.replyRepository.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Reply not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if reply.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the reply author")
	}

	reply.Content = req.Content
	if err := h.replyRepository.Update(reply); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reply)
}

// DeleteReply soft-deletes the authenticated user's own reply
func (h *ReplyHandler) DeleteReply(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reply ID")
	}

	reply, err := h.replyRepository.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Reply not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if reply.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the reply author")
	}

	if err := h.replyRepository.Delete(reply.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
