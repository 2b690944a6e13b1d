package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/carena-app/backend/internal/models"
	"github.com/carena-app/backend/internal/repositories"
	"github.com/carena-app/backend/internal/services"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository   repositories.CommentRepository
	replyRepository     repositories.ReplyRepository
	articleRepository   repositories.ArticleRepository
	resolver            *services.TargetResolver
	notificationService *services.NotificationService
	logger              *zap.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	replyRepo repositories.ReplyRepository,
	articleRepo repositories.ArticleRepository,
	resolver *services.TargetResolver,
	notificationSvc *services.NotificationService,
	logger *zap.Logger,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:   commentRepo,
		replyRepository:     replyRepo,
		articleRepository:   articleRepo,
		resolver:            resolver,
		notificationService: notificationSvc,
		logger:              logger,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/:entity_type/:entity_id/comments", h.CreateComment)
	g.GET("/:entity_type/:entity_id/comments", h.GetComments)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// entityAuthor verifies the commentable entity exists and returns its
// author (zero for authorless entities like articles).
func (h *CommentHandler) entityAuthor(entityType string, entityID uint) (uint, error) {
	switch entityType {
	case "diary", "post":
		return h.resolver.ResolveAuthor(models.TargetType(entityType), entityID)
	case "article":
		if _, err := h.articleRepository.GetByID(entityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, services.ErrTargetNotFound
			}
			return 0, err
		}
		return 0, nil
	default:
		return 0, services.ErrTargetNotFound
	}
}

// CreateComment creates a comment on an entity and notifies its author
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	entityType := c.Param("entity_type")
	entityID, err := strconv.ParseUint(c.Param("entity_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid entity ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	authorID, err := h.entityAuthor(entityType, uint(entityID))
	if err != nil {
		if errors.Is(err, services.ErrTargetNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Entity not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comment := &models.Comment{
		EntityType: entityType,
		EntityID:   uint(entityID),
		AuthorID:   currentUserID,
		Content:    req.Content,
	}
	if err := h.commentRepository.Create(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if authorID != 0 {
		err := h.notificationService.Notify(&models.Notification{
			Type:           models.NotificationTypeComment,
			ReceiverUserID: authorID,
			SenderUserID:   currentUserID,
			TargetType:     models.TargetType(entityType),
			TargetID:       uint(entityID),
			EntityType:     entityType,
			EntityID:       uint(entityID),
		})
		if err != nil {
			// The comment is already persisted; a failed notification write
			// must not fail the request.
			h.logger.Error("failed to write comment notification",
				zap.Uint("receiver_user_id", authorID),
				zap.Error(err),
			)
		}
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetComments lists visible comments on an entity with reply counts.
// Reply counts for the page are fetched concurrently.
func (h *CommentHandler) GetComments(c echo.Context) error {
	entityType := c.Param("entity_type")
	entityID, err := strconv.ParseUint(c.Param("entity_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid entity ID")
	}

	if _, err := h.entityAuthor(entityType, uint(entityID)); err != nil {
		if errors.Is(err, services.ErrTargetNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Entity not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comments, err := h.commentRepository.FindAllByEntityTypeAndEntityID(entityType, uint(entityID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	decorated := make([]models.CommentWithReplyCount, len(comments))
	var g errgroup.Group
	for i, comment := range comments {
		decorated[i].Comment = comment
		g.Go(func() error {
			count, err := h.replyRepository.CountByCommentID(comment.ID)
			if err != nil {
				return err
			}
			decorated[i].ReplyCount = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, decorated)
}

// UpdateComment updates the authenticated user's own comment
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentRepository.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the comment author")
	}

	comment.Content = req.Content
	if err := h.commentRepository.Update(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment soft-deletes the authenticated user's own comment;
// the row stays in storage and disappears from listings.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the comment author")
	}

	if err := h.commentRepository.Delete(comment.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
