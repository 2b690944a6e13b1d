package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carena-app/backend/internal/models"
	"github.com/carena-app/backend/internal/services"
)

// ReactionHandler handles HTTP requests related to reactions
type ReactionHandler struct {
	reactionService *services.ReactionService
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionSvc *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionSvc}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.GET("/reactions/catalog", h.GetCatalog)
	g.GET("/reactions/counts/:entity_type", h.GetEntityCounts)
	g.GET("/reactions/:target_type", h.GetReactionsForTargets)
	g.POST("/reactions/:target_type/:target_id", h.AddReaction)
	g.DELETE("/reactions/:target_type/:target_id", h.RemoveReaction)
}

func parseTargetType(c echo.Context) (models.TargetType, error) {
	switch t := models.TargetType(c.Param("target_type")); t {
	case models.TargetDiary, models.TargetPost, models.TargetComment, models.TargetReply:
		return t, nil
	default:
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid target type")
	}
}

func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, errors.New("empty id list")
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// GetCatalog returns the reaction kinds in catalog order
func (h *ReactionHandler) GetCatalog(c echo.Context) error {
	catalog, err := h.reactionService.Catalog()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, catalog)
}

// AddReaction records the authenticated user's reaction to a target
func (h *ReactionHandler) AddReaction(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	targetType, err := parseTargetType(c)
	if err != nil {
		return err
	}
	targetID, err := strconv.ParseUint(c.Param("target_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid target ID")
	}

	var req models.AddReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	entity, err := h.reactionService.Add(services.AddReactionInput{
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		TargetType: targetType,
		TargetID:   uint(targetID),
		ReactionID: req.ReactionID,
		UserID:     currentUserID,
	})
	if err != nil {
		if errors.Is(err, services.ErrTargetNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Target not found")
		}
		if errors.Is(err, services.ErrDuplicateReaction) {
			return echo.NewHTTPError(http.StatusConflict, "Reaction already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, entity)
}

// RemoveReaction deletes the matching reaction; absent rows are a no-op
func (h *ReactionHandler) RemoveReaction(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	targetType, err := parseTargetType(c)
	if err != nil {
		return err
	}
	targetID, err := strconv.ParseUint(c.Param("target_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid target ID")
	}
	reactionID, err := strconv.ParseUint(c.QueryParam("reaction_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reaction ID")
	}

	if err := h.reactionService.Remove(targetType, uint(targetID), uint(reactionID), currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetReactionsForTargets returns catalog-normalized counts for a batch of
// targets, including the viewer's own kinds.
func (h *ReactionHandler) GetReactionsForTargets(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	targetType, err := parseTargetType(c)
	if err != nil {
		return err
	}
	ids, err := parseIDList(c.QueryParam("ids"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ids parameter")
	}

	result, err := h.reactionService.ForTargets(targetType, ids, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// GetEntityCounts returns total reaction counts per container entity
func (h *ReactionHandler) GetEntityCounts(c echo.Context) error {
	entityType := c.Param("entity_type")
	ids, err := parseIDList(c.QueryParam("ids"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ids parameter")
	}

	counts, err := h.reactionService.CountForEntities(entityType, ids)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, counts)
}
