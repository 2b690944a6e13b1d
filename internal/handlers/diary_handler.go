package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/carena-app/backend/internal/models"
	"github.com/carena-app/backend/internal/repositories"
	"github.com/carena-app/backend/internal/services"
)

// DiaryHandler handles HTTP requests related to diaries
type DiaryHandler struct {
	diaryRepository repositories.DiaryRepository
	reactionService *services.ReactionService
}

// NewDiaryHandler creates a new DiaryHandler
func NewDiaryHandler(diaryRepo repositories.DiaryRepository, reactionSvc *services.ReactionService) *DiaryHandler {
	return &DiaryHandler{
		diaryRepository: diaryRepo,
		reactionService: reactionSvc,
	}
}

// RegisterDiaryRoutes registers diary-related routes
func (h *DiaryHandler) RegisterDiaryRoutes(g *echo.Group) {
	g.POST("/diaries", h.CreateDiary)
	g.GET("/diaries", h.ListDiaries)
	g.GET("/diaries/mine", h.ListMyDiaries)
	g.GET("/diaries/:id", h.GetDiary)
	g.PUT("/diaries/:id", h.UpdateDiary)
	g.DELETE("/diaries/:id", h.DeleteDiary)
}

// CreateDiary creates a new diary entry
func (h *DiaryHandler) CreateDiary(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.CreateDiaryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	diary := &models.Diary{
		AuthorID:  currentUserID,
		EmotionID: req.EmotionID,
		CancerID:  req.CancerID,
		Content:   req.Content,
		IsPublic:  true,
	}
	if req.IsPublic != nil {
		diary.IsPublic = *req.IsPublic
	}

	if err := h.diaryRepository.Create(diary); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, diary)
}

// ListDiaries returns public diaries with reaction summaries
func (h *DiaryHandler) ListDiaries(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	page, limit := pageParams(c)

	diaries, total, err := h.diaryRepository.ListPublic(page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ids := make([]uint, len(diaries))
	for i, d := range diaries {
		ids[i] = d.ID
	}
	reactions, err := h.reactionService.ForTargets(models.TargetDiary, ids, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": echo.Map{
			"diaries":   diaries,
			"reactions": reactions,
		},
		"meta": paginationMeta(page, limit, total),
	})
}

// ListMyDiaries returns the authenticated user's own diaries
func (h *DiaryHandler) ListMyDiaries(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	page, limit := pageParams(c)

	diaries, total, err := h.diaryRepository.ListByAuthorID(currentUserID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": echo.Map{"diaries": diaries},
		"meta": paginationMeta(page, limit, total),
	})
}

// GetDiary retrieves one diary with its reaction summary
func (h *DiaryHandler) GetDiary(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid diary ID")
	}

	diary, err := h.diaryRepository.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Diary not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !diary.IsPublic && diary.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Diary is private")
	}

	reactions, err := h.reactionService.ForTargets(models.TargetDiary, []uint{diary.ID}, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"diary":     diary,
		"reactions": reactions[diary.ID],
	})
}

// UpdateDiary updates the authenticated user's own diary
func (h *DiaryHandler) UpdateDiary(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid diary ID")
	}

	var req models.UpdateDiaryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	diary, err := h.diaryRepository.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Diary not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if diary.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the diary author")
	}

	if req.EmotionID != 0 {
		diary.EmotionID = req.EmotionID
	}
	if req.Content != "" {
		diary.Content = req.Content
	}
	if req.IsPublic != nil {
		diary.IsPublic = *req.IsPublic
	}

	if err := h.diaryRepository.Update(diary); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, diary)
}

// DeleteDiary soft-deletes the authenticated user's own diary
func (h *DiaryHandler) DeleteDiary(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid diary ID")
	}

	diary, err := h.diaryRepository.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Diary not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if diary.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the diary author")
	}

	if err := h.diaryRepository.Delete(diary.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
