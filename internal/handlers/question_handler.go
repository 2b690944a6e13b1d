package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/carena-app/backend/internal/models"
	"github.com/carena-app/backend/internal/services"
)

// QuestionHandler handles HTTP requests related to AI Q&A
type QuestionHandler struct {
	questionService *services.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler
func NewQuestionHandler(questionSvc *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionSvc}
}

// RegisterQuestionRoutes registers question-related routes
func (h *QuestionHandler) RegisterQuestionRoutes(g *echo.Group) {
	g.POST("/questions", h.CreateQuestion)
	g.GET("/questions", h.GetMyQuestions)
	g.GET("/questions/:id", h.GetQuestion)
}

// CreateQuestion submits a question to the AI provider and returns the
// persisted exchange
func (h *QuestionHandler) CreateQuestion(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.CreateQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	question, err := h.questionService.Ask(c.Request().Context(), currentUserID, req)
	if err != nil {
		if errors.Is(err, services.ErrAnswerUnavailable) {
			return echo.NewHTTPError(http.StatusBadGateway, "Answer unavailable, try again later")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, question)
}

// GetMyQuestions lists the authenticated user's questions
func (h *QuestionHandler) GetMyQuestions(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	page, limit := pageParams(c)

	questions, total, err := h.questionService.ListByUser(currentUserID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": echo.Map{"questions": questions},
		"meta": paginationMeta(page, limit, total),
	})
}

// GetQuestion retrieves one of the authenticated user's questions
func (h *QuestionHandler) GetQuestion(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid question ID")
	}

	question, err := h.questionService.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Question not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if question.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the question owner")
	}
	return c.JSON(http.StatusOK, question)
}
