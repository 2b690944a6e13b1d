package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/carena-app/backend/internal/models"
	"github.com/carena-app/backend/internal/repositories"
	"github.com/carena-app/backend/internal/storage"
)

const presignTTL = 15 * time.Minute

// ArticleHandler handles HTTP requests related to editorial articles
type ArticleHandler struct {
	articleRepository repositories.ArticleRepository
	userRepository    repositories.UserRepository
	storage           *storage.S3Storage
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articleRepo repositories.ArticleRepository, userRepo repositories.UserRepository, s3 *storage.S3Storage) *ArticleHandler {
	return &ArticleHandler{
		articleRepository: articleRepo,
		userRepository:    userRepo,
		storage:           s3,
	}
}

// RegisterArticleRoutes registers article-related routes
func (h *ArticleHandler) RegisterArticleRoutes(g *echo.Group) {
	g.GET("/articles", h.ListArticles)
	g.GET("/articles/:id", h.GetArticle)
	g.POST("/articles", h.CreateArticle)
	g.PUT("/articles/:id", h.UpdateArticle)
	g.DELETE("/articles/:id", h.DeleteArticle)
}

// requireAdmin rejects callers whose account is not a staff admin.
// Articles are editorial content; only admins may change them.
func (h *ArticleHandler) requireAdmin(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(getUserIDFromContext(c))
	if err != nil || !user.IsAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
	}
	return nil
}

// presignImages fills time-limited read URLs for stored object keys
func (h *ArticleHandler) presignImages(c echo.Context, articles []models.Article) {
	for i := range articles {
		for j := range articles[i].Images {
			url, err := h.storage.PresignRead(c.Request().Context(), articles[i].Images[j].ObjectKey, presignTTL)
			if err == nil {
				articles[i].Images[j].URL = url
			}
		}
	}
}

// ListArticles returns paginated articles with presigned image URLs
func (h *ArticleHandler) ListArticles(c echo.Context) error {
	page, limit := pageParams(c)

	articles, total, err := h.articleRepository.List(page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.presignImages(c, articles)

	return c.JSON(http.StatusOK, echo.Map{
		"data": echo.Map{"articles": articles},
		"meta": paginationMeta(page, limit, total),
	})
}

// GetArticle retrieves one article with presigned image URLs
func (h *ArticleHandler) GetArticle(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid article ID")
	}

	article, err := h.articleRepository.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	articles := []models.Article{*article}
	h.presignImages(c, articles)

	return c.JSON(http.StatusOK, articles[0])
}

// CreateArticle creates a new article; admin only
func (h *ArticleHandler) CreateArticle(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	var req models.CreateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	article := &models.Article{
		Title:   req.Title,
		Summary: req.Summary,
		Content: req.Content,
		Link:    req.Link,
	}
	for _, key := range req.ObjectKeys {
		article.Images = append(article.Images, models.ArticleImage{ObjectKey: key})
	}

	if err := h.articleRepository.Create(article); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, article)
}

// UpdateArticle updates an existing article; admin only
func (h *ArticleHandler) UpdateArticle(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid article ID")
	}

	var req models.UpdateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	article, err := h.articleRepository.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Title != "" {
		article.Title = req.Title
	}
	if req.Summary != "" {
		article.Summary = req.Summary
	}
	if req.Content != "" {
		article.Content = req.Content
	}
	if req.Link != "" {
		article.Link = req.Link
	}

	if err := h.articleRepository.Update(article); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, article)
}

// DeleteArticle soft-deletes an article; admin only
func (h *ArticleHandler) DeleteArticle(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid article ID")
	}

	if _, err := h.articleRepository.GetByID(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.articleRepository.Delete(uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
