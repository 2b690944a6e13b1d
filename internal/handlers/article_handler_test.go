package handlers

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/carena-app/backend/internal/models"
	"github.com/carena-app/backend/validators"
)

type fakeArticleRepo struct {
	articles map[uint]*models.Article
	nextID   uint
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: map[uint]*models.Article{}}
}

func (f *fakeArticleRepo) Create(article *models.Article) error {
	f.nextID++
	article.ID = f.nextID
	f.articles[article.ID] = article
	return nil
}

func (f *fakeArticleRepo) GetByID(id uint) (*models.Article, error) {
	article, ok := f.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return article, nil
}

func (f *fakeArticleRepo) List(page, limit int) ([]models.Article, int64, error) {
	out := make([]models.Article, 0, len(f.articles))
	for _, article := range f.articles {
		out = append(out, *article)
	}
	return out, int64(len(f.articles)), nil
}

func (f *fakeArticleRepo) Update(article *models.Article) error {
	f.articles[article.ID] = article
	return nil
}

func (f *fakeArticleRepo) Delete(id uint) error {
	delete(f.articles, id)
	return nil
}

func newArticleFixture() (*ArticleHandler, *fakeArticleRepo, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	userRepo.users[1] = &models.User{ID: 1, Nickname: "staff", Email: "staff@example.com", IsAdmin: true}
	userRepo.users[2] = &models.User{ID: 2, Nickname: "member", Email: "member@example.com"}
	articleRepo := newFakeArticleRepo()
	return NewArticleHandler(articleRepo, userRepo, nil), articleRepo, userRepo
}

func TestCreateArticleRejectsNonAdmin(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	h, articleRepo, _ := newArticleFixture()

	c, _ := newJSONContext(e, http.MethodPost,
		`{"title":"not staff","content":"should never be stored"}`, 2)
	err := h.CreateArticle(c)

	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Empty(t, articleRepo.articles, "a rejected request must not persist an article")
}

func TestCreateArticleAsAdmin(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	h, articleRepo, _ := newArticleFixture()

	c, rec := newJSONContext(e, http.MethodPost,
		`{"title":"Managing treatment fatigue","content":"Body text"}`, 1)
	require.NoError(t, h.CreateArticle(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, articleRepo.articles, 1)
	assert.Equal(t, "Managing treatment fatigue", articleRepo.articles[1].Title)
}

func TestUpdateArticleRejectsNonAdmin(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	h, articleRepo, _ := newArticleFixture()
	require.NoError(t, articleRepo.Create(&models.Article{Title: "original"}))

	c, _ := newJSONContext(e, http.MethodPut, `{"title":"hijacked"}`, 2)
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := h.UpdateArticle(c)

	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Equal(t, "original", articleRepo.articles[1].Title)
}

func TestDeleteArticleRejectsNonAdmin(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	h, articleRepo, _ := newArticleFixture()
	require.NoError(t, articleRepo.Create(&models.Article{Title: "original"}))

	c, _ := newJSONContext(e, http.MethodDelete, "", 2)
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := h.DeleteArticle(c)

	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Len(t, articleRepo.articles, 1)
}
