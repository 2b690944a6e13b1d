package repositories

import (
	"github.com/carena-app/backend/internal/models"
	"gorm.io/gorm"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id uint) (*models.Article, error)
	List(page, limit int) ([]models.Article, int64, error)
	Update(article *models.Article) error
	Delete(id uint) error
}

type mysqlArticleRepository struct {
	db *gorm.DB
}

func NewMySQLArticleRepository(db *gorm.DB) ArticleRepository {
	return &mysqlArticleRepository{db: db}
}

func (r *mysqlArticleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *mysqlArticleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.Preload("Images").First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *mysqlArticleRepository) List(page, limit int) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	r.db.Model(&models.Article{}).Count(&total)

	offset := (page - 1) * limit
	err := r.db.Preload("Images").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&articles).Error

	return articles, total, err
}

func (r *mysqlArticleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

func (r *mysqlArticleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Article{}, id).Error
}
