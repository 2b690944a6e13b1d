package repositories

import (
	"github.com/carena-app/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for forum post data operations
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	List(sectionPrimaryID, sectionSecondaryID uint, page, limit int) ([]models.Post, int64, error)
	Update(post *models.Post) error
	Delete(id uint) error
	GetAuthorID(id uint) (uint, error)
}

type mysqlPostRepository struct {
	db *gorm.DB
}

func NewMySQLPostRepository(db *gorm.DB) PostRepository {
	return &mysqlPostRepository{db: db}
}

func (r *mysqlPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *mysqlPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Images").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *mysqlPostRepository) List(sectionPrimaryID, sectionSecondaryID uint, page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	q := r.db.Model(&models.Post{})
	if sectionPrimaryID != 0 {
		q = q.Where("section_primary_id = ?", sectionPrimaryID)
	}
	if sectionSecondaryID != 0 {
		q = q.Where("section_secondary_id = ?", sectionSecondaryID)
	}
	q.Count(&total)

	offset := (page - 1) * limit
	err := q.Preload("Images").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error

	return posts, total, err
}

func (r *mysqlPostRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

func (r *mysqlPostRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

func (r *mysqlPostRepository) GetAuthorID(id uint) (uint, error) {
	var post models.Post
	if err := r.db.Select("author_id").First(&post, id).Error; err != nil {
		return 0, err
	}
	return post.AuthorID, nil
}
