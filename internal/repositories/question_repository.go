package repositories

import (
	"github.com/carena-app/backend/internal/models"
	"gorm.io/gorm"
)

// QuestionRepository defines the interface for AI Q&A data operations
type QuestionRepository interface {
	Create(question *models.Question) error
	GetByID(id uint) (*models.Question, error)
	ListByUserID(userID uint, page, limit int) ([]models.Question, int64, error)
}

type mysqlQuestionRepository struct {
	db *gorm.DB
}

func NewMySQLQuestionRepository(db *gorm.DB) QuestionRepository {
	return &mysqlQuestionRepository{db: db}
}

func (r *mysqlQuestionRepository) Create(question *models.Question) error {
	return r.db.Create(question).Error
}

func (r *mysqlQuestionRepository) GetByID(id uint) (*models.Question, error) {
	var question models.Question
	if err := r.db.Preload("Images").First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *mysqlQuestionRepository) ListByUserID(userID uint, page, limit int) ([]models.Question, int64, error) {
	var questions []models.Question
	var total int64

	r.db.Model(&models.Question{}).Where("user_id = ?", userID).Count(&total)

	offset := (page - 1) * limit
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&questions).Error

	return questions, total, err
}
