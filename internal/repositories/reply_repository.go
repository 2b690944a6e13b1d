package repositories

import (
	"github.com/carena-app/backend/internal/models"
	"gorm.io/gorm"
)

// ReplyRepository defines the interface for reply data operations
type ReplyRepository interface {
	Create(reply *models.Reply) error
	GetByID(id uint) (*models.Reply, error)
	ListByCommentID(commentID uint) ([]models.Reply, error)
	CountByCommentID(commentID uint) (int64, error)
	Update(reply *models.Reply) error
	Delete(id uint) error
	GetAuthorID(id uint) (uint, error)
}

type mysqlReplyRepository struct {
	db *gorm.DB
}

func NewMySQLReplyRepository(db *gorm.DB) ReplyRepository {
	return &mysqlReplyRepository{db: db}
}

func (r *mysqlReplyRepository) Create(reply *models.Reply) error {
	return r.db.Create(reply).Error
}

func (r *mysqlReplyRepository) GetByID(id uint) (*models.Reply, error) {
	var reply models.Reply
	if err := r.db.First(&reply, id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *mysqlReplyRepository) ListByCommentID(commentID uint) ([]models.Reply, error) {
	var replies []models.Reply
	err := r.db.Where("comment_id = ?", commentID).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}

func (r *mysqlReplyRepository) CountByCommentID(commentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Reply{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}

func (r *mysqlReplyRepository) Update(reply *models.Reply) error {
	return r.db.Save(reply).Error
}

func (r *mysqlReplyRepository) Delete(id uint) error {
	return r.db.Delete(&models.Reply{}, id).Error
}

func (r *mysqlReplyRepository) GetAuthorID(id uint) (uint, error) {
	var reply models.Reply
	if err := r.db.Select("author_id").First(&reply, id).Error; err != nil {
		return 0, err
	}
	return reply.AuthorID, nil
}
