package repositories

import (
	"github.com/carena-app/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	FindAllByEntityTypeAndEntityID(entityType string, entityID uint) ([]models.Comment, error)
	CountByEntityIDs(entityType string, entityIDs []uint) (map[uint]int64, error)
	Update(comment *models.Comment) error
	Delete(id uint) error
	GetAuthorID(id uint) (uint, error)
}

type mysqlCommentRepository struct {
	db *gorm.DB
}

func NewMySQLCommentRepository(db *gorm.DB) CommentRepository {
	return &mysqlCommentRepository{db: db}
}

func (r *mysqlCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *mysqlCommentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindAllByEntityTypeAndEntityID lists visible comments on an entity,
// oldest first. Soft-deleted rows are excluded by GORM's default scope.
func (r *mysqlCommentRepository) FindAllByEntityTypeAndEntityID(entityType string, entityID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CountByEntityIDs returns visible comment counts per entity, zero-filled
// for entities without comments.
func (r *mysqlCommentRepository) CountByEntityIDs(entityType string, entityIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(entityIDs))
	for _, id := range entityIDs {
		counts[id] = 0
	}
	if len(entityIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		EntityID uint
		Count    int64
	}
	err := r.db.Model(&models.Comment{}).
		Select("entity_id, COUNT(*) as count").
		Where("entity_type = ? AND entity_id IN ?", entityType, entityIDs).
		Group("entity_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.EntityID] = row.Count
	}
	return counts, nil
}

func (r *mysqlCommentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// Delete soft-deletes the comment; the row stays in storage
func (r *mysqlCommentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

func (r *mysqlCommentRepository) GetAuthorID(id uint) (uint, error) {
	var comment models.Comment
	if err := r.db.Select("author_id").First(&comment, id).Error; err != nil {
		return 0, err
	}
	return comment.AuthorID, nil
}
