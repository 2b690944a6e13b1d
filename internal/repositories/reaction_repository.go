package repositories

import (
	"github.com/carena-app/backend/internal/models"
	"gorm.io/gorm"
)

// TargetReactionCount is one row of the grouped aggregation query
type TargetReactionCount struct {
	TargetID   uint
	ReactionID uint
	Count      int64
}

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	ListCatalog() ([]models.Reaction, error)
	Create(entity *models.ReactionEntity) error
	// Delete removes the matching row and reports how many rows matched;
	// zero is not an error.
	Delete(targetType models.TargetType, targetID, reactionID, userID uint) (int64, error)
	Exists(targetType models.TargetType, targetID, reactionID, userID uint) (bool, error)
	CountsByTarget(targetType models.TargetType, targetIDs []uint) ([]TargetReactionCount, error)
	UserRowsByTarget(targetType models.TargetType, targetIDs []uint, userID uint) ([]models.ReactionEntity, error)
	TotalCountsByEntity(entityType string, entityIDs []uint) (map[uint]int64, error)
}

type mysqlReactionRepository struct {
	db *gorm.DB
}

func NewMySQLReactionRepository(db *gorm.DB) ReactionRepository {
	return &mysqlReactionRepository{db: db}
}

// ListCatalog returns all reaction kinds in catalog-insertion order
func (r *mysqlReactionRepository) ListCatalog() ([]models.Reaction, error) {
	var catalog []models.Reaction
	if err := r.db.Order("id").Find(&catalog).Error; err != nil {
		return nil, err
	}
	return catalog, nil
}

func (r *mysqlReactionRepository) Create(entity *models.ReactionEntity) error {
	return r.db.Create(entity).Error
}

func (r *mysqlReactionRepository) Delete(targetType models.TargetType, targetID, reactionID, userID uint) (int64, error) {
	res := r.db.Where("target_type = ? AND target_id = ? AND reaction_id = ? AND user_id = ?",
		targetType, targetID, reactionID, userID).
		Delete(&models.ReactionEntity{})
	return res.RowsAffected, res.Error
}

func (r *mysqlReactionRepository) Exists(targetType models.TargetType, targetID, reactionID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ReactionEntity{}).
		Where("target_type = ? AND target_id = ? AND reaction_id = ? AND user_id = ?",
			targetType, targetID, reactionID, userID).
		Count(&count).Error
	return count > 0, err
}

// CountsByTarget runs one grouped COUNT over (target_id, reaction_id) for
// the whole page of targets.
func (r *mysqlReactionRepository) CountsByTarget(targetType models.TargetType, targetIDs []uint) ([]TargetReactionCount, error) {
	var rows []TargetReactionCount
	err := r.db.Model(&models.ReactionEntity{}).
		Select("target_id, reaction_id, COUNT(*) AS count").
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Group("target_id, reaction_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UserRowsByTarget returns the viewer's own reaction rows for the targets
func (r *mysqlReactionRepository) UserRowsByTarget(targetType models.TargetType, targetIDs []uint, userID uint) ([]models.ReactionEntity, error) {
	var rows []models.ReactionEntity
	err := r.db.Where("target_type = ? AND target_id IN ? AND user_id = ?",
		targetType, targetIDs, userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TotalCountsByEntity is the aggregate-badge variant: total reactions per
// container entity with no per-kind breakdown.
func (r *mysqlReactionRepository) TotalCountsByEntity(entityType string, entityIDs []uint) (map[uint]int64, error) {
	var rows []struct {
		EntityID uint
		Count    int64
	}
	err := r.db.Model(&models.ReactionEntity{}).
		Select("entity_id, COUNT(*) AS count").
		Where("entity_type = ? AND entity_id IN ?", entityType, entityIDs).
		Group("entity_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(entityIDs))
	for _, id := range entityIDs {
		counts[id] = 0
	}
	for _, row := range rows {
		counts[row.EntityID] = row.Count
	}
	return counts, nil
}
