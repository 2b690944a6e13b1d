package repositories

import (
	"github.com/carena-app/backend/internal/models"
	"gorm.io/gorm"
)

// LookupRepository serves the small fixed catalogs (cancers, emotions, sections)
type LookupRepository interface {
	ListCancers() ([]models.Cancer, error)
	ListEmotions() ([]models.Emotion, error)
	ListPrimarySections() ([]models.SectionPrimary, error)
	ListSecondarySections(primaryID uint) ([]models.SectionSecondary, error)
}

type mysqlLookupRepository struct {
	db *gorm.DB
}

func NewMySQLLookupRepository(db *gorm.DB) LookupRepository {
	return &mysqlLookupRepository{db: db}
}

func (r *mysqlLookupRepository) ListCancers() ([]models.Cancer, error) {
	var cancers []models.Cancer
	if err := r.db.Order("id").Find(&cancers).Error; err != nil {
		return nil, err
	}
	return cancers, nil
}

func (r *mysqlLookupRepository) ListEmotions() ([]models.Emotion, error) {
	var emotions []models.Emotion
	if err := r.db.Order("id").Find(&emotions).Error; err != nil {
		return nil, err
	}
	return emotions, nil
}

func (r *mysqlLookupRepository) ListPrimarySections() ([]models.SectionPrimary, error) {
	var sections []models.SectionPrimary
	if err := r.db.Order("id").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *mysqlLookupRepository) ListSecondarySections(primaryID uint) ([]models.SectionSecondary, error) {
	var sections []models.SectionSecondary
	q := r.db.Order("id")
	if primaryID != 0 {
		q = q.Where("section_primary_id = ?", primaryID)
	}
	if err := q.Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}
