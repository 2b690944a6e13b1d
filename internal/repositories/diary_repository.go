package repositories

import (
	"github.com/carena-app/backend/internal/models"
	"gorm.io/gorm"
)

// DiaryRepository defines the interface for diary data operations
type DiaryRepository interface {
	Create(diary *models.Diary) error
	GetByID(id uint) (*models.Diary, error)
	ListPublic(page, limit int) ([]models.Diary, int64, error)
	ListByAuthorID(authorID uint, page, limit int) ([]models.Diary, int64, error)
	Update(diary *models.Diary) error
	Delete(id uint) error
	GetAuthorID(id uint) (uint, error)
}

type mysqlDiaryRepository struct {
	db *gorm.DB
}

func NewMySQLDiaryRepository(db *gorm.DB) DiaryRepository {
	return &mysqlDiaryRepository{db: db}
}

func (r *mysqlDiaryRepository) Create(diary *models.Diary) error {
	return r.db.Create(diary).Error
}

func (r *mysqlDiaryRepository) GetByID(id uint) (*models.Diary, error) {
	var diary models.Diary
	if err := r.db.Preload("Emotion").First(&diary, id).Error; err != nil {
		return nil, err
	}
	return &diary, nil
}

func (r *mysqlDiaryRepository) ListPublic(page, limit int) ([]models.Diary, int64, error) {
	var diaries []models.Diary
	var total int64

	r.db.Model(&models.Diary{}).Where("is_public = true").Count(&total)

	offset := (page - 1) * limit
	err := r.db.Preload("Emotion").Where("is_public = true").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&diaries).Error

	return diaries, total, err
}

func (r *mysqlDiaryRepository) ListByAuthorID(authorID uint, page, limit int) ([]models.Diary, int64, error) {
	var diaries []models.Diary
	var total int64

	r.db.Model(&models.Diary{}).Where("author_id = ?", authorID).Count(&total)

	offset := (page - 1) * limit
	err := r.db.Preload("Emotion").Where("author_id = ?", authorID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&diaries).Error

	return diaries, total, err
}

func (r *mysqlDiaryRepository) Update(diary *models.Diary) error {
	return r.db.Save(diary).Error
}

func (r *mysqlDiaryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Diary{}, id).Error
}

func (r *mysqlDiaryRepository) GetAuthorID(id uint) (uint, error) {
	var diary models.Diary
	if err := r.db.Select("author_id").First(&diary, id).Error; err != nil {
		return 0, err
	}
	return diary.AuthorID, nil
}
