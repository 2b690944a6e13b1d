package models

import "gorm.io/gorm"

// Diary is a personal diary entry, optionally tagged with an emotion
type Diary struct {
	gorm.Model
	AuthorID  uint    `json:"author_id" gorm:"index"`
	EmotionID uint    `json:"emotion_id"`
	CancerID  uint    `json:"cancer_id,omitempty"`
	Content   string  `json:"content" gorm:"type:text"`
	IsPublic  bool    `json:"is_public" gorm:"default:true"`
	Emotion   Emotion `json:"emotion,omitempty" gorm:"foreignKey:EmotionID"`
}

type CreateDiaryRequest struct {
	EmotionID uint   `json:"emotion_id" validate:"required"`
	CancerID  uint   `json:"cancer_id,omitempty" validate:"omitempty"`
	Content   string `json:"content" validate:"required,min=1,max=2000"`
	IsPublic  *bool  `json:"is_public,omitempty"`
}

type UpdateDiaryRequest struct {
	EmotionID uint   `json:"emotion_id,omitempty" validate:"omitempty"`
	Content   string `json:"content,omitempty" validate:"omitempty,min=1,max=2000"`
	IsPublic  *bool  `json:"is_public,omitempty"`
}
