package models

import "gorm.io/gorm"

// Question is one AI Q&A exchange; Answer is the sanitized model reply
type Question struct {
	gorm.Model
	UserID    uint    `json:"user_id" gorm:"index"`
	Content   string  `json:"content" gorm:"type:text"`
	Answer    string  `json:"answer" gorm:"type:text"`
	Language  string  `json:"language" gorm:"size:10"`
	Images    []Image `json:"images,omitempty" gorm:"polymorphic:Owner;polymorphicValue:question"`
}

type CreateQuestionRequest struct {
	Content   string   `json:"content" validate:"required,min=1,max=2000"`
	ImageURLs []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}
