package models

import "gorm.io/gorm"

// Article is an editorial article curated by staff
type Article struct {
	gorm.Model
	Title   string         `json:"title" gorm:"size:200"`
	Summary string         `json:"summary" gorm:"size:500"`
	Content string         `json:"content" gorm:"type:text"`
	Link    string         `json:"link,omitempty" gorm:"size:500"`
	Images  []ArticleImage `json:"images,omitempty" gorm:"foreignKey:ArticleID"`
}

// ArticleImage holds the object key of an article image; readers get a
// presigned URL rather than the stored key.
type ArticleImage struct {
	gorm.Model
	ArticleID uint   `json:"article_id" gorm:"index"`
	ObjectKey string `json:"-" gorm:"size:500"`
	URL       string `json:"url" gorm:"-"` // presigned at read time
}

type CreateArticleRequest struct {
	Title      string   `json:"title" validate:"required,min=1,max=200"`
	Summary    string   `json:"summary,omitempty" validate:"omitempty,max=500"`
	Content    string   `json:"content" validate:"required"`
	Link       string   `json:"link,omitempty" validate:"omitempty,url"`
	ObjectKeys []string `json:"object_keys,omitempty"`
}

type UpdateArticleRequest struct {
	Title   string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Summary string `json:"summary,omitempty" validate:"omitempty,max=500"`
	Content string `json:"content,omitempty"`
	Link    string `json:"link,omitempty" validate:"omitempty,url"`
}
