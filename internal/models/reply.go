package models

import "gorm.io/gorm"

// Reply is a child of a comment
type Reply struct {
	gorm.Model
	CommentID uint   `json:"comment_id" gorm:"index"`
	AuthorID  uint   `json:"author_id" gorm:"index"`
	Content   string `json:"content" gorm:"type:text"`
}

type CreateReplyRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

type UpdateReplyRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
