package models

import "gorm.io/gorm"

// Comment attaches to any commentable entity via entity_type/entity_id so
// diaries, posts and articles share one comment subsystem.
type Comment struct {
	gorm.Model
	EntityType string `json:"entity_type" gorm:"size:20;index:idx_comment_entity"`
	EntityID   uint   `json:"entity_id" gorm:"index:idx_comment_entity"`
	AuthorID   uint   `json:"author_id" gorm:"index"`
	Content    string `json:"content" gorm:"type:text"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// CommentWithReplyCount decorates a comment with its visible reply count
type CommentWithReplyCount struct {
	Comment
	ReplyCount int64 `json:"reply_count"`
}
