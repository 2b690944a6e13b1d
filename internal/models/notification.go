package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification type tags describing the triggering action
const (
	NotificationTypeComment  = "comment"
	NotificationTypeReply    = "reply"
	NotificationTypeReaction = "reaction"
)

// Notification is one user-directed event. The table is range-partitioned
// on UNIX_TIMESTAMP(created_at), so created_at must be part of the primary
// key; rows are created by raw DDL in the repository, not AutoMigrate.
type Notification struct {
	ID             uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Type           string         `json:"type" gorm:"size:30;index"`
	ReceiverUserID uint           `json:"receiver_user_id" gorm:"index"`
	SenderUserID   uint           `json:"sender_user_id"`
	TargetType     TargetType     `json:"target_type" gorm:"size:20"`
	TargetID       uint           `json:"target_id"`
	EntityType     string         `json:"entity_type" gorm:"size:20"`
	EntityID       uint           `json:"entity_id"`
	IsRead         bool           `json:"is_read" gorm:"default:false;index"`
	CreatedAt      time.Time      `json:"created_at" gorm:"primaryKey"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}
