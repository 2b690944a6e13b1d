package repositories

import (
	"fmt"
	"time"

	"github.com/carena-app/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// Reads on the hot path always carry a created_at lower bound so MySQL can
// prune partitions before scanning.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByReceiverSince(receiverUserID uint, since time.Time, page, limit int) ([]models.Notification, int64, error)
	// GetByReceiverAll skips the time filter; kept off the hot path for
	// comparison and only exposed outside production.
	GetByReceiverAll(receiverUserID uint, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(receiverUserID uint, since time.Time) (int64, error)
	MarkAsRead(notificationID, receiverUserID uint) error
	MarkAllAsRead(receiverUserID uint) error
	PartitionExists(name string) (bool, error)
	AddPartition(name string, upperBound time.Time) error
	EnsureTable() error
}

type mysqlNotificationRepository struct {
	db *gorm.DB
}

func NewMySQLNotificationRepository(db *gorm.DB) NotificationRepository {
	return &mysqlNotificationRepository{db: db}
}

func (r *mysqlNotificationRepository) Create(notification *models.Notification) error {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	return r.db.Create(notification).Error
}

func (r *mysqlNotificationRepository) GetByReceiverSince(receiverUserID uint, since time.Time, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	r.db.Model(&models.Notification{}).
		Where("receiver_user_id = ? AND created_at >= ?", receiverUserID, since).
		Count(&total)

	offset := (page - 1) * limit
	err := r.db.Where("receiver_user_id = ? AND created_at >= ?", receiverUserID, since).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *mysqlNotificationRepository) GetByReceiverAll(receiverUserID uint, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	r.db.Model(&models.Notification{}).Where("receiver_user_id = ?", receiverUserID).Count(&total)

	offset := (page - 1) * limit
	err := r.db.Where("receiver_user_id = ?", receiverUserID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *mysqlNotificationRepository) GetUnreadCount(receiverUserID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("receiver_user_id = ? AND created_at >= ? AND is_read = false", receiverUserID, since).
		Count(&count).Error
	return count, err
}

func (r *mysqlNotificationRepository) MarkAsRead(notificationID, receiverUserID uint) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND receiver_user_id = ?", notificationID, receiverUserID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mysqlNotificationRepository) MarkAllAsRead(receiverUserID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("receiver_user_id = ? AND is_read = false", receiverUserID).
		Update("is_read", true).Error
}

// PartitionExists checks INFORMATION_SCHEMA for a named partition of the
// notifications table.
func (r *mysqlNotificationRepository) PartitionExists(name string) (bool, error) {
	var count int64
	err := r.db.Raw(
		`SELECT COUNT(*) FROM INFORMATION_SCHEMA.PARTITIONS
		 WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = 'notifications' AND PARTITION_NAME = ?`,
		name,
	).Scan(&count).Error
	return count > 0, err
}

// AddPartition appends a range partition whose rows all have
// created_at < upperBound. Partition names come from the scheduler and are
// p<YYYYMM>; they are interpolated because DDL takes no placeholders.
func (r *mysqlNotificationRepository) AddPartition(name string, upperBound time.Time) error {
	stmt := fmt.Sprintf(
		"ALTER TABLE notifications ADD PARTITION (PARTITION %s VALUES LESS THAN (UNIX_TIMESTAMP('%s')))",
		name, upperBound.Format("2006-01-02"),
	)
	return r.db.Exec(stmt).Error
}

// EnsureTable creates the partitioned notifications table. AutoMigrate
// cannot declare partitions, so the DDL is raw. There is deliberately no
// MAXVALUE partition: an insert for an unprovisioned month fails outright
// instead of landing in an overflow bucket.
func (r *mysqlNotificationRepository) EnsureTable() error {
	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := thisMonth.AddDate(0, 1, 0)
	monthAfter := thisMonth.AddDate(0, 2, 0)

	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS notifications (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		type VARCHAR(30),
		receiver_user_id BIGINT UNSIGNED,
		sender_user_id BIGINT UNSIGNED,
		target_type VARCHAR(20),
		target_id BIGINT UNSIGNED,
		entity_type VARCHAR(20),
		entity_id BIGINT UNSIGNED,
		is_read BOOLEAN DEFAULT FALSE,
		created_at DATETIME NOT NULL,
		updated_at DATETIME,
		deleted_at DATETIME NULL,
		PRIMARY KEY (id, created_at),
		KEY idx_notifications_receiver (receiver_user_id),
		KEY idx_notifications_type (type),
		KEY idx_notifications_is_read (is_read),
		KEY idx_notifications_deleted_at (deleted_at)
	)
	PARTITION BY RANGE (UNIX_TIMESTAMP(created_at)) (
		PARTITION p_first VALUES LESS THAN (UNIX_TIMESTAMP('%s')),
		PARTITION p%s VALUES LESS THAN (UNIX_TIMESTAMP('%s'))
	)`,
		nextMonth.Format("2006-01-02"),
		nextMonth.Format("200601"),
		monthAfter.Format("2006-01-02"),
	)
	return r.db.Exec(stmt).Error
}
