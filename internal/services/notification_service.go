package services

import (
	"time"

	"github.com/carena-app/backend/internal/models"
	"github.com/carena-app/backend/internal/repositories"
	"github.com/carena-app/backend/pkg/metrics"
	"go.uber.org/zap"
)

// NotificationService owns notification creation and the recency-scoped
// read path.
type NotificationService struct {
	repo       repositories.NotificationRepository
	windowDays int
	logger     *zap.Logger
	now        func() time.Time
}

func NewNotificationService(repo repositories.NotificationRepository, windowDays int, logger *zap.Logger) *NotificationService {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &NotificationService{
		repo:       repo,
		windowDays: windowDays,
		logger:     logger,
		now:        time.Now,
	}
}

// Notify persists a notification unless the sender is also the receiver.
// Acting on your own content never notifies you.
func (s *NotificationService) Notify(n *models.Notification) error {
	if n.SenderUserID == n.ReceiverUserID {
		return nil
	}
	if err := s.repo.Create(n); err != nil {
		return err
	}
	metrics.NotificationsCreated.WithLabelValues(n.Type).Inc()
	return nil
}

// List returns the receiver's notifications inside the recency window.
// The created_at lower bound is always applied so the query prunes to the
// partitions covering the window.
func (s *NotificationService) List(receiverUserID uint, days, page, limit int) ([]models.Notification, int64, error) {
	if days != 30 && days != 90 {
		days = s.windowDays
	}
	since := s.now().AddDate(0, 0, -days)
	return s.repo.GetByReceiverSince(receiverUserID, since, page, limit)
}

// ListAll is the unbounded variant with no partition pruning; only exposed
// outside production.
func (s *NotificationService) ListAll(receiverUserID uint, page, limit int) ([]models.Notification, int64, error) {
	return s.repo.GetByReceiverAll(receiverUserID, page, limit)
}

func (s *NotificationService) UnreadCount(receiverUserID uint) (int64, error) {
	since := s.now().AddDate(0, 0, -s.windowDays)
	return s.repo.GetUnreadCount(receiverUserID, since)
}

func (s *NotificationService) MarkAsRead(notificationID, receiverUserID uint) error {
	return s.repo.MarkAsRead(notificationID, receiverUserID)
}

func (s *NotificationService) MarkAllAsRead(receiverUserID uint) error {
	return s.repo.MarkAllAsRead(receiverUserID)
}
