package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/carena-app/backend/pkg/metrics"
)

// PartitionManager is the slice of the notification repository the
// scheduler needs.
type PartitionManager interface {
	PartitionExists(name string) (bool, error)
	AddPartition(name string, upperBound time.Time) error
}

// PartitionScheduler provisions next month's notification partition one
// month ahead of need. The table has no MAXVALUE partition, so a missed
// month surfaces as insert failures rather than silent overflow.
type PartitionScheduler struct {
	manager PartitionManager
	logger  *zap.Logger
	cron    *cron.Cron
	now     func() time.Time
}

func NewPartitionScheduler(manager PartitionManager, logger *zap.Logger) *PartitionScheduler {
	return &PartitionScheduler{
		manager: manager,
		logger:  logger,
		now:     time.Now,
	}
}

// Start schedules the monthly run (midnight on the 1st) and provisions
// immediately so a service started mid-month is covered.
func (s *PartitionScheduler) Start() {
	s.Run()

	c := cron.New()
	if _, err := c.AddFunc("0 0 1 * *", s.Run); err != nil {
		s.logger.Error("failed to schedule partition job", zap.Error(err))
		return
	}
	c.Start()
	s.cron = c
	s.logger.Info("partition scheduler started")
}

func (s *PartitionScheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Run is the job boundary: failures are logged and counted, never
// propagated, since cron has no caller to propagate to.
func (s *PartitionScheduler) Run() {
	if err := s.EnsureNextMonth(); err != nil {
		metrics.PartitionJobFailures.Inc()
		metrics.PartitionJobRuns.WithLabelValues("failed").Inc()
		s.logger.Error("notification partition job failed", zap.Error(err))
	}
}

// EnsureNextMonth creates the partition for next month, bounded by the
// first day of the month after next. Re-running in the same month is a
// no-op thanks to the existence check.
func (s *PartitionScheduler) EnsureNextMonth() error {
	now := s.now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := thisMonth.AddDate(0, 1, 0)
	monthAfter := thisMonth.AddDate(0, 2, 0)

	name := "p" + nextMonth.Format("200601")

	exists, err := s.manager.PartitionExists(name)
	if err != nil {
		return err
	}
	if exists {
		metrics.PartitionJobRuns.WithLabelValues("exists").Inc()
		s.logger.Info("notification partition already provisioned", zap.String("partition", name))
		return nil
	}

	if err := s.manager.AddPartition(name, monthAfter); err != nil {
		return err
	}
	metrics.PartitionJobRuns.WithLabelValues("created").Inc()
	s.logger.Info("notification partition created",
		zap.String("partition", name),
		zap.String("upper_bound", monthAfter.Format("2006-01-02")),
	)
	return nil
}
