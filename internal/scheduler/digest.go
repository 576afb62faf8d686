// Package scheduler runs the periodic alert digest.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"ppe-tracker/internal/services"
)

const digestTimeout = 2 * time.Minute

type Scheduler struct {
	cron      *cron.Cron
	dashboard services.DashboardServiceInterface
	logger    *zap.Logger
}

// New runs the digest on a standard 5-field cron schedule evaluated in loc.
func New(schedule string, loc *time.Location, dashboard services.DashboardServiceInterface, logger *zap.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		dashboard: dashboard,
		logger:    logger,
	}

	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
		defer cancel()
		if err := s.RunDigest(ctx); err != nil {
			s.logger.Error("alert digest failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", schedule, err)
	}
	return s, nil
}

// RunDigest rebuilds the cached dashboard and logs what needs attention.
func (s *Scheduler) RunDigest(ctx context.Context) error {
	s.logger.Info("starting alert digest")

	summary, err := s.dashboard.Refresh(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("alert digest",
		zap.String("asOf", summary.AsOf),
		zap.Int("total", summary.TotalEquipment),
		zap.Int("current", summary.Counts.Current),
		zap.Int("dueSoon", summary.Counts.DueSoon),
		zap.Int("overdue", summary.Counts.Overdue),
	)
	for _, item := range summary.Overdue {
		s.logger.Warn("equipment overdue for inspection",
			zap.Uint64("equipmentId", item.EquipmentID),
			zap.String("customIdentifier", item.CustomIdentifier),
			zap.String("nextDueDate", item.NextDueDate),
			zap.Int("daysLeft", item.DaysLeft),
		)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("alert digest scheduled", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop stops the scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
