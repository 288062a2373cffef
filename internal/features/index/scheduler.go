package index

import (
	"context"
	"fmt"
	"time"

	"go-reporting/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler re-runs the index bootstrap on a cron schedule.
type Scheduler struct {
	service  IndexService
	logger   *zap.Logger
	schedule string
	cron     *cron.Cron
}

func NewScheduler(cfg *config.Config, service IndexService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		service:  service,
		logger:   logger,
		schedule: cfg.BootstrapSchedule,
	}
}

// Start is a no-op when no schedule is configured.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		return nil
	}
	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid bootstrap schedule %q: %w", s.schedule, err)
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Index bootstrap scheduled", zap.String("schedule", s.schedule))
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.service.EnsureReady(ctx)
}
