package service

import (
	"context"
	"sync"
	"time"

	"gcc-market-sync/internal/entity"
	"gcc-market-sync/internal/sync/config"
	"gcc-market-sync/pkg/logger"
	"gcc-market-sync/pkg/utils"

	"github.com/robfig/cron/v3"
)

// SchedulerService drives the pipeline on its cron cadence. Refresh runs
// are serialized: a tick that arrives while a cycle is still in flight is
// skipped rather than stacked.
type SchedulerService interface {
	Start(ctx context.Context)
	RunRefresh(ctx context.Context)
	RunAlerts(ctx context.Context)
}

// NewSchedulerService creates the schedule trigger.
func NewSchedulerService(cfg *config.Config, log *logger.Logger, refreshSvc RefreshService, alertSvc AlertService) SchedulerService {
	return &schedulerService{
		cfg:        cfg,
		logger:     log,
		refreshSvc: refreshSvc,
		alertSvc:   alertSvc,
		cronParser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

type schedulerService struct {
	cfg        *config.Config
	logger     *logger.Logger
	refreshSvc RefreshService
	alertSvc   AlertService
	cronParser cron.Parser

	refreshMu sync.Mutex
}

// Start registers the configured schedules and blocks until the context
// is canceled. Empty schedule expressions disable their loop, leaving
// only the HTTP entry points.
func (s *schedulerService) Start(ctx context.Context) {
	var wg sync.WaitGroup

	if expr := s.cfg.Sync.RefreshSchedule; expr != "" {
		s.runOnSchedule(ctx, &wg, "refresh", expr, s.RunRefresh)
	}
	if expr := s.cfg.Sync.AlertSchedule; expr != "" {
		s.runOnSchedule(ctx, &wg, "alerts", expr, s.RunAlerts)
	}

	<-ctx.Done()
	s.logger.Info("Scheduler stopping")
	wg.Wait()
}

func (s *schedulerService) runOnSchedule(ctx context.Context, wg *sync.WaitGroup, name, expr string, fn func(context.Context)) {
	schedule, err := s.cronParser.Parse(expr)
	if err != nil {
		s.logger.Error("Invalid cron expression, schedule disabled",
			logger.ErrorField(err), logger.StringField("schedule", name), logger.StringField("expr", expr))
		return
	}

	s.logger.Info("Registering schedule",
		logger.StringField("schedule", name), logger.StringField("expr", expr))

	wg.Add(1)
	utils.GoSafe(func() {
		defer wg.Done()
		for {
			next := schedule.Next(time.Now())
			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				fn(ctx)
			}
		}
	})
}

// RunRefresh executes one refresh cycle under the configured wall-clock
// ceiling. Skips the run when another cycle is already in flight.
func (s *schedulerService) RunRefresh(ctx context.Context) {
	if !s.refreshMu.TryLock() {
		s.logger.Warn("Refresh already in flight, skipping scheduled run")
		return
	}
	defer s.refreshMu.Unlock()

	cycleCtx, cancel := context.WithTimeout(ctx, s.cfg.Sync.CycleTimeout)
	defer cancel()

	result := s.refreshSvc.RefreshAll(cycleCtx)
	if !result.Success {
		s.logger.Warn("Scheduled refresh finished with errors",
			logger.IntField("errors", len(result.Errors)),
			logger.Field("details", result.Errors))
	}
}

// RunAlerts evaluates price alerts once.
func (s *schedulerService) RunAlerts(ctx context.Context) {
	cycleCtx, cancel := context.WithTimeout(ctx, s.cfg.Sync.CycleTimeout)
	defer cancel()

	s.alertSvc.EvaluateAlerts(cycleCtx, entity.AlertTypePrice)
}
