package alerts

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"inventra-system/config"
	"inventra-system/internal/services/inventory"
)

// Scheduler periodically scans consumable ledgers and raises low-stock
// alerts through the notifier.
type Scheduler struct {
	cron      *cron.Cron
	inventory *inventory.Service
	notifier  *Notifier
	cfg       config.AlertsConfig
	logger    *zap.Logger
}

func NewScheduler(cfg config.AlertsConfig, inventorySvc *inventory.Service, notifier *Notifier, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:      cron.New(),
		inventory: inventorySvc,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("starting low-stock scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.checkLowStock); err != nil {
		s.logger.Error("failed to schedule low-stock check", zap.Error(err))
		return
	}
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.logger.Info("stopping low-stock scheduler")
	s.cron.Stop()
}

func (s *Scheduler) checkLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	items, err := s.inventory.ListLowStockConsumables(ctx, s.cfg.Threshold)
	if err != nil {
		s.logger.Error("low-stock scan failed", zap.Error(err))
		return
	}
	if len(items) == 0 {
		s.logger.Debug("low-stock scan found nothing")
		return
	}

	s.logger.Warn("low-stock consumables detected", zap.Int("count", len(items)))
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendLowStockAlert(ctx, s.cfg.Threshold, items); err != nil {
		s.logger.Error("failed to deliver low-stock alert", zap.Error(err))
	}
}
