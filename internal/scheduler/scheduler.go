package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/silotrack/internal/config"
	"github.com/mamadbah2/silotrack/internal/repository/mongodb"
	"github.com/mamadbah2/silotrack/internal/service/reporting"
	"github.com/mamadbah2/silotrack/pkg/clients/notifier"
)

// Scheduler manages the periodic inventory snapshot job. The archive and
// notifier are optional; a nil value disables that delivery path.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	archive      mongodb.Repository
	notifierCli  notifier.Client
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, reportingSvc *reporting.Service, archive mongodb.Repository, notifierCli notifier.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	c := cron.New()

	return &Scheduler{
		cron:         c,
		reportingSvc: reportingSvc,
		archive:      archive,
		notifierCli:  notifierCli,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.runSnapshot)
	if err != nil {
		s.logger.Error("failed to schedule snapshot job", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runSnapshot() {
	s.logger.Info("generating inventory snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snapshot, err := s.reportingSvc.GenerateSnapshot(ctx)
	if err != nil {
		s.logger.Error("failed to generate inventory snapshot", zap.Error(err))
		return
	}

	summary := s.reportingSvc.FormatSnapshot(snapshot)
	s.logger.Info("inventory snapshot",
		zap.Int("silo_count", snapshot.SiloCount),
		zap.Int64("total_balance_kg", snapshot.TotalBalanceKg),
		zap.Int("low_stock", len(snapshot.LowStock)),
		zap.String("summary", summary))

	if s.archive != nil {
		if err := s.archive.SaveSnapshot(ctx, snapshot); err != nil {
			s.logger.Error("failed to archive inventory snapshot", zap.Error(err))
		}
	}

	if s.notifierCli != nil {
		if err := s.notifierCli.PublishSnapshot(ctx, snapshot, summary); err != nil {
			s.logger.Error("failed to publish inventory snapshot", zap.Error(err))
		} else {
			s.logger.Info("inventory snapshot published")
		}
	}
}
