package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/abattoir/internal/config"
	"github.com/mamadbah2/abattoir/internal/domain/models"
	"github.com/mamadbah2/abattoir/internal/service/whatsapp"
)

// ReportGenerator produces the weekly summary text.
type ReportGenerator interface {
	GenerateWeeklyReport(ctx context.Context, end time.Time) (string, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc ReportGenerator
	messagingSvc whatsapp.MessagingService
	recipient    string
	logger       *zap.Logger
	now          func() time.Time
}

// NewScheduler creates a scheduler running the weekly report on
// cfg.CronSchedule in cfg.Timezone.
func NewScheduler(cfg config.ReportingConfig, reportingSvc ReportGenerator, messagingSvc whatsapp.MessagingService, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		cron:         cron.New(cron.WithLocation(location)),
		reportingSvc: reportingSvc,
		messagingSvc: messagingSvc,
		recipient:    cfg.Recipient,
		logger:       logger,
		now:          time.Now,
	}

	if _, err := s.cron.AddFunc(cfg.CronSchedule, s.sendWeeklyReport); err != nil {
		return nil, fmt.Errorf("schedule weekly report %q: %w", cfg.CronSchedule, err)
	}

	return s, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running report to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendWeeklyReport() {
	s.logger.Info("generating weekly report")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.RunWeeklyReport(ctx); err != nil {
		s.logger.Error("weekly report failed", zap.Error(err))
		return
	}
	s.logger.Info("weekly report sent successfully")
}

// RunWeeklyReport generates the weekly report and sends it to the configured
// recipient. Without a recipient the report is only generated and exported.
func (s *Scheduler) RunWeeklyReport(ctx context.Context) error {
	report, err := s.reportingSvc.GenerateWeeklyReport(ctx, s.now())
	if err != nil {
		return fmt.Errorf("generate weekly report: %w", err)
	}

	if s.recipient == "" || s.messagingSvc == nil {
		s.logger.Warn("no report recipient configured, skipping delivery")
		return nil
	}

	req := models.OutboundMessageRequest{
		To:      s.recipient,
		Message: report,
	}
	if err := s.messagingSvc.SendOutbound(ctx, req); err != nil {
		return fmt.Errorf("send weekly report: %w", err)
	}
	return nil
}
