package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tamilsociety/tls-platform/internal/application"
	"github.com/tamilsociety/tls-platform/pkg/logger"
	"go.uber.org/zap"
)

const jobTimeout = 5 * time.Minute

// Scheduler runs the background maintenance jobs: counter reconciliation
// and audit log retention.
type Scheduler struct {
	dispatcher    *cron.Cron
	svc           *application.Services
	retentionDays int
}

func New(svc *application.Services, retentionDays int) *Scheduler {
	return &Scheduler{
		dispatcher:    cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		svc:           svc,
		retentionDays: retentionDays,
	}
}

// Start registers the jobs and starts the dispatcher. Audit cleanup also
// runs once immediately.
func (s *Scheduler) Start(reconcileSchedule string) error {
	if _, err := s.dispatcher.AddFunc(reconcileSchedule, s.withTimeout(s.Reconcile)); err != nil {
		return fmt.Errorf("schedule reconcile %q: %w", reconcileSchedule, err)
	}
	if _, err := s.dispatcher.AddFunc("@daily", s.withTimeout(s.CleanupAuditLogs)); err != nil {
		return fmt.Errorf("schedule audit cleanup: %w", err)
	}

	logger.Log.Info("starting background jobs",
		zap.String("reconcile", reconcileSchedule),
		zap.Int("audit_retention_days", s.retentionDays),
	)
	go s.withTimeout(s.CleanupAuditLogs)()
	s.dispatcher.Start()
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.dispatcher.Stop().Done()
}

func (s *Scheduler) withTimeout(job func(context.Context)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		job(ctx)
	}
}

// Reconcile recounts every form and reports orphaned responses.
func (s *Scheduler) Reconcile(ctx context.Context) {
	report, err := s.svc.Reconcile.RecountAll(ctx)
	if err != nil {
		logger.Log.Error("counter reconciliation failed", zap.Error(err))
		return
	}
	for _, d := range report.Drifted {
		logger.Log.Warn("corrected response counter",
			zap.String("form", d.FormID),
			zap.Int("stored", d.Stored),
			zap.Int64("actual", d.Actual),
		)
	}

	orphans, err := s.svc.Reconcile.FindOrphans(ctx)
	if err != nil {
		logger.Log.Error("orphan scan failed", zap.Error(err))
		return
	}
	logger.Log.Info("reconciliation finished",
		zap.Int("forms", report.Checked),
		zap.Int("drifted", len(report.Drifted)),
		zap.Int("orphans", len(orphans)),
	)
}

func (s *Scheduler) CleanupAuditLogs(ctx context.Context) {
	removed, err := s.svc.Audit.CleanupOldLogs(ctx, s.retentionDays)
	if err != nil {
		logger.Log.Error("audit log cleanup failed", zap.Error(err))
		return
	}
	logger.Log.Info("audit log cleanup completed", zap.Int64("removed", removed))
}
