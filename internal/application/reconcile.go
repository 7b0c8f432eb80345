package application

import (
	"context"
	"errors"
	"sync"

	"github.com/tamilsociety/tls-platform/internal/domain/recruitment"
	"github.com/tamilsociety/tls-platform/internal/metrics"
	"github.com/tamilsociety/tls-platform/internal/repository"
	"github.com/tamilsociety/tls-platform/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const reconcileWorkers = 4

// Drift is a form whose stored counter disagreed with its live response count.
type Drift struct {
	FormID string `json:"formId"`
	Stored int    `json:"stored"`
	Actual int64  `json:"actual"`
}

type ReconcileReport struct {
	Checked int     `json:"checked"`
	Drifted []Drift `json:"drifted"`
}

// ReconcileService repairs the denormalized response counters and reports
// responses left behind by deleted forms.
type ReconcileService struct {
	Repos *repository.Repos
}

func NewReconcileService(repos *repository.Repos) *ReconcileService {
	return &ReconcileService{
		Repos: repos,
	}
}

// Recount sets one form's counter to its live response count. The form row
// stays locked from the count to the write-back so no submission or
// deletion can land in between.
func (s *ReconcileService) Recount(ctx context.Context, formID string) (int64, error) {
	var n int64
	err := s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		if _, err := tx.Form.GetByIDForUpdate(ctx, formID); err != nil {
			return notFound(err, ErrFormNotFound)
		}
		var err error
		n, err = tx.Response.CountByForm(ctx, formID)
		if err != nil {
			return err
		}
		return tx.Form.SetResponseCount(ctx, formID, n)
	})
	return n, err
}

// RecountAll checks every form and corrects the ones that drifted.
func (s *ReconcileService) RecountAll(ctx context.Context) (*ReconcileReport, error) {
	ids, err := s.Repos.Form.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{Checked: len(ids), Drifted: []Drift{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reconcileWorkers)
	for _, id := range ids {
		g.Go(func() error {
			d, err := s.recheck(gctx, id)
			if err != nil || d == nil {
				return err
			}
			mu.Lock()
			report.Drifted = append(report.Drifted, *d)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(report.Drifted) > 0 {
		logger.Log.Info("response counters reconciled",
			zap.Int("checked", report.Checked),
			zap.Int("corrected", len(report.Drifted)),
		)
	}
	return report, nil
}

func (s *ReconcileService) recheck(ctx context.Context, formID string) (*Drift, error) {
	var drift *Drift
	err := s.Repos.ExecTx(ctx, func(tx *repository.Repos) error {
		form, err := tx.Form.GetByIDForUpdate(ctx, formID)
		if err != nil {
			// Deleted since the id scan.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		actual, err := tx.Response.CountByForm(ctx, formID)
		if err != nil {
			return err
		}
		if int64(form.CurrentResponses) == actual {
			return nil
		}
		if err := tx.Form.SetResponseCount(ctx, formID, actual); err != nil {
			return err
		}
		drift = &Drift{FormID: formID, Stored: form.CurrentResponses, Actual: actual}
		return nil
	})
	if err != nil || drift == nil {
		return nil, err
	}
	metrics.CounterDrift.Inc()
	return drift, nil
}

// FindOrphans lists responses whose form no longer exists.
func (s *ReconcileService) FindOrphans(ctx context.Context) ([]recruitment.Response, error) {
	orphans, err := s.Repos.Response.FindOrphans(ctx)
	if err != nil {
		return nil, err
	}
	metrics.OrphanResponses.Set(float64(len(orphans)))
	if orphans == nil {
		orphans = []recruitment.Response{}
	}
	return orphans, nil
}
